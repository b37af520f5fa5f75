package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeOperator postgres 使用 ILIKE，sqlite 的 LIKE 本身对 ASCII 不区分大小写
func likeOperator(db *gorm.DB) string {
	if db != nil && db.Dialector != nil {
		switch strings.ToLower(db.Dialector.Name()) {
		case "postgres", "postgresql":
			return "ILIKE"
		}
	}
	return "LIKE"
}

// containsPattern 生成转义后的包含匹配模式
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// searchCondition 多列模糊匹配条件（列之间为 OR）
func searchCondition(operator string, columns []string) string {
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		parts = append(parts, column+" "+operator+` ? ESCAPE '\'`)
	}
	return strings.Join(parts, " OR ")
}

// searchScope 关键字为空时不加条件
func searchScope(keyword string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keyword = strings.TrimSpace(keyword)
		condition := searchCondition(likeOperator(db), columns)
		if keyword == "" || condition == "" {
			return db
		}
		pattern := containsPattern(keyword)
		args := make([]interface{}, strings.Count(condition, "?"))
		for i := range args {
			args[i] = pattern
		}
		return db.Where("("+condition+")", args...)
	}
}

// lowerEqualsExpr 大小写不敏感的等值比较表达式
func lowerEqualsExpr(column string) string {
	return "LOWER(" + column + ") = LOWER(?)"
}

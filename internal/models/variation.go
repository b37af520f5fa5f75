package models

import (
	"strconv"
	"strings"
)

// VariationCategory 变体分组（限制同组最多可选数量）
type VariationCategory struct {
	ID         uint   `gorm:"primarykey" json:"id"`                         // 主键
	ProductID  uint   `gorm:"not null;index" json:"product_id"`             // 商品ID
	Name       string `gorm:"type:varchar(120);not null" json:"name"`       // 分组名称
	MaxChoices int    `gorm:"not null;default:1" json:"max_choices"`        // 最多可选数量
}

// TableName 指定表名
func (VariationCategory) TableName() string {
	return "variation_categories"
}

// Variation 商品变体（可选项）
type Variation struct {
	ID              uint   `gorm:"primarykey" json:"id"`                                          // 主键
	ProductID       uint   `gorm:"not null;index" json:"product_id"`                              // 商品ID
	CategoryID      *uint  `gorm:"index" json:"category_id"`                                      // 所属分组（可为空）
	Name            string `gorm:"type:varchar(120);not null" json:"name"`                        // 名称
	Size            string `gorm:"type:varchar(60)" json:"size"`                                  // 尺寸
	AdditionalPrice Money  `gorm:"type:decimal(10,2);not null;default:0" json:"additional_price"` // 加价

	Category *VariationCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (Variation) TableName() string {
	return "variations"
}

// IDString 返回字符串形式的变体ID
func (v Variation) IDString() string {
	return strconv.FormatUint(uint64(v.ID), 10)
}

// Label 展示标签，格式为 "名称 / 尺寸"
func (v Variation) Label() string {
	parts := []string{v.Name}
	if size := strings.TrimSpace(v.Size); size != "" {
		parts = append(parts, size)
	}
	return strings.Join(parts, " / ")
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money 统一金额类型
// 计算时保留原始精度，只在展示与写库时取 2 位小数
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额并取整到分（后台录入价格使用）
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoneyFromString 从字符串解析金额，格式非法时返回错误
func NewMoneyFromString(raw string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

// ParseMoneyLenient 宽松解析金额，任何无法识别的输入都视为 0
// 支持 string / json.Number / 整数 / decimal / Money，不经过浮点数
func ParseMoneyLenient(raw interface{}) Money {
	switch v := raw.(type) {
	case nil:
		return Money{}
	case Money:
		return v
	case decimal.Decimal:
		return Money{Decimal: v}
	case string:
		m, err := NewMoneyFromString(v)
		if err != nil {
			return Money{}
		}
		return m
	case json.Number:
		m, err := NewMoneyFromString(v.String())
		if err != nil {
			return Money{}
		}
		return m
	case int:
		return Money{Decimal: decimal.NewFromInt(int64(v))}
	case int64:
		return Money{Decimal: decimal.NewFromInt(v)}
	case float64:
		// JSON 数字默认解码为 float64，先转为最短字符串表示再解析
		m, err := NewMoneyFromString(fmt.Sprintf("%v", v))
		if err != nil {
			return Money{}
		}
		return m
	default:
		return Money{}
	}
}

// Add 金额相加
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// MulInt 金额乘以整数数量
func (m Money) MulInt(quantity int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(quantity)))}
}

// MarshalJSON 统一输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			m.Decimal = decimal.Zero
			return nil
		}
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		m.Decimal = d
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	m.Decimal = d
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	return m.Decimal.Scan(value)
}

// ExactString 返回不丢失精度的字符串，不足 2 位小数时补齐
func (m Money) ExactString() string {
	if m.Decimal.Exponent() >= -2 {
		return m.Decimal.StringFixed(2)
	}
	return m.Decimal.String()
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Tenant 店铺（租户）表
type Tenant struct {
	ID            uint           `gorm:"primarykey" json:"id"`                         // 主键
	BusinessName  string         `gorm:"type:varchar(120)" json:"business_name"`       // 店铺名称
	Slug          *string        `gorm:"type:varchar(80);uniqueIndex" json:"slug"`     // 公开访问标识
	WhatsApp      string         `gorm:"type:varchar(30)" json:"whatsapp"`             // WhatsApp 联系方式
	AccessEndDate *time.Time     `gorm:"index" json:"access_end_date"`                 // 订阅到期日
	IsActive      bool           `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间

	// 关联
	Owner   *Admin          `gorm:"foreignKey:TenantID" json:"owner,omitempty"`   // 店主账号
	Profile *CatalogProfile `gorm:"foreignKey:TenantID" json:"profile,omitempty"` // 目录展示配置
}

// TableName 指定表名
func (Tenant) TableName() string {
	return "tenants"
}

// Active 判断店铺当前是否可用（到期日早于今天视为不可用）
func (t *Tenant) Active(now time.Time) bool {
	if t == nil {
		return false
	}
	if t.AccessEndDate != nil {
		end := t.AccessEndDate.In(now.Location())
		endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, now.Location())
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if endDay.Before(today) {
			return false
		}
	}
	return t.IsActive
}

// Onboarded 是否已完成首次资料填写
func (t *Tenant) Onboarded() bool {
	if t == nil {
		return false
	}
	return strings.TrimSpace(t.BusinessName) != "" && strings.TrimSpace(t.WhatsApp) != ""
}

// SlugValue 返回 slug 字符串（为空时返回空串）
func (t *Tenant) SlugValue() string {
	if t == nil || t.Slug == nil {
		return ""
	}
	return *t.Slug
}

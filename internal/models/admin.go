package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin 后台账号表（店主或平台运营）
type Admin struct {
	ID           uint           `gorm:"primarykey" json:"id"`                              // 主键
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`                 // 登录邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                                 // 密码哈希（不返回给前端）
	TenantID     *uint          `gorm:"uniqueIndex" json:"tenant_id,omitempty"`            // 所属店铺（运营账号为空）
	Role         string         `gorm:"type:varchar(20);not null;index" json:"role"`       // 角色 owner/operator
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`                       // Token 版本（用于全量失效）
	LastLoginAt  *time.Time     `json:"last_login_at"`                                     // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
	Tenant       *Tenant        `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`       // 所属店铺
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

package models

import "time"

// CatalogProfile 店铺目录展示配置
type CatalogProfile struct {
	ID           uint      `gorm:"primarykey" json:"id"`                       // 主键
	TenantID     uint      `gorm:"uniqueIndex;not null" json:"tenant_id"`      // 店铺ID
	Title        string    `gorm:"type:varchar(120)" json:"title"`             // 标题
	Message      string    `gorm:"type:text" json:"message"`                   // 引导文案
	CTA          string    `gorm:"column:cta;type:varchar(80)" json:"cta"`     // 按钮文案
	Image        string    `gorm:"type:varchar(500)" json:"image"`             // 旧版横幅图
	DesktopImage string    `gorm:"type:varchar(500)" json:"desktop_image"`     // 桌面横幅图
	MobileImage  string    `gorm:"type:varchar(500)" json:"mobile_image"`      // 移动端横幅图
	CreatedAt    time.Time `json:"created_at"`                                 // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                 // 更新时间
}

// TableName 指定表名
func (CatalogProfile) TableName() string {
	return "catalog_profiles"
}

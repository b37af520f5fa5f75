package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类表
type Category struct {
	ID            uint           `gorm:"primarykey" json:"id"`                              // 主键
	TenantID      uint           `gorm:"not null;index" json:"tenant_id"`                   // 店铺ID
	Name          string         `gorm:"type:varchar(120);not null" json:"name"`            // 名称
	Description   string         `gorm:"type:text" json:"description"`                      // 描述
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
	Subcategories []Subcategory  `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"` // 子分类
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// Subcategory 商品子分类表
type Subcategory struct {
	ID         uint           `gorm:"primarykey" json:"id"`                  // 主键
	TenantID   uint           `gorm:"not null;index" json:"tenant_id"`       // 店铺ID
	CategoryID uint           `gorm:"not null;index" json:"category_id"`     // 上级分类
	Name       string         `gorm:"type:varchar(120);not null" json:"name"` // 名称
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`               // 创建时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 上级分类
}

// TableName 指定表名
func (Subcategory) TableName() string {
	return "subcategories"
}

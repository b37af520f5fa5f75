package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	TenantID      uint           `gorm:"not null;index" json:"tenant_id"`                           // 店铺ID
	CategoryID    *uint          `gorm:"index" json:"category_id"`                                  // 分类ID
	SubcategoryID *uint          `gorm:"index" json:"subcategory_id"`                               // 子分类ID
	Name          string         `gorm:"type:varchar(120);not null" json:"name"`                    // 名称
	Description   string         `gorm:"type:text" json:"description"`                              // 描述
	PriceAmount   Money          `gorm:"type:decimal(10,2);not null;default:0" json:"price_amount"` // 基础价格
	Stock         int            `gorm:"not null;default:0" json:"stock"`                           // 库存
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url"`                        // 主图
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Category            *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory         *Subcategory        `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Images              []ProductImage      `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Variations          []Variation         `gorm:"foreignKey:ProductID" json:"variations,omitempty"`
	VariationCategories []VariationCategory `gorm:"foreignKey:ProductID" json:"variation_categories,omitempty"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IDString 返回字符串形式的商品ID
func (p *Product) IDString() string {
	if p == nil {
		return ""
	}
	return strconv.FormatUint(uint64(p.ID), 10)
}

// ProductImage 商品附加图片
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`                      // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"`          // 商品ID
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`     // 图片地址
	CreatedAt time.Time `gorm:"index" json:"created_at"`                   // 创建时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}

package models

import "time"

// OrderItem 订单项表（下单时的购物车快照）
type OrderItem struct {
	ID             uint        `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID        uint        `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ProductID      *uint       `gorm:"index" json:"product_id"`                                 // 商品ID（非数字来源时为空）
	ProductName    string      `gorm:"type:varchar(255);not null" json:"product_name"`         // 商品名称快照
	ImageURL       string      `gorm:"type:varchar(500)" json:"image_url"`                      // 图片快照
	Quantity       int         `gorm:"not null;default:1" json:"quantity"`                      // 数量
	UnitPrice      Money       `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"` // 单价
	ItemKey        string      `gorm:"type:varchar(255)" json:"item_key"`                       // 购物车条目标识
	VariationID    string      `gorm:"type:varchar(64)" json:"variation_id"`                    // 主变体ID
	VariationIDs   StringArray `gorm:"type:json" json:"variation_ids"`                          // 全部变体ID
	VariationLabel string      `gorm:"type:varchar(500)" json:"variation_label"`                // 变体标签
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`                                 // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	TenantID     uint           `gorm:"not null;index" json:"tenant_id"`                           // 店铺ID
	Customer     string         `gorm:"type:varchar(120);not null" json:"customer"`                // 联系人
	Phone        string         `gorm:"type:varchar(30)" json:"phone"`                             // 电话
	Status       string         `gorm:"type:varchar(16);index;not null" json:"status"`             // 订单状态
	TotalAmount  Money          `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"` // 总金额
	CoverName    string         `gorm:"type:text" json:"cover_name"`                               // 封面文字
	CoverURL     string         `gorm:"type:varchar(500)" json:"cover_url"`                        // 封面图片
	BackCoverURL string         `gorm:"type:varchar(500)" json:"back_cover_url"`                   // 封底图片
	ClientIP     string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`               // 下单客户端IP
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

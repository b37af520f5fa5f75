package models

import "time"

// CartSession 购物车会话（Redis 不可用时的持久化存储）
type CartSession struct {
	SessionID string    `gorm:"primarykey;type:varchar(64)" json:"session_id"` // 会话ID
	Payload   string    `gorm:"type:text;not null" json:"payload"`             // 购物车 JSON
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`                       // 过期时间
	UpdatedAt time.Time `json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (CartSession) TableName() string {
	return "cart_sessions"
}

package repository

import "gorm.io/gorm"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	TenantID      uint
	Page          int
	PageSize      int
	CategoryID    uint
	SubcategoryID uint
	Search        string
	OnlyActive    bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	TenantID uint
	Page     int
	PageSize int
	Status   string
}

// TenantListFilter 查询店铺列表的过滤条件
type TenantListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// OrderStatusCount 订单状态计数
type OrderStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// paginate 按页码截取查询结果，pageSize<=0 时返回全部
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}

package repository

import (
	"errors"
	"strings"

	"github.com/papelaria-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(tenantID, id uint) (*models.Order, error)
	ListByTenant(filter OrderListFilter) ([]models.Order, int64, error)
	CountByStatus(tenantID uint) ([]OrderStatusCount, error)
	UpdateStatus(tenantID, id uint, status string) (int64, error)
	Delete(tenantID, id uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Omit("Items").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// GetByID 根据 ID 获取店铺订单
func (r *GormOrderRepository) GetByID(tenantID, id uint) (*models.Order, error) {
	var order models.Order
	query := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("tenant_id = ?", tenantID)
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByTenant 店铺订单列表（最新优先）
func (r *GormOrderRepository) ListByTenant(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("tenant_id = ?", filter.TenantID)
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(filter.Page, filter.PageSize)(query)

	var orders []models.Order
	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Order("created_at DESC, id DESC").Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountByStatus 按状态统计订单数量
func (r *GormOrderRepository) CountByStatus(tenantID uint) ([]OrderStatusCount, error) {
	var rows []OrderStatusCount
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus 更新订单状态，返回受影响行数
func (r *GormOrderRepository) UpdateStatus(tenantID, id uint, status string) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// Delete 删除订单及订单项
func (r *GormOrderRepository) Delete(tenantID, id uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ?", tenantID).Delete(&models.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
	})
	return affected, err
}

package repository

import (
	"errors"
	"strings"

	"github.com/papelaria-next/internal/models"

	"gorm.io/gorm"
)

// TenantRepository 店铺数据访问接口
type TenantRepository interface {
	GetByID(id uint) (*models.Tenant, error)
	GetBySlug(slug string) (*models.Tenant, error)
	List(filter TenantListFilter) ([]models.Tenant, int64, error)
	Create(tenant *models.Tenant) error
	Update(tenant *models.Tenant) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormTenantRepository
}

// GormTenantRepository GORM 实现
type GormTenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository 创建店铺仓库
func NewTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTenantRepository) WithTx(tx *gorm.DB) *GormTenantRepository {
	if tx == nil {
		return r
	}
	return &GormTenantRepository{db: tx}
}

// Transaction 在事务中执行
func (r *GormTenantRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByID 根据 ID 获取店铺
func (r *GormTenantRepository) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Preload("Owner").First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// GetBySlug 根据 slug 获取店铺
func (r *GormTenantRepository) GetBySlug(slug string) (*models.Tenant, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	var tenant models.Tenant
	if err := r.db.Preload("Owner").Where("slug = ?", slug).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// List 店铺列表
func (r *GormTenantRepository) List(filter TenantListFilter) ([]models.Tenant, int64, error) {
	query := r.db.Model(&models.Tenant{})
	query = searchScope(filter.Search, "business_name", "slug")(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(filter.Page, filter.PageSize)(query)

	var tenants []models.Tenant
	if err := query.Preload("Owner").Order("id DESC").Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

// Create 创建店铺
func (r *GormTenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// Update 更新店铺
func (r *GormTenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Model(&models.Tenant{}).Where("id = ?", tenant.ID).Updates(map[string]interface{}{
		"business_name":   tenant.BusinessName,
		"slug":            tenant.Slug,
		"whats_app":       tenant.WhatsApp,
		"access_end_date": tenant.AccessEndDate,
		"is_active":       tenant.IsActive,
	}).Error
}

// CountBySlug 统计 slug 数量
func (r *GormTenantRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.Tenant{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/papelaria-next/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 后台账号数据访问接口
type AdminRepository interface {
	GetByEmail(email string) (*models.Admin, error)
	GetByID(id uint) (*models.Admin, error)
	GetByTenantID(tenantID uint) (*models.Admin, error)
	CountByRole(role string) (int64, error)
	Create(admin *models.Admin) error
	Update(admin *models.Admin) error
	UpdateLastLogin(id uint, at time.Time) error
	WithTx(tx *gorm.DB) *GormAdminRepository
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建后台账号仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAdminRepository) WithTx(tx *gorm.DB) *GormAdminRepository {
	if tx == nil {
		return r
	}
	return &GormAdminRepository{db: tx}
}

// GetByEmail 根据邮箱获取账号（忽略大小写）
func (r *GormAdminRepository) GetByEmail(email string) (*models.Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	var admin models.Admin
	if err := r.db.Where(lowerEqualsExpr("email"), email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID 根据 ID 获取账号
func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByTenantID 获取店铺的店主账号
func (r *GormAdminRepository) GetByTenantID(tenantID uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("tenant_id = ?", tenantID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// CountByRole 统计指定角色的账号数量
func (r *GormAdminRepository) CountByRole(role string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建账号
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// Update 更新账号
func (r *GormAdminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *GormAdminRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login_at", at).Error
}

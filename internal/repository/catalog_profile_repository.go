package repository

import (
	"errors"

	"github.com/papelaria-next/internal/models"

	"gorm.io/gorm"
)

// CatalogProfileRepository 目录展示配置数据访问接口
type CatalogProfileRepository interface {
	GetByTenant(tenantID uint) (*models.CatalogProfile, error)
	Save(profile *models.CatalogProfile) error
}

// GormCatalogProfileRepository GORM 实现
type GormCatalogProfileRepository struct {
	db *gorm.DB
}

// NewCatalogProfileRepository 创建目录展示配置仓库
func NewCatalogProfileRepository(db *gorm.DB) *GormCatalogProfileRepository {
	return &GormCatalogProfileRepository{db: db}
}

// GetByTenant 获取店铺的目录展示配置
func (r *GormCatalogProfileRepository) GetByTenant(tenantID uint) (*models.CatalogProfile, error) {
	var profile models.CatalogProfile
	if err := r.db.Where("tenant_id = ?", tenantID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Save 创建或更新配置
func (r *GormCatalogProfileRepository) Save(profile *models.CatalogProfile) error {
	if profile.ID == 0 {
		return r.db.Create(profile).Error
	}
	return r.db.Save(profile).Error
}

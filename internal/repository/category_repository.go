package repository

import (
	"errors"

	"github.com/papelaria-next/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类与子分类数据访问接口
type CategoryRepository interface {
	List(tenantID uint) ([]models.Category, error)
	GetByID(tenantID, id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(tenantID, id uint) error
	ListSubcategories(tenantID uint, categoryID uint) ([]models.Subcategory, error)
	GetSubcategory(tenantID, id uint) (*models.Subcategory, error)
	CreateSubcategory(sub *models.Subcategory) error
	UpdateSubcategory(sub *models.Subcategory) error
	DeleteSubcategory(tenantID, id uint) error
	CountProducts(tenantID, categoryID uint) (int64, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表（含子分类）
func (r *GormCategoryRepository) List(tenantID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("tenant_id = ?", tenantID).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(tenantID, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("tenant_id = ?", tenantID).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete 删除分类，同时删除其子分类并解除商品关联
func (r *GormCategoryRepository) Delete(tenantID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("tenant_id = ? AND category_id = ?", tenantID, id).
			Updates(map[string]interface{}{"category_id": nil, "subcategory_id": nil}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ? AND category_id = ?", tenantID, id).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		return tx.Where("tenant_id = ?", tenantID).Delete(&models.Category{}, id).Error
	})
}

// ListSubcategories 子分类列表，categoryID 为 0 时返回全部
func (r *GormCategoryRepository) ListSubcategories(tenantID uint, categoryID uint) ([]models.Subcategory, error) {
	var subs []models.Subcategory
	query := r.db.Where("tenant_id = ?", tenantID)
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Preload("Category").Order("name ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// GetSubcategory 根据 ID 获取子分类
func (r *GormCategoryRepository) GetSubcategory(tenantID, id uint) (*models.Subcategory, error) {
	var sub models.Subcategory
	if err := r.db.Where("tenant_id = ?", tenantID).First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// CreateSubcategory 创建子分类
func (r *GormCategoryRepository) CreateSubcategory(sub *models.Subcategory) error {
	return r.db.Create(sub).Error
}

// UpdateSubcategory 更新子分类
func (r *GormCategoryRepository) UpdateSubcategory(sub *models.Subcategory) error {
	return r.db.Omit("Category").Save(sub).Error
}

// DeleteSubcategory 删除子分类并解除商品关联
func (r *GormCategoryRepository) DeleteSubcategory(tenantID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("tenant_id = ? AND subcategory_id = ?", tenantID, id).
			Update("subcategory_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("tenant_id = ?", tenantID).Delete(&models.Subcategory{}, id).Error
	})
}

// CountProducts 统计分类下商品数量
func (r *GormCategoryRepository) CountProducts(tenantID, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).
		Where("tenant_id = ? AND category_id = ?", tenantID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

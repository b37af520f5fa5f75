package repository

import (
	"errors"
	"strings"

	"github.com/papelaria-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ListActiveForCatalog(tenantID uint) ([]models.Product, error)
	GetByID(tenantID, id uint, onlyActive bool) (*models.Product, error)
	GetProductImage(tenantID, imageID uint) (*models.ProductImage, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(tenantID, id uint) error
	FindVariationCategoryByName(productID uint, name string) (*models.VariationCategory, error)
	SaveVariationCategory(category *models.VariationCategory) error
	GetVariation(productID, id uint) (*models.Variation, error)
	SaveVariation(variation *models.Variation) error
	DeleteVariation(productID, id uint) error
	AddImage(image *models.ProductImage) error
	DeleteImage(productID, id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func preloadProductDetail(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Category").
		Preload("Subcategory").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("VariationCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Variations.Category")
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{}).Where("tenant_id = ?", filter.TenantID)
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SubcategoryID != 0 {
		query = query.Where("subcategory_id = ?", filter.SubcategoryID)
	}
	query = searchScope(filter.Search, "name", "description")(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(filter.Page, filter.PageSize)(query)

	if err := query.Preload("Category").Preload("Subcategory").
		Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListActiveForCatalog 公开目录商品，按分类名、商品名排序
func (r *GormProductRepository) ListActiveForCatalog(tenantID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Model(&models.Product{}).
		Select("products.*").
		Joins("LEFT JOIN categories ON categories.id = products.category_id AND categories.deleted_at IS NULL").
		Where("products.tenant_id = ? AND products.is_active = ?", tenantID, true).
		Preload("Category").
		Preload("Subcategory").
		Order("COALESCE(categories.name, '') ASC, products.name ASC, products.id ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取店铺内商品（含变体、附加图片）
func (r *GormProductRepository) GetByID(tenantID, id uint, onlyActive bool) (*models.Product, error) {
	query := preloadProductDetail(r.db).Where("tenant_id = ?", tenantID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var product models.Product
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetProductImage 获取店铺内商品的附加图片
func (r *GormProductRepository) GetProductImage(tenantID, imageID uint) (*models.ProductImage, error) {
	var image models.ProductImage
	err := r.db.Model(&models.ProductImage{}).
		Joins("JOIN products ON products.id = product_images.product_id AND products.deleted_at IS NULL").
		Where("products.tenant_id = ? AND product_images.id = ?", tenantID, imageID).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	isActive := product.IsActive
	if err := r.db.Omit("Category", "Subcategory", "Images", "Variations", "VariationCategories").Create(product).Error; err != nil {
		return err
	}
	// default:true 会吞掉 false 零值
	if !isActive {
		return r.db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error
	}
	return nil
}

// Update 更新商品基础字段
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Model(&models.Product{}).Where("id = ? AND tenant_id = ?", product.ID, product.TenantID).
		Updates(map[string]interface{}{
			"category_id":    product.CategoryID,
			"subcategory_id": product.SubcategoryID,
			"name":           product.Name,
			"description":    product.Description,
			"price_amount":   product.PriceAmount,
			"stock":          product.Stock,
			"image_url":      product.ImageURL,
			"is_active":      product.IsActive,
		}).Error
}

// Delete 删除商品及其变体、图片
func (r *GormProductRepository) Delete(tenantID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ?", tenantID).Delete(&models.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Variation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.VariationCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error
	})
}

// FindVariationCategoryByName 按名称（忽略大小写）查找商品的变体分组
func (r *GormProductRepository) FindVariationCategoryByName(productID uint, name string) (*models.VariationCategory, error) {
	var category models.VariationCategory
	err := r.db.Where("product_id = ?", productID).
		Where(lowerEqualsExpr("name"), strings.TrimSpace(name)).
		Order("id ASC").
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// SaveVariationCategory 创建或更新变体分组
func (r *GormProductRepository) SaveVariationCategory(category *models.VariationCategory) error {
	if category.ID == 0 {
		return r.db.Create(category).Error
	}
	return r.db.Save(category).Error
}

// GetVariation 获取商品下的变体
func (r *GormProductRepository) GetVariation(productID, id uint) (*models.Variation, error) {
	var variation models.Variation
	if err := r.db.Where("product_id = ?", productID).First(&variation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variation, nil
}

// SaveVariation 创建或更新变体
func (r *GormProductRepository) SaveVariation(variation *models.Variation) error {
	if variation.ID == 0 {
		return r.db.Omit("Category").Create(variation).Error
	}
	return r.db.Omit("Category").Save(variation).Error
}

// DeleteVariation 删除变体
func (r *GormProductRepository) DeleteVariation(productID, id uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.Variation{}, id).Error
}

// AddImage 添加附加图片
func (r *GormProductRepository) AddImage(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

// DeleteImage 删除附加图片
func (r *GormProductRepository) DeleteImage(productID, id uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductImage{}, id).Error
}

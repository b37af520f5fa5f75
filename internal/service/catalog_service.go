package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const catalogCacheTTL = 30 * time.Second

// CatalogService 商品目录服务（商品、分类、子分类、变体）
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CatalogGroup 首页按分类分组的商品
type CatalogGroup struct {
	CategoryID   *uint            `json:"category_id"`
	CategoryName string           `json:"category_name"`
	Products     []models.Product `json:"products"`
}

// CatalogHome 公开首页数据
type CatalogHome struct {
	Products []models.Product `json:"products"`
	Groups   []CatalogGroup   `json:"groups"`
}

func catalogHomeKey(tenantID uint) string {
	return fmt.Sprintf("%s:%d", constants.CacheKeyCatalogHome, tenantID)
}

func categoriesKey(tenantID uint) string {
	return fmt.Sprintf("%s:%d", constants.CacheKeyCategories, tenantID)
}

func subcategoriesKey(tenantID, categoryID uint) string {
	return fmt.Sprintf("%s:%d:%d", constants.CacheKeySubcategories, tenantID, categoryID)
}

// GroupByCategory 按相邻分类分组（输入需已按分类名排序）
func GroupByCategory(products []models.Product) []CatalogGroup {
	groups := make([]CatalogGroup, 0)
	for _, product := range products {
		name := ""
		if product.Category != nil {
			name = product.Category.Name
		}
		if n := len(groups); n > 0 && sameCategory(groups[n-1].CategoryID, product.CategoryID) {
			groups[n-1].Products = append(groups[n-1].Products, product)
			continue
		}
		groups = append(groups, CatalogGroup{
			CategoryID:   product.CategoryID,
			CategoryName: name,
			Products:     []models.Product{product},
		})
	}
	return groups
}

func sameCategory(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Home 公开首页（Redis 缓存 30 秒）
func (s *CatalogService) Home(ctx context.Context, tenantID uint) (*CatalogHome, error) {
	key := catalogHomeKey(tenantID)
	var cached CatalogHome
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("catalog_home_cache_get_failed", "tenant_id", tenantID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	products, err := s.productRepo.ListActiveForCatalog(tenantID)
	if err != nil {
		return nil, err
	}
	home := &CatalogHome{Products: products, Groups: GroupByCategory(products)}
	if err := cache.SetJSON(ctx, key, home, catalogCacheTTL); err != nil {
		logger.Warnw("catalog_home_cache_set_failed", "tenant_id", tenantID, "error", err)
	}
	return home, nil
}

// GetPublicProduct 公开商品详情（仅上架商品）
func (s *CatalogService) GetPublicProduct(tenantID, productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(tenantID, productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProduct 后台商品详情
func (s *CatalogService) GetProduct(tenantID, productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(tenantID, productID, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProductImage 获取店铺内的附加图片
func (s *CatalogService) GetProductImage(tenantID, imageID uint) (*models.ProductImage, error) {
	image, err := s.productRepo.GetProductImage(tenantID, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrProductNotFound
	}
	return image, nil
}

// ListProducts 后台商品列表
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// VariationInput 变体写入输入
type VariationInput struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Size            string `json:"size"`
	AdditionalPrice string `json:"additional_price"`
	CategoryName    string `json:"category_name"`
	MaxChoices      int    `json:"max_choices"`
	Delete          bool   `json:"delete"`
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name           string
	Description    string
	Price          string
	Stock          int
	ImageURL       string
	IsActive       *bool
	CategoryID     *uint
	SubcategoryID  *uint
	ExtraImages    []string
	RemoveImageIDs []uint
	Variations     []VariationInput
}

func (s *CatalogService) applyProductInput(tenantID uint, product *models.Product, input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrProductNameRequired
	}
	price, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(input.Price, ",", ".")))
	if err != nil || price.IsNegative() {
		return ErrProductPriceInvalid
	}
	if input.Stock < 0 {
		return ErrProductStockInvalid
	}

	categoryID, subcategoryID, err := s.resolveCategoryRefs(tenantID, input.CategoryID, input.SubcategoryID)
	if err != nil {
		return err
	}

	product.TenantID = tenantID
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.PriceAmount = models.NewMoneyFromDecimal(price)
	product.Stock = input.Stock
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.CategoryID = categoryID
	product.SubcategoryID = subcategoryID
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return nil
}

func (s *CatalogService) resolveCategoryRefs(tenantID uint, categoryID, subcategoryID *uint) (*uint, *uint, error) {
	if categoryID != nil && *categoryID == 0 {
		categoryID = nil
	}
	if subcategoryID != nil && *subcategoryID == 0 {
		subcategoryID = nil
	}
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(tenantID, *categoryID)
		if err != nil {
			return nil, nil, err
		}
		if category == nil {
			return nil, nil, ErrCategoryNotFound
		}
	}
	if subcategoryID != nil {
		sub, err := s.categoryRepo.GetSubcategory(tenantID, *subcategoryID)
		if err != nil {
			return nil, nil, err
		}
		if sub == nil {
			return nil, nil, ErrSubcategoryNotFound
		}
		if categoryID == nil {
			parent := sub.CategoryID
			categoryID = &parent
		} else if sub.CategoryID != *categoryID {
			return nil, nil, ErrSubcategoryNotFound
		}
	}
	return categoryID, subcategoryID, nil
}

// CreateProduct 创建商品（含变体与附加图片）
func (s *CatalogService) CreateProduct(ctx context.Context, tenantID uint, input ProductInput) (*models.Product, error) {
	product := &models.Product{IsActive: true}
	if err := s.applyProductInput(tenantID, product, input); err != nil {
		return nil, err
	}
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		if err := repo.Create(product); err != nil {
			return err
		}
		return s.syncProductChildren(repo, product.ID, input)
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateCatalog(ctx, tenantID)
	return s.GetProduct(tenantID, product.ID)
}

// UpdateProduct 更新商品（含变体与附加图片）
func (s *CatalogService) UpdateProduct(ctx context.Context, tenantID, productID uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.applyProductInput(tenantID, product, input); err != nil {
		return nil, err
	}
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		if err := repo.Update(product); err != nil {
			return err
		}
		return s.syncProductChildren(repo, product.ID, input)
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateCatalog(ctx, tenantID)
	return s.GetProduct(tenantID, product.ID)
}

func (s *CatalogService) syncProductChildren(repo repository.ProductRepository, productID uint, input ProductInput) error {
	for _, id := range input.RemoveImageIDs {
		if err := repo.DeleteImage(productID, id); err != nil {
			return err
		}
	}
	for _, url := range input.ExtraImages {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if err := repo.AddImage(&models.ProductImage{ProductID: productID, URL: url}); err != nil {
			return err
		}
	}
	return upsertVariations(repo, productID, input.Variations)
}

// upsertVariations 按名称（忽略大小写）匹配变体分组，不存在时创建
func upsertVariations(repo repository.ProductRepository, productID uint, inputs []VariationInput) error {
	for _, input := range inputs {
		if input.Delete {
			if input.ID != 0 {
				if err := repo.DeleteVariation(productID, input.ID); err != nil {
					return err
				}
			}
			continue
		}

		name := strings.TrimSpace(input.Name)
		if name == "" {
			return ErrVariationInvalid
		}
		extra := decimal.Zero
		if raw := strings.TrimSpace(strings.ReplaceAll(input.AdditionalPrice, ",", ".")); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				return ErrVariationInvalid
			}
			extra = parsed
		}

		categoryID, err := upsertVariationCategory(repo, productID, input.CategoryName, input.MaxChoices)
		if err != nil {
			return err
		}

		variation := &models.Variation{ProductID: productID}
		if input.ID != 0 {
			found, err := repo.GetVariation(productID, input.ID)
			if err != nil {
				return err
			}
			if found == nil {
				return ErrVariationInvalid
			}
			variation = found
		}
		variation.Name = name
		variation.Size = strings.TrimSpace(input.Size)
		variation.AdditionalPrice = models.NewMoneyFromDecimal(extra)
		variation.CategoryID = categoryID
		if err := repo.SaveVariation(variation); err != nil {
			return err
		}
	}
	return nil
}

func upsertVariationCategory(repo repository.ProductRepository, productID uint, rawName string, maxChoices int) (*uint, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, nil
	}
	if maxChoices <= 0 {
		maxChoices = 1
	}
	category, err := repo.FindVariationCategoryByName(productID, name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		category = &models.VariationCategory{ProductID: productID, Name: name, MaxChoices: maxChoices}
		if err := repo.SaveVariationCategory(category); err != nil {
			return nil, err
		}
	} else if category.MaxChoices != maxChoices {
		category.MaxChoices = maxChoices
		if err := repo.SaveVariationCategory(category); err != nil {
			return nil, err
		}
	}
	return &category.ID, nil
}

// DeleteProduct 删除商品
func (s *CatalogService) DeleteProduct(ctx context.Context, tenantID, productID uint) error {
	if _, err := s.GetProduct(tenantID, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(tenantID, productID); err != nil {
		return err
	}
	s.InvalidateCatalog(ctx, tenantID)
	return nil
}

// InvalidateCatalog 失效店铺的目录缓存
func (s *CatalogService) InvalidateCatalog(ctx context.Context, tenantID uint) {
	if err := cache.Del(ctx, catalogHomeKey(tenantID), categoriesKey(tenantID)); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "tenant_id", tenantID, "error", err)
	}
}

// ListCategories 分类列表（Redis 缓存 30 秒）
func (s *CatalogService) ListCategories(ctx context.Context, tenantID uint) ([]models.Category, error) {
	key := categoriesKey(tenantID)
	var cached []models.Category
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("catalog_categories_cache_get_failed", "tenant_id", tenantID, "error", err)
	}
	if hit {
		return cached, nil
	}
	categories, err := s.categoryRepo.List(tenantID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, categories, catalogCacheTTL); err != nil {
		logger.Warnw("catalog_categories_cache_set_failed", "tenant_id", tenantID, "error", err)
	}
	return categories, nil
}

// CategoryInput 分类输入
type CategoryInput struct {
	Name        string
	Description string
}

// CreateCategory 创建分类
func (s *CatalogService) CreateCategory(ctx context.Context, tenantID uint, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	category := &models.Category{TenantID: tenantID, Name: name, Description: strings.TrimSpace(input.Description)}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	s.InvalidateCatalog(ctx, tenantID)
	return category, nil
}

// UpdateCategory 更新分类
func (s *CatalogService) UpdateCategory(ctx context.Context, tenantID, id uint, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	category, err := s.categoryRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.InvalidateCatalog(ctx, tenantID)
	return category, nil
}

// DeleteCategory 删除分类
func (s *CatalogService) DeleteCategory(ctx context.Context, tenantID, id uint) error {
	category, err := s.categoryRepo.GetByID(tenantID, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	if err := s.categoryRepo.Delete(tenantID, id); err != nil {
		return err
	}
	s.InvalidateCatalog(ctx, tenantID)
	_ = cache.Del(ctx, subcategoriesKey(tenantID, id), subcategoriesKey(tenantID, 0))
	return nil
}

// ListSubcategories 子分类列表（Redis 缓存 30 秒），categoryID 为 0 时返回全部
func (s *CatalogService) ListSubcategories(ctx context.Context, tenantID, categoryID uint) ([]models.Subcategory, error) {
	key := subcategoriesKey(tenantID, categoryID)
	var cached []models.Subcategory
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("catalog_subcategories_cache_get_failed", "tenant_id", tenantID, "error", err)
	}
	if hit {
		return cached, nil
	}
	subs, err := s.categoryRepo.ListSubcategories(tenantID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, subs, catalogCacheTTL); err != nil {
		logger.Warnw("catalog_subcategories_cache_set_failed", "tenant_id", tenantID, "error", err)
	}
	return subs, nil
}

// SubcategoryInput 子分类输入
type SubcategoryInput struct {
	CategoryID uint
	Name       string
}

func (s *CatalogService) requireCategory(tenantID, categoryID uint) error {
	if categoryID == 0 {
		return ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetByID(tenantID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *CatalogService) invalidateSubcategories(ctx context.Context, tenantID uint, categoryIDs ...uint) {
	keys := []string{subcategoriesKey(tenantID, 0), categoriesKey(tenantID), catalogHomeKey(tenantID)}
	for _, id := range categoryIDs {
		keys = append(keys, subcategoriesKey(tenantID, id))
	}
	if err := cache.Del(ctx, keys...); err != nil {
		logger.Warnw("catalog_subcategories_invalidate_failed", "tenant_id", tenantID, "error", err)
	}
}

// CreateSubcategory 创建子分类（上级分类需属于当前店铺）
func (s *CatalogService) CreateSubcategory(ctx context.Context, tenantID uint, input SubcategoryInput) (*models.Subcategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	if err := s.requireCategory(tenantID, input.CategoryID); err != nil {
		return nil, err
	}
	sub := &models.Subcategory{TenantID: tenantID, CategoryID: input.CategoryID, Name: name}
	if err := s.categoryRepo.CreateSubcategory(sub); err != nil {
		return nil, err
	}
	s.invalidateSubcategories(ctx, tenantID, sub.CategoryID)
	return sub, nil
}

// UpdateSubcategory 更新子分类
func (s *CatalogService) UpdateSubcategory(ctx context.Context, tenantID, id uint, input SubcategoryInput) (*models.Subcategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	sub, err := s.categoryRepo.GetSubcategory(tenantID, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubcategoryNotFound
	}
	previous := sub.CategoryID
	if input.CategoryID != 0 && input.CategoryID != sub.CategoryID {
		if err := s.requireCategory(tenantID, input.CategoryID); err != nil {
			return nil, err
		}
		sub.CategoryID = input.CategoryID
	}
	sub.Name = name
	if err := s.categoryRepo.UpdateSubcategory(sub); err != nil {
		return nil, err
	}
	s.invalidateSubcategories(ctx, tenantID, previous, sub.CategoryID)
	return sub, nil
}

// DeleteSubcategory 删除子分类
func (s *CatalogService) DeleteSubcategory(ctx context.Context, tenantID, id uint) error {
	sub, err := s.categoryRepo.GetSubcategory(tenantID, id)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubcategoryNotFound
	}
	if err := s.categoryRepo.DeleteSubcategory(tenantID, id); err != nil {
		return err
	}
	s.invalidateSubcategories(ctx, tenantID, sub.CategoryID)
	return nil
}

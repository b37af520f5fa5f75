package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/queue"
	"github.com/papelaria-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cache.UseClient(nil, "")
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func testServiceConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:             "test-secret",
			ExpireHours:           24,
			RememberMeExpireHours: 720,
		},
		Security: config.SecurityConfig{
			LoginRateLimit: config.RateLimitConfig{WindowSeconds: 300, MaxAttempts: 5, BlockSeconds: 900},
		},
	}
}

// storeFixture 店铺 + 商品目录 + 购物车/订单服务
type storeFixture struct {
	db        *gorm.DB
	tenant    *models.Tenant
	product   *models.Product
	capaAzul  models.Variation
	capaRosa  models.Variation
	adesivos  models.Variation
	tenants   *TenantService
	catalog   *CatalogService
	carts     *CartService
	orders    *OrderService
	orderRepo repository.OrderRepository
}

func newStoreFixture(t *testing.T, uploader ImageUploader) *storeFixture {
	t.Helper()
	db := openServiceTestDB(t)

	slug := "papelaria-lua"
	tenant := &models.Tenant{BusinessName: "Papelaria Lua", Slug: &slug, WhatsApp: "5511999990000", IsActive: true}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}
	product := &models.Product{
		TenantID:    tenant.ID,
		Name:        "Agenda 2026",
		PriceAmount: mustMoney("75.00"),
		Stock:       10,
		ImageURL:    "https://i.ibb.co/agenda.jpg",
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	capa := &models.VariationCategory{ProductID: product.ID, Name: "Capa", MaxChoices: 1}
	if err := db.Create(capa).Error; err != nil {
		t.Fatalf("create variation category failed: %v", err)
	}
	variations := []models.Variation{
		{ProductID: product.ID, CategoryID: &capa.ID, Name: "Azul", AdditionalPrice: mustMoney("0")},
		{ProductID: product.ID, CategoryID: &capa.ID, Name: "Rosa", AdditionalPrice: mustMoney("5.00")},
		{ProductID: product.ID, Name: "Adesivos", Size: "A5", AdditionalPrice: mustMoney("3.50")},
	}
	if err := db.Create(&variations).Error; err != nil {
		t.Fatalf("create variations failed: %v", err)
	}

	cfg := testServiceConfig()
	tenantRepo := repository.NewTenantRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	auth := NewAuthService(cfg, adminRepo, tenantRepo)
	tenants := NewTenantService(tenantRepo, adminRepo, auth)
	catalog := NewCatalogService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	store := NewGormCartStore(repository.NewCartSessionRepository(db), 0)
	carts := NewCartService(store, catalog, tenants)
	orderRepo := repository.NewOrderRepository(db)
	queueClient, _ := queue.NewClient(nil)
	orders := NewOrderService(orderRepo, carts, tenants, uploader, NewCaptchaService(config.CaptchaConfig{}), queueClient)

	return &storeFixture{
		db:        db,
		tenant:    tenant,
		product:   product,
		capaAzul:  variations[0],
		capaRosa:  variations[1],
		adesivos:  variations[2],
		tenants:   tenants,
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
		orderRepo: orderRepo,
	}
}

func idString(id uint) string {
	return fmt.Sprintf("%d", id)
}

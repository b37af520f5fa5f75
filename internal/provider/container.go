package provider

import (
	"time"

	"github.com/papelaria-next/internal/authz"
	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/queue"
	"github.com/papelaria-next/internal/repository"
	"github.com/papelaria-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo          repository.AdminRepository
	TenantRepo         repository.TenantRepository
	CatalogProfileRepo repository.CatalogProfileRepository
	CategoryRepo       repository.CategoryRepository
	ProductRepo        repository.ProductRepository
	OrderRepo          repository.OrderRepository
	CartSessionRepo    repository.CartSessionRepository

	// Services
	AuthzService          *authz.Service
	AuthService           *service.AuthService
	TenantService         *service.TenantService
	CaptchaService        *service.CaptchaService
	UploadService         *service.UploadService
	CatalogService        *service.CatalogService
	CatalogProfileService *service.CatalogProfileService
	ImageCacheService     *service.ImageCacheService
	CartStore             service.CartStore
	CartService           *service.CartService
	OrderService          *service.OrderService
}

// NewContainer 初始化容器（使用全局数据库连接）
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c, err := NewContainerWithDB(cfg, models.DB, queueClient)
	if err != nil {
		logger.Errorw("provider_init_failed", "error", err)
		panic(err)
	}
	return c
}

// NewContainerWithDB 基于指定数据库构建容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) (*Container, error) {
	if queueClient == nil {
		queueClient, _ = queue.NewClient(nil)
	}
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.TenantRepo = repository.NewTenantRepository(db)
	c.CatalogProfileRepo = repository.NewCatalogProfileRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CartSessionRepo = repository.NewCartSessionRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		return err
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.TenantRepo)
	c.TenantService = service.NewTenantService(c.TenantRepo, c.AdminRepo, c.AuthService)
	c.UploadService = service.NewUploadService(c.Config)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo)
	c.CatalogProfileService = service.NewCatalogProfileService(c.CatalogProfileRepo, c.UploadService)
	c.ImageCacheService = service.NewImageCacheService(c.Config.ImageCache, c.CatalogService)
	c.CartStore = service.NewCartStore(c.CartSessionRepo, time.Duration(c.Config.Cart.TTLHours)*time.Hour)
	c.CartService = service.NewCartService(c.CartStore, c.CatalogService, c.TenantService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartService, c.TenantService, c.UploadService, c.CaptchaService, c.QueueClient)
	return nil
}

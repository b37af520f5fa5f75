package router

import (
	"fmt"
	"strings"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/config"
	adminhandlers "github.com/papelaria-next/internal/http/handlers/admin"
	publichandlers "github.com/papelaria-next/internal/http/handlers/public"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pp"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/captcha/config", publicHandler.GetCaptchaConfig)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)

			shop := public.Group("/shops/:tenant")
			{
				shop.GET("", publicHandler.GetShop)
				shop.GET("/products", publicHandler.GetHome)
				shop.GET("/products/:id", publicHandler.GetProduct)
				shop.GET("/images/products/:id", publicHandler.GetProductImage)
				shop.GET("/images/extra/:id", publicHandler.GetExtraImage)
				shop.POST("/cart/items", CartSessionMiddleware(cfg.Cart), publicHandler.AddCartItem)
			}

			// 购物车（会话 Cookie）
			cart := public.Group("")
			cart.Use(CartSessionMiddleware(cfg.Cart))
			{
				cart.GET("/cart", publicHandler.GetCart)
				cart.GET("/cart/summary", publicHandler.GetCartSummary)
				cart.POST("/cart/items", publicHandler.AddCartItem)
				cart.POST("/cart/items/update", publicHandler.UpdateCartItem)
				cart.DELETE("/cart", publicHandler.ClearCart)
				cart.POST("/checkout", RateLimitMiddleware(redisClient, checkoutRule, KeyByTenantAndIP), publicHandler.Checkout)
			}
		}

		// 管理接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("email")), adminHandler.Login)

			// 需要鉴权的接口
			authorized := admin.Use(
				JWTAuthMiddleware(c.AuthService),
				AdminRBACMiddleware(c.AuthzService),
				TenantActiveMiddleware(c.TenantService),
			)
			{
				authorized.GET("/me", adminHandler.GetMe)
				authorized.POST("/password", adminHandler.UpdatePassword)

				// 店铺资料与目录展示
				authorized.GET("/tenant", adminHandler.GetTenant)
				authorized.PUT("/tenant", adminHandler.UpdateTenant)
				authorized.GET("/catalog-profile", adminHandler.GetCatalogProfile)
				authorized.PUT("/catalog-profile", adminHandler.UpdateCatalogProfile)

				// 商品管理
				authorized.GET("/products", adminHandler.ListProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 分类管理
				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/subcategories", adminHandler.ListSubcategories)
				authorized.POST("/subcategories", adminHandler.CreateSubcategory)
				authorized.PUT("/subcategories/:id", adminHandler.UpdateSubcategory)
				authorized.DELETE("/subcategories/:id", adminHandler.DeleteSubcategory)

				// 订单管理
				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/stats", adminHandler.GetOrderStats)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authorized.DELETE("/orders/:id", adminHandler.DeleteOrder)

				// 图片上传
				authorized.POST("/upload", adminHandler.UploadImage)

				// 平台店铺管理（运营）
				authorized.GET("/tenants", adminHandler.ListTenants)
				authorized.POST("/tenants", adminHandler.CreateTenant)
				authorized.GET("/tenants/:id", adminHandler.GetTenantByID)
				authorized.PATCH("/tenants/:id/access", adminHandler.UpdateTenantAccess)
				authorized.POST("/tenants/:id/reset-password", adminHandler.ResetTenantPassword)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

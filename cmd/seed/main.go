package main

import (
	"context"
	"errors"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/provider"
	"github.com/papelaria-next/internal/service"
)

const (
	demoBusinessName  = "Papelaria Lua"
	demoWhatsApp      = "5511999990000"
	demoOwnerEmail    = "dona@papelaria-lua.local"
	demoOwnerPassword = "papelaria123"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.InitDefaultOperator(cfg.Bootstrap.OperatorEmail, cfg.Bootstrap.OperatorPassword); err != nil {
		stdLog.Printf("Failed to create default operator: %v", err)
	}

	// 种子数据不依赖 Redis
	cache.UseClient(nil, "")
	container, err := provider.NewContainerWithDB(cfg, models.DB, nil)
	if err != nil {
		stdLog.Fatalf("Failed to build container: %v", err)
	}
	ctx := context.Background()

	tenant, err := container.TenantService.CreateTenant(ctx, service.CreateTenantInput{
		BusinessName:  demoBusinessName,
		WhatsApp:      demoWhatsApp,
		OwnerEmail:    demoOwnerEmail,
		OwnerPassword: demoOwnerPassword,
	})
	if errors.Is(err, service.ErrEmailTaken) {
		stdLog.Printf("Demo tenant already exists: %s", demoOwnerEmail)
		return
	}
	if err != nil {
		stdLog.Fatalf("Failed to create demo tenant: %v", err)
	}
	stdLog.Printf("Created tenant: %s (slug %s)", tenant.BusinessName, tenant.SlugValue())

	agendas, err := container.CatalogService.CreateCategory(ctx, tenant.ID, service.CategoryInput{
		Name:        "Agendas",
		Description: "Agendas personalizadas",
	})
	if err != nil {
		stdLog.Fatalf("Failed to create category: %v", err)
	}
	cadernos, err := container.CatalogService.CreateCategory(ctx, tenant.ID, service.CategoryInput{
		Name: "Cadernos",
	})
	if err != nil {
		stdLog.Fatalf("Failed to create category: %v", err)
	}

	products := []service.ProductInput{
		{
			Name:        "Agenda 2026",
			Description: "Agenda diária com capa personalizada",
			Price:       "75.00",
			Stock:       20,
			ImageURL:    "https://i.ibb.co/agenda-2026.jpg",
			CategoryID:  &agendas.ID,
			Variations: []service.VariationInput{
				{Name: "Azul", CategoryName: "Capa", MaxChoices: 1, AdditionalPrice: "0"},
				{Name: "Rosa", CategoryName: "Capa", MaxChoices: 1, AdditionalPrice: "5.00"},
				{Name: "Adesivos", Size: "A5", AdditionalPrice: "3.50"},
			},
		},
		{
			Name:       "Caderno Pontilhado",
			Price:      "39.90",
			Stock:      35,
			ImageURL:   "https://i.ibb.co/caderno-pontilhado.jpg",
			CategoryID: &cadernos.ID,
			Variations: []service.VariationInput{
				{Name: "A5", CategoryName: "Tamanho", MaxChoices: 1, AdditionalPrice: "0"},
				{Name: "A4", CategoryName: "Tamanho", MaxChoices: 1, AdditionalPrice: "8.00"},
				{Name: "Elástico", CategoryName: "Extras", MaxChoices: 2, AdditionalPrice: "2.00"},
				{Name: "Marcador", CategoryName: "Extras", MaxChoices: 2, AdditionalPrice: "1.50"},
			},
		},
	}
	for _, input := range products {
		product, err := container.CatalogService.CreateProduct(ctx, tenant.ID, input)
		if err != nil {
			stdLog.Printf("Failed to create product %s: %v", input.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s (#%d)", product.Name, product.ID)
	}

	stdLog.Printf("Seed finished. Owner login: %s / %s", demoOwnerEmail, demoOwnerPassword)
}

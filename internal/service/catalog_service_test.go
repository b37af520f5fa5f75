package service

import (
	"context"
	"errors"
	"testing"
)

func TestCatalogCreateProductUpsertsVariationCategories(t *testing.T) {
	fx := newStoreFixture(t, nil)
	ctx := context.Background()

	product, err := fx.catalog.CreateProduct(ctx, fx.tenant.ID, ProductInput{
		Name:        "Planner",
		Price:       "49,90",
		Stock:       3,
		ExtraImages: []string{"https://i.ibb.co/planner-2.jpg", " "},
		Variations: []VariationInput{
			{Name: "Lilás", CategoryName: "Capa", MaxChoices: 1},
			{Name: "Verde", CategoryName: "capa", AdditionalPrice: "4,00"},
			{Name: "Elástico"},
		},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.PriceAmount.String() != "49.90" {
		t.Fatalf("price want 49.90 got %s", product.PriceAmount.String())
	}
	if !product.IsActive {
		t.Fatalf("new product should be active")
	}
	if len(product.Images) != 1 {
		t.Fatalf("want 1 extra image got %d", len(product.Images))
	}
	if len(product.VariationCategories) != 1 {
		t.Fatalf("categories should match case-insensitively, got %d", len(product.VariationCategories))
	}
	if len(product.Variations) != 3 {
		t.Fatalf("want 3 variations got %d", len(product.Variations))
	}
	grouped := 0
	for _, variation := range product.Variations {
		if variation.CategoryID != nil {
			grouped++
		}
	}
	if grouped != 2 {
		t.Fatalf("want 2 grouped variations got %d", grouped)
	}
}

func TestCatalogUpdateProductDeletesAndRetunesVariations(t *testing.T) {
	fx := newStoreFixture(t, nil)
	ctx := context.Background()

	inactive := false
	product, err := fx.catalog.UpdateProduct(ctx, fx.tenant.ID, fx.product.ID, ProductInput{
		Name:     "Agenda 2026",
		Price:    "80",
		IsActive: &inactive,
		Variations: []VariationInput{
			{ID: fx.adesivos.ID, Delete: true},
			{ID: fx.capaAzul.ID, Name: "Azul", CategoryName: "CAPA", MaxChoices: 2},
		},
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if product.IsActive {
		t.Fatalf("product should be inactive")
	}
	if len(product.Variations) != 2 {
		t.Fatalf("want 2 variations after delete got %d", len(product.Variations))
	}
	if len(product.VariationCategories) != 1 || product.VariationCategories[0].MaxChoices != 2 {
		t.Fatalf("max choices should be updated: %+v", product.VariationCategories)
	}

	if _, err := fx.catalog.GetPublicProduct(fx.tenant.ID, fx.product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product should be hidden, got %v", err)
	}
}

func TestCatalogProductValidation(t *testing.T) {
	fx := newStoreFixture(t, nil)
	ctx := context.Background()

	if _, err := fx.catalog.CreateProduct(ctx, fx.tenant.ID, ProductInput{Price: "10"}); !errors.Is(err, ErrProductNameRequired) {
		t.Fatalf("want name required got %v", err)
	}
	if _, err := fx.catalog.CreateProduct(ctx, fx.tenant.ID, ProductInput{Name: "X", Price: "abc"}); !errors.Is(err, ErrProductPriceInvalid) {
		t.Fatalf("want price invalid got %v", err)
	}
	if _, err := fx.catalog.CreateProduct(ctx, fx.tenant.ID, ProductInput{Name: "X", Price: "1", Stock: -1}); !errors.Is(err, ErrProductStockInvalid) {
		t.Fatalf("want stock invalid got %v", err)
	}
	missing := uint(404)
	if _, err := fx.catalog.CreateProduct(ctx, fx.tenant.ID, ProductInput{Name: "X", Price: "1", CategoryID: &missing}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want category not found got %v", err)
	}
}

func TestCatalogSubcategoryRequiresOwnedParent(t *testing.T) {
	fx := newStoreFixture(t, nil)
	ctx := context.Background()

	if _, err := fx.catalog.CreateSubcategory(ctx, fx.tenant.ID, SubcategoryInput{CategoryID: 999, Name: "A5"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want category not found got %v", err)
	}
	category, err := fx.catalog.CreateCategory(ctx, fx.tenant.ID, CategoryInput{Name: "Agendas"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	sub, err := fx.catalog.CreateSubcategory(ctx, fx.tenant.ID, SubcategoryInput{CategoryID: category.ID, Name: "A5"})
	if err != nil {
		t.Fatalf("create subcategory failed: %v", err)
	}

	product, err := fx.catalog.CreateProduct(ctx, fx.tenant.ID, ProductInput{Name: "Agenda A5", Price: "30", SubcategoryID: &sub.ID})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.CategoryID == nil || *product.CategoryID != category.ID {
		t.Fatalf("category should follow subcategory parent: %v", product.CategoryID)
	}

	if err := fx.catalog.DeleteCategory(ctx, fx.tenant.ID, category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	reloaded, err := fx.catalog.GetProduct(fx.tenant.ID, product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if reloaded.CategoryID != nil || reloaded.SubcategoryID != nil {
		t.Fatalf("category refs should be cleared: %v %v", reloaded.CategoryID, reloaded.SubcategoryID)
	}
}

func TestCatalogHomeGroupsByCategory(t *testing.T) {
	fx := newStoreFixture(t, nil)
	ctx := context.Background()

	category, err := fx.catalog.CreateCategory(ctx, fx.tenant.ID, CategoryInput{Name: "Cadernos"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	for _, name := range []string{"Caderno B", "Caderno A"} {
		if _, err := fx.catalog.CreateProduct(ctx, fx.tenant.ID, ProductInput{Name: name, Price: "15", CategoryID: &category.ID}); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	home, err := fx.catalog.Home(ctx, fx.tenant.ID)
	if err != nil {
		t.Fatalf("home failed: %v", err)
	}
	if len(home.Products) != 3 {
		t.Fatalf("want 3 products got %d", len(home.Products))
	}
	if len(home.Groups) != 2 {
		t.Fatalf("want 2 groups got %d", len(home.Groups))
	}
	cadernos := home.Groups[1]
	if cadernos.CategoryName != "Cadernos" || cadernos.Products[0].Name != "Caderno A" {
		t.Fatalf("unexpected group: %+v", cadernos)
	}
}

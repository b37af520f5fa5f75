package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/papelaria-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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

func createTestTenant(t *testing.T, db *gorm.DB, name, slug string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{BusinessName: name, IsActive: true}
	if slug != "" {
		tenant.Slug = &slug
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}
	return tenant
}

func testMoney(raw string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(raw))
}

package repository

import (
	"testing"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/models"
)

func TestOrderRepositoryLifecycle(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	shop := createTestTenant(t, db, "Papelaria Lua", "lua")
	other := createTestTenant(t, db, "Outra", "outra")

	productID := uint(1)
	order := &models.Order{
		TenantID:    shop.ID,
		Customer:    "Ana (11999990000)",
		Status:      constants.OrderStatusPending,
		TotalAmount: testMoney("235.00"),
	}
	items := []models.OrderItem{{
		ProductID:    &productID,
		ProductName:  "Agenda 2026 - Vermelha",
		Quantity:     3,
		UnitPrice:    testMoney("78.33"),
		ItemKey:      "1:11-2",
		VariationID:  "11",
		VariationIDs: models.StringArray{"11", "2"},
	}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	loaded, err := repo.GetByID(shop.ID, order.ID)
	if err != nil || loaded == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(loaded.Items) != 1 || len(loaded.Items[0].VariationIDs) != 2 {
		t.Fatalf("order items should persist variation ids, got %+v", loaded.Items)
	}
	if !loaded.TotalAmount.Equal(testMoney("235").Decimal) {
		t.Fatalf("total want 235.00 got %s", loaded.TotalAmount.String())
	}

	if foreign, _ := repo.GetByID(other.ID, order.ID); foreign != nil {
		t.Fatalf("order should be scoped by tenant")
	}

	affected, err := repo.UpdateStatus(shop.ID, order.ID, constants.OrderStatusFinished)
	if err != nil || affected != 1 {
		t.Fatalf("update status want 1 row got %d (%v)", affected, err)
	}

	counts, err := repo.CountByStatus(shop.ID)
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if len(counts) != 1 || counts[0].Status != constants.OrderStatusFinished || counts[0].Count != 1 {
		t.Fatalf("unexpected status counts: %+v", counts)
	}

	list, total, err := repo.ListByTenant(OrderListFilter{TenantID: shop.ID, Page: 1, PageSize: 10})
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("list want 1 got %d/%d (%v)", total, len(list), err)
	}

	affected, err = repo.Delete(shop.ID, order.ID)
	if err != nil || affected != 1 {
		t.Fatalf("delete want 1 row got %d (%v)", affected, err)
	}
}

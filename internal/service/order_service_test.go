package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/repository"
)

func addAgendaToCart(t *testing.T, fx *storeFixture) {
	t.Helper()
	_, err := fx.carts.AddItem(context.Background(), AddCartItemInput{
		SessionID:        testSession,
		TenantIdentifier: "papelaria-lua",
		ProductID:        fx.product.ID,
		Quantity:         "2",
		VariationIDs:     []string{idString(fx.capaRosa.ID), idString(fx.adesivos.ID)},
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	fx := newStoreFixture(t, stubUploader{url: "https://i.ibb.co/capa.jpg"})
	ctx := context.Background()
	addAgendaToCart(t, fx)

	result, err := fx.orders.Checkout(ctx, CheckoutInput{
		SessionID: testSession,
		Name:      "Ana",
		Phone:     "11 98888-7777",
		CoverName: "Ana 2026",
		Cover:     &multipart.FileHeader{Filename: "capa.png"},
		ClientIP:  "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.Tenant.ID != fx.tenant.ID {
		t.Fatalf("tenant should come from the cart, want %d got %d", fx.tenant.ID, result.Tenant.ID)
	}

	order, err := fx.orders.GetOrder(fx.tenant.ID, result.Order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if order.Customer != "Ana (11 98888-7777)" {
		t.Fatalf("unexpected customer: %s", order.Customer)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if order.TotalAmount.String() != "167.00" {
		t.Fatalf("total want 167.00 got %s", order.TotalAmount.String())
	}
	if order.CoverURL != "https://i.ibb.co/capa.jpg" || order.BackCoverURL != "" {
		t.Fatalf("unexpected cover urls: %q %q", order.CoverURL, order.BackCoverURL)
	}
	if len(order.Items) != 1 {
		t.Fatalf("want 1 item got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.Quantity != 2 || item.UnitPrice.String() != "83.50" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.VariationLabel != "Rosa, Adesivos / A5" || len(item.VariationIDs) != 2 {
		t.Fatalf("variation snapshot lost: %+v", item)
	}
	if item.ProductID == nil || *item.ProductID != fx.product.ID {
		t.Fatalf("product id snapshot want %d got %v", fx.product.ID, item.ProductID)
	}

	summary, err := fx.carts.Summary(ctx, testSession)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("cart should be cleared after checkout: %+v", summary.Items)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	fx := newStoreFixture(t, nil)
	_, err := fx.orders.Checkout(context.Background(), CheckoutInput{SessionID: testSession, TenantIdentifier: "missing"})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want cart empty got %v", err)
	}
}

func TestCheckoutUnknownTenant(t *testing.T) {
	fx := newStoreFixture(t, nil)
	addAgendaToCart(t, fx)
	_, err := fx.orders.Checkout(context.Background(), CheckoutInput{SessionID: testSession, TenantIdentifier: "missing"})
	if !errors.Is(err, ErrTenantNotFound) {
		t.Fatalf("want tenant not found got %v", err)
	}
}

func TestCheckoutRejectsCartFromAnotherTenant(t *testing.T) {
	fx := newStoreFixture(t, nil)
	ctx := context.Background()
	slug := "estrela-papeis"
	other := &models.Tenant{BusinessName: "Estrela Papeis", Slug: &slug, WhatsApp: "5511988880000", IsActive: true}
	if err := fx.db.Create(other).Error; err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}
	addAgendaToCart(t, fx)

	_, err := fx.orders.Checkout(ctx, CheckoutInput{
		SessionID:        testSession,
		TenantIdentifier: idString(other.ID),
		Phone:            "11999990000",
	})
	if !errors.Is(err, ErrCartTenantMismatch) {
		t.Fatalf("want cart tenant mismatch got %v", err)
	}
	for _, tenantID := range []uint{fx.tenant.ID, other.ID} {
		_, total, err := fx.orders.ListOrders(repository.OrderListFilter{TenantID: tenantID})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 0 {
			t.Fatalf("tenant %d should have no orders, got %d", tenantID, total)
		}
	}
	summary, _ := fx.carts.Summary(ctx, testSession)
	if len(summary.Items) != 1 {
		t.Fatalf("cart should be kept on mismatch: %+v", summary.Items)
	}

	if _, err := fx.orders.Checkout(ctx, CheckoutInput{SessionID: testSession, TenantIdentifier: "papelaria-lua"}); err != nil {
		t.Fatalf("checkout with the owning tenant failed: %v", err)
	}
}

func TestCheckoutUploadFailureAbortsOrder(t *testing.T) {
	fx := newStoreFixture(t, stubUploader{err: errors.New("imgbb down")})
	ctx := context.Background()
	addAgendaToCart(t, fx)

	_, err := fx.orders.Checkout(ctx, CheckoutInput{
		SessionID: testSession,
		Phone:     "11999990000",
		BackCover: &multipart.FileHeader{Filename: "verso.png"},
	})
	if !errors.Is(err, ErrImageUpload) {
		t.Fatalf("want image upload error got %v", err)
	}
	orders, total, err := fx.orders.ListOrders(repository.OrderListFilter{TenantID: fx.tenant.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(orders) != 0 {
		t.Fatalf("no order should be created, got %d", total)
	}
	summary, _ := fx.carts.Summary(ctx, testSession)
	if len(summary.Items) != 1 {
		t.Fatalf("cart should be kept on failure: %+v", summary.Items)
	}
}

func TestOrderAdminStatusFlow(t *testing.T) {
	fx := newStoreFixture(t, nil)
	ctx := context.Background()
	addAgendaToCart(t, fx)
	result, err := fx.orders.Checkout(ctx, CheckoutInput{SessionID: testSession})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.Order.Customer != "Customer" {
		t.Fatalf("empty contact should default to Customer, got %s", result.Order.Customer)
	}

	if _, err := fx.orders.UpdateStatus(fx.tenant.ID, result.Order.ID, "shipped"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("want status invalid got %v", err)
	}
	updated, err := fx.orders.UpdateStatus(fx.tenant.ID, result.Order.ID, "Processing")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("status want processing got %s", updated.Status)
	}
	if _, err := fx.orders.UpdateStatus(fx.tenant.ID+1, result.Order.ID, "finished"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other tenant should not see the order, got %v", err)
	}

	counts, err := fx.orders.StatusCounts(fx.tenant.ID)
	if err != nil {
		t.Fatalf("status counts failed: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("want 3 status rows got %d", len(counts))
	}
	want := map[string]int64{"pending": 0, "processing": 1, "finished": 0}
	for _, row := range counts {
		if want[row.Status] != row.Count {
			t.Fatalf("status %s want %d got %d", row.Status, want[row.Status], row.Count)
		}
	}

	if err := fx.orders.DeleteOrder(fx.tenant.ID, result.Order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := fx.orders.DeleteOrder(fx.tenant.ID, result.Order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("second delete want not found got %v", err)
	}
}

func TestOrderImageURLsDeduplicates(t *testing.T) {
	fx := newStoreFixture(t, nil)
	addAgendaToCart(t, fx)
	result, err := fx.orders.Checkout(context.Background(), CheckoutInput{SessionID: testSession})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	urls := OrderImageURLs(result.Order)
	if len(urls) != 1 || urls[0] != "https://i.ibb.co/agenda.jpg" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}

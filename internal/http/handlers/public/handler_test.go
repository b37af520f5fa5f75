package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/http/handlers/shared"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testCartSession = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"

type publicFixture struct {
	db       *gorm.DB
	handler  *Handler
	engine   *gin.Engine
	tenant   *models.Tenant
	product  *models.Product
	capaAzul models.Variation
	capaRosa models.Variation
}

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func mustMoney(t *testing.T, raw string) models.Money {
	t.Helper()
	value, err := models.NewMoneyFromString(raw)
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	return value
}

func newPublicFixture(t *testing.T) *publicFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cache.UseClient(nil, "")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	slug := "papelaria-lua"
	tenant := &models.Tenant{BusinessName: "Papelaria Lua", Slug: &slug, WhatsApp: "5511999990000", IsActive: true}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}
	product := &models.Product{
		TenantID:    tenant.ID,
		Name:        "Agenda 2026",
		PriceAmount: mustMoney(t, "75.00"),
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
		{ProductID: product.ID, CategoryID: &capa.ID, Name: "Azul", AdditionalPrice: mustMoney(t, "0")},
		{ProductID: product.ID, CategoryID: &capa.ID, Name: "Rosa", AdditionalPrice: mustMoney(t, "5.00")},
	}
	if err := db.Create(&variations).Error; err != nil {
		t.Fatalf("create variations failed: %v", err)
	}

	container, err := provider.NewContainerWithDB(&config.Config{}, db, nil)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}
	h := New(container)

	r := gin.New()
	withSession := func(c *gin.Context) {
		c.Set(shared.ContextKeyCartSessID, testCartSession)
		c.Next()
	}
	r.Use(withSession)
	r.GET("/shops/:tenant", h.GetShop)
	r.GET("/shops/:tenant/products", h.GetHome)
	r.GET("/shops/:tenant/products/:id", h.GetProduct)
	r.GET("/shops/:tenant/images/products/:id", h.GetProductImage)
	r.POST("/shops/:tenant/cart/items", h.AddCartItem)
	r.GET("/cart", h.GetCart)
	r.GET("/cart/summary", h.GetCartSummary)
	r.POST("/cart/items/update", h.UpdateCartItem)
	r.POST("/checkout", h.Checkout)
	r.GET("/captcha/config", h.GetCaptchaConfig)

	return &publicFixture{
		db:       db,
		handler:  h,
		engine:   r,
		tenant:   tenant,
		product:  product,
		capaAzul: variations[0],
		capaRosa: variations[1],
	}
}

func (fx *publicFixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Language", "en-US")
	w := httptest.NewRecorder()
	fx.engine.ServeHTTP(w, req)
	return w, decodeResponse(t, w)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if w.Header().Get("Content-Type") != "" && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
		}
	}
	return resp
}

type cartPayload struct {
	Items []struct {
		ItemKey        string   `json:"item_key"`
		Name           string   `json:"name"`
		Quantity       int      `json:"quantity"`
		UnitPrice      string   `json:"unit_price"`
		VariationID    string   `json:"variation_id"`
		VariationIDs   []string `json:"variation_ids"`
		VariationLabel string   `json:"variation_label"`
	} `json:"items"`
	TotalItems int    `json:"total_items"`
	Total      string `json:"total"`
}

func decodeCart(t *testing.T, resp apiResponse) cartPayload {
	t.Helper()
	var cart cartPayload
	if err := json.Unmarshal(resp.Data, &cart); err != nil {
		t.Fatalf("decode cart failed: %v", err)
	}
	return cart
}

func TestGetShopAndHome(t *testing.T) {
	fx := newPublicFixture(t)

	_, resp := fx.do(t, http.MethodGet, "/shops/papelaria-lua", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("shop status want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var shop struct {
		BusinessName string `json:"business_name"`
		Profile      struct {
			Title string `json:"title"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(resp.Data, &shop); err != nil {
		t.Fatalf("decode shop failed: %v", err)
	}
	if shop.BusinessName != "Papelaria Lua" {
		t.Fatalf("business name want Papelaria Lua got %s", shop.BusinessName)
	}
	if shop.Profile.Title == "" {
		t.Fatalf("profile title should fall back to default")
	}

	_, resp = fx.do(t, http.MethodGet, "/shops/papelaria-lua/products", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("home status want 0 got %d", resp.StatusCode)
	}

	_, resp = fx.do(t, http.MethodGet, "/shops/missing-shop/products", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown shop want 404 got %d", resp.StatusCode)
	}

	_, resp = fx.do(t, http.MethodGet, "/shops/papelaria-lua/products/abc", nil)
	if resp.StatusCode != 400 {
		t.Fatalf("bad product id want 400 got %d", resp.StatusCode)
	}
}

func TestCartFlowThroughHandlers(t *testing.T) {
	fx := newPublicFixture(t)

	_, resp := fx.do(t, http.MethodPost, "/shops/papelaria-lua/cart/items", map[string]interface{}{
		"product_id":    fx.product.ID,
		"quantity":      2,
		"variation_ids": []interface{}{fx.capaRosa.ID},
	})
	if resp.StatusCode != 0 {
		t.Fatalf("add status want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	cart := decodeCart(t, resp)
	if cart.TotalItems != 2 || cart.Total != "160.00" {
		t.Fatalf("cart totals want 2/160.00 got %d/%s", cart.TotalItems, cart.Total)
	}
	if len(cart.Items) != 1 || cart.Items[0].Name != "Agenda 2026 - Rosa" {
		t.Fatalf("unexpected items: %+v", cart.Items)
	}
	itemKey := cart.Items[0].ItemKey
	wantKey := fmt.Sprintf("%d:%d", fx.product.ID, fx.capaRosa.ID)
	if itemKey != wantKey {
		t.Fatalf("item key want %s got %s", wantKey, itemKey)
	}

	_, resp = fx.do(t, http.MethodGet, "/cart/summary", nil)
	var badge struct {
		TotalItems int    `json:"total_items"`
		Total      string `json:"total"`
	}
	if err := json.Unmarshal(resp.Data, &badge); err != nil {
		t.Fatalf("decode summary failed: %v", err)
	}
	if badge.TotalItems != 2 || badge.Total != "160.00" {
		t.Fatalf("badge want 2/160.00 got %d/%s", badge.TotalItems, badge.Total)
	}

	_, resp = fx.do(t, http.MethodPost, "/cart/items/update", map[string]string{"item_key": itemKey, "action": "decrement"})
	cart = decodeCart(t, resp)
	if cart.TotalItems != 1 || cart.Total != "80.00" {
		t.Fatalf("after decrement want 1/80.00 got %d/%s", cart.TotalItems, cart.Total)
	}

	_, resp = fx.do(t, http.MethodPost, "/cart/items/update", map[string]string{"item_key": itemKey, "action": "explode"})
	if resp.StatusCode != 400 {
		t.Fatalf("invalid action want 400 got %d", resp.StatusCode)
	}

	_, resp = fx.do(t, http.MethodPost, "/cart/items/update", map[string]string{"item_key": itemKey, "action": "remove"})
	cart = decodeCart(t, resp)
	if cart.TotalItems != 0 || len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after remove: %+v", cart)
	}
}

func TestAddCartItemReportsSelectionLimit(t *testing.T) {
	fx := newPublicFixture(t)

	_, resp := fx.do(t, http.MethodPost, "/shops/papelaria-lua/cart/items", map[string]interface{}{
		"product_id":    fmt.Sprintf("%d", fx.product.ID),
		"variation_ids": []string{fmt.Sprintf("%d", fx.capaAzul.ID), fmt.Sprintf("%d", fx.capaRosa.ID)},
	})
	if resp.StatusCode != 400 {
		t.Fatalf("violation want 400 got %d", resp.StatusCode)
	}
	if resp.Msg != "Select at most 1 option(s) in Capa." {
		t.Fatalf("unexpected violation message: %s", resp.Msg)
	}

	_, resp = fx.do(t, http.MethodGet, "/cart", nil)
	cart := decodeCart(t, resp)
	if len(cart.Items) != 0 {
		t.Fatalf("cart should stay empty after a violation: %+v", cart.Items)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	fx := newPublicFixture(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("name", "Ana")
	_ = writer.WriteField("phone", "11 98888-7777")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/checkout", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	fx.engine.ServeHTTP(w, req)
	resp := decodeResponse(t, w)
	if resp.StatusCode != 400 {
		t.Fatalf("empty cart checkout want 400 got %d", resp.StatusCode)
	}
}

func TestCheckoutCreatesOrder(t *testing.T) {
	fx := newPublicFixture(t)

	_, resp := fx.do(t, http.MethodPost, "/shops/papelaria-lua/cart/items", map[string]interface{}{
		"product_id": fx.product.ID,
		"quantity":   "3",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("add status want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("name", "Ana")
	_ = writer.WriteField("phone", "11 98888-7777")
	_ = writer.WriteField("cover_name", "Ana Clara")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/checkout", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	fx.engine.ServeHTTP(w, req)
	resp = decodeResponse(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("checkout status want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var result struct {
		OrderID  uint   `json:"order_id"`
		Status   string `json:"status"`
		Customer string `json:"customer"`
		Total    string `json:"total"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("decode checkout failed: %v", err)
	}
	if result.OrderID == 0 || result.Total != "225.00" {
		t.Fatalf("unexpected checkout result: %+v", result)
	}
	if result.Customer != "Ana (11 98888-7777)" {
		t.Fatalf("customer want Ana (11 98888-7777) got %s", result.Customer)
	}

	_, resp = fx.do(t, http.MethodGet, "/cart", nil)
	if cart := decodeCart(t, resp); len(cart.Items) != 0 {
		t.Fatalf("cart should be cleared after checkout: %+v", cart.Items)
	}
}

func TestProductImageMissingReturns404(t *testing.T) {
	fx := newPublicFixture(t)

	w, _ := fx.do(t, http.MethodGet, "/shops/papelaria-lua/images/products/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing image want 404 got %d", w.Code)
	}
}

func TestLooseValueAcceptsNumbersAndStrings(t *testing.T) {
	var req AddCartItemRequest
	raw := `{"product_id": 7, "quantity": "2", "variation_ids": [3, "1"], "variation_id": null}`
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if req.ProductID.String() != "7" || req.Quantity.String() != "2" {
		t.Fatalf("unexpected values: %+v", req)
	}
	ids := looseStrings(req.VariationIDs)
	if len(ids) != 2 || ids[0] != "3" || ids[1] != "1" {
		t.Fatalf("variation ids want [3 1] got %v", ids)
	}
	if req.VariationID.String() != "" {
		t.Fatalf("null variation id should be empty")
	}
}

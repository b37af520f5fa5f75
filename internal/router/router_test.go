package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/provider"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type routerFixture struct {
	engine    *gin.Engine
	container *provider.Container
	tenant    *models.Tenant
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cache.UseClient(nil, "")
	logger.Init("debug", logger.Options{Level: "error"})

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{SecretKey: "router-secret", ExpireHours: 1, RememberMeExpireHours: 24},
		Cart:   config.CartConfig{TTLHours: 24},
	}
	container, err := provider.NewContainerWithDB(cfg, db, nil)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}
	tenant, err := container.TenantService.CreateTenant(context.Background(), service.CreateTenantInput{
		BusinessName:  "Papelaria Lua",
		OwnerEmail:    "dona@lua.com",
		OwnerPassword: "segredo123",
	})
	if err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}
	return &routerFixture{engine: SetupRouter(cfg, container), container: container, tenant: tenant}
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func (fx *routerFixture) call(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		payload = raw
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	fx.engine.ServeHTTP(w, req)
	var resp envelope
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (fx *routerFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	_, resp := fx.call(t, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != 0 {
		t.Fatalf("login want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login token missing: %v", err)
	}
	return data.Token
}

func TestAdminRoutesRequireToken(t *testing.T) {
	fx := newRouterFixture(t)

	_, resp := fx.call(t, http.MethodGet, "/api/v1/admin/me", "", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("missing token want 401 got %d", resp.StatusCode)
	}
	_, resp = fx.call(t, http.MethodGet, "/api/v1/admin/me", "garbage", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("bad token want 401 got %d", resp.StatusCode)
	}
}

func TestOwnerRoutesAndRBAC(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.login(t, "dona@lua.com", "segredo123")

	_, resp := fx.call(t, http.MethodGet, "/api/v1/admin/me", token, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("me want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	_, resp = fx.call(t, http.MethodGet, "/api/v1/admin/orders/stats", token, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("owner stats want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	_, resp = fx.call(t, http.MethodGet, "/api/v1/admin/tenants", token, nil)
	if resp.StatusCode != 403 {
		t.Fatalf("owner on operator route want 403 got %d", resp.StatusCode)
	}

	inactive := false
	if _, err := fx.container.TenantService.UpdateAccess(fx.tenant.ID, service.TenantAccessInput{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate tenant failed: %v", err)
	}
	_, resp = fx.call(t, http.MethodGet, "/api/v1/admin/orders/stats", token, nil)
	if resp.StatusCode != 403 {
		t.Fatalf("inactive tenant want 403 got %d", resp.StatusCode)
	}
}

func TestOperatorReachesTenantRoutes(t *testing.T) {
	fx := newRouterFixture(t)
	hash, err := fx.container.AuthService.HashPassword("operador123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	operator := &models.Admin{Email: "ops@papelaria.local", PasswordHash: hash, Role: constants.RoleOperator}
	if err := fx.container.AdminRepo.Create(operator); err != nil {
		t.Fatalf("create operator failed: %v", err)
	}
	token := fx.login(t, "ops@papelaria.local", "operador123")

	_, resp := fx.call(t, http.MethodGet, "/api/v1/admin/tenants", token, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("operator tenants want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	_, resp = fx.call(t, http.MethodGet, "/api/v1/admin/products?tenant="+fx.tenant.SlugValue(), token, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("operator products want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
}

func TestPublicCartIssuesSessionCookie(t *testing.T) {
	fx := newRouterFixture(t)

	w, resp := fx.call(t, http.MethodGet, "/api/v1/public/cart", "", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("cart want 0 got %d", resp.StatusCode)
	}
	found := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.CartSessionCookie && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("cart session cookie should be issued")
	}

	w, _ = fx.call(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health want 200 got %d", w.Code)
	}
}

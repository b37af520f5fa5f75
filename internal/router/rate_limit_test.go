package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"email":" Dona@Lua.com ","password":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.7:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "dona@lua.com|10.0.0.7" {
		t.Fatalf("key want dona@lua.com|10.0.0.7 got %s", key)
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	if !strings.Contains(string(body), "Dona@Lua.com") {
		t.Fatalf("request body should be restored, got %s", body)
	}
}

func TestKeyByIPAndJSONFieldNonString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"email":42}`))
	c.Request.RemoteAddr = "10.0.0.7:5678"

	if key := KeyByIPAndJSONField("email")(c); key != "10.0.0.7" {
		t.Fatalf("non-string field should fall back to ip, got %s", key)
	}
}

func TestKeyByTenantAndIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	form := url.Values{"tenant": {"Papelaria-Lua"}}
	c.Request = httptest.NewRequest(http.MethodPost, "/cart/checkout", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request.RemoteAddr = "10.0.0.8:1234"

	if key := KeyByTenantAndIP(c); key != "papelaria-lua|10.0.0.8" {
		t.Fatalf("key want papelaria-lua|10.0.0.8 got %s", key)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.POST("/checkout", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("request %d should pass through, got %d %s", i, w.Code, w.Body.String())
		}
	}
}

func TestRateLimitRuleHelpers(t *testing.T) {
	rule := RateLimitRule{Prefix: "pp:checkout", WindowSeconds: 60, MaxRequests: 5}
	if !rule.enabled() || (RateLimitRule{WindowSeconds: 60}).enabled() {
		t.Fatalf("enabled mismatch")
	}
	if got := rule.redisKey("1.2.3.4"); got != "pp:checkout:ratelimit:1.2.3.4" {
		t.Fatalf("redis key got %s", got)
	}
	if got := retryAfterSeconds(12*time.Second, 60); got != 12 {
		t.Fatalf("retry want 12 got %d", got)
	}
	if got := retryAfterSeconds(-1, 60); got != 60 {
		t.Fatalf("retry want 60 got %d", got)
	}
	if got := retryAfterSeconds(0, 0); got != 1 {
		t.Fatalf("retry want 1 got %d", got)
	}
}

package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		if got := NormalizeObject(item.in); got != item.want {
			t.Fatalf("normalize object in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	if got, _ := NormalizeRole(" Owner "); got != "role:owner" {
		t.Fatalf("role want role:owner got %s", got)
	}
	if got, _ := NormalizeRole("role:operator"); got != "role:operator" {
		t.Fatalf("role want role:operator got %s", got)
	}
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("empty role should fail")
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	// 重复执行保持幂等
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	cases := []struct {
		role  string
		obj   string
		act   string
		allow bool
	}{
		{role: "owner", obj: "/api/v1/admin/products/:id", act: "PUT", allow: true},
		{role: "owner", obj: "/api/v1/admin/orders/:id/status", act: "PATCH", allow: true},
		{role: "owner", obj: "/api/v1/admin/orders/:id", act: "PUT", allow: false},
		{role: "owner", obj: "/api/v1/admin/tenants", act: "GET", allow: false},
		{role: "operator", obj: "/api/v1/admin/tenants", act: "POST", allow: true},
		{role: "operator", obj: "/api/v1/admin/tenants/:id/access", act: "PATCH", allow: true},
		{role: "operator", obj: "/api/v1/admin/categories/:id", act: "DELETE", allow: true},
		{role: "customer", obj: "/api/v1/admin/products", act: "GET", allow: false},
	}
	for _, item := range cases {
		allow, err := svc.EnforceRole(item.role, item.obj, item.act)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", item.role, item.act, item.obj, err)
		}
		if allow != item.allow {
			t.Fatalf("enforce %s %s %s want %v got %v", item.role, item.act, item.obj, item.allow, allow)
		}
	}

	policies, err := svc.RolePolicies("operator")
	if err != nil {
		t.Fatalf("role policies failed: %v", err)
	}
	if len(policies) != 4 {
		t.Fatalf("operator direct policies want 4 got %d", len(policies))
	}
	if policies[0].Object != "/admin/tenants" {
		t.Fatalf("policies should be sorted, got %+v", policies[0])
	}
}

func TestBootstrapRemovesStalePolicies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if _, err := svc.enforcer.AddPolicy("role:owner", "/admin/legacy-report", "GET"); err != nil {
		t.Fatalf("seed stale policy failed: %v", err)
	}
	if _, err := svc.enforcer.AddGroupingPolicy("role:owner", "role:operator"); err != nil {
		t.Fatalf("seed stale inheritance failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	allow, err := svc.EnforceRole("owner", "/admin/legacy-report", "GET")
	if err != nil || allow {
		t.Fatalf("stale policy should be removed, allow=%v err=%v", allow, err)
	}
	allow, err = svc.EnforceRole("owner", "/admin/tenants", "GET")
	if err != nil || allow {
		t.Fatalf("stale inheritance should be removed, allow=%v err=%v", allow, err)
	}
}

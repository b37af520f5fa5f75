package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/repository"
)

func newTestAuth(t *testing.T) (*AuthService, *TenantService) {
	t.Helper()
	db := openServiceTestDB(t)
	tenantRepo := repository.NewTenantRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	auth := NewAuthService(testServiceConfig(), adminRepo, tenantRepo)
	return auth, NewTenantService(tenantRepo, adminRepo, auth)
}

func TestAuthLoginIssuesTenantScopedToken(t *testing.T) {
	auth, tenants := newTestAuth(t)
	ctx := context.Background()
	tenant, err := tenants.CreateTenant(ctx, CreateTenantInput{BusinessName: "Lua", OwnerEmail: "dona@lua.com", OwnerPassword: "segredo1"})
	if err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}

	result, err := auth.Login(ctx, LoginInput{Email: " DONA@lua.com ", Password: "segredo1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := auth.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.TenantID != tenant.ID || claims.Role != constants.RoleOwner {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if result.ExpiresAt.Sub(time.Now()) > 25*time.Hour {
		t.Fatalf("default expiry should be 24h, got %s", result.ExpiresAt)
	}

	remembered, err := auth.Login(ctx, LoginInput{Email: "dona@lua.com", Password: "segredo1", Remember: true})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if remembered.ExpiresAt.Sub(time.Now()) < 29*24*time.Hour {
		t.Fatalf("remember me should last 30 days, got %s", remembered.ExpiresAt)
	}
}

func TestAuthLoginRejectsBadCredentialsAndInactiveTenant(t *testing.T) {
	auth, tenants := newTestAuth(t)
	ctx := context.Background()
	tenant, err := tenants.CreateTenant(ctx, CreateTenantInput{BusinessName: "Lua", OwnerEmail: "dona@lua.com", OwnerPassword: "segredo1"})
	if err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}

	if _, err := auth.Login(ctx, LoginInput{Email: "dona@lua.com", Password: "errado"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want invalid credentials got %v", err)
	}
	if _, err := auth.Login(ctx, LoginInput{Email: "ninguem@lua.com", Password: "segredo1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want invalid credentials got %v", err)
	}

	inactive := false
	if _, err := tenants.UpdateAccess(tenant.ID, TenantAccessInput{IsActive: &inactive}); err != nil {
		t.Fatalf("update access failed: %v", err)
	}
	if _, err := auth.Login(ctx, LoginInput{Email: "dona@lua.com", Password: "segredo1"}); !errors.Is(err, ErrTenantInactive) {
		t.Fatalf("want tenant inactive got %v", err)
	}
}

func TestAuthPasswordResetInvalidatesTokens(t *testing.T) {
	auth, tenants := newTestAuth(t)
	ctx := context.Background()
	tenant, err := tenants.CreateTenant(ctx, CreateTenantInput{BusinessName: "Lua", OwnerEmail: "dona@lua.com", OwnerPassword: "segredo1"})
	if err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}
	result, err := auth.Login(ctx, LoginInput{Email: "dona@lua.com", Password: "segredo1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := auth.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if _, err := auth.ResolveAdminState(ctx, claims); err != nil {
		t.Fatalf("fresh token should be valid: %v", err)
	}

	if err := tenants.ResetOwnerPassword(ctx, tenant.ID, "novasenha"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	if _, err := auth.ResolveAdminState(ctx, claims); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("old token should be rejected, got %v", err)
	}
	if _, err := auth.Login(ctx, LoginInput{Email: "dona@lua.com", Password: "novasenha"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthParseJWTRejectsGarbage(t *testing.T) {
	auth, _ := newTestAuth(t)
	if _, err := auth.ParseJWT("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want invalid token got %v", err)
	}
}

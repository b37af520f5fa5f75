package repository

import (
	"testing"
	"time"

	"github.com/papelaria-next/internal/models"
)

func TestTenantRepositorySlugLookupAndCount(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewTenantRepository(db)
	shop := createTestTenant(t, db, "Papelaria Lua", "papelaria-lua")

	found, err := repo.GetBySlug("papelaria-lua")
	if err != nil || found == nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if found.ID != shop.ID {
		t.Fatalf("tenant id want %d got %d", shop.ID, found.ID)
	}
	missing, err := repo.GetBySlug("  ")
	if err != nil || missing != nil {
		t.Fatalf("blank slug should return nil")
	}

	count, err := repo.CountBySlug("papelaria-lua", nil)
	if err != nil || count != 1 {
		t.Fatalf("slug count want 1 got %d (%v)", count, err)
	}
	count, err = repo.CountBySlug("papelaria-lua", &shop.ID)
	if err != nil || count != 0 {
		t.Fatalf("slug count excluding self want 0 got %d (%v)", count, err)
	}

	end := time.Now().AddDate(0, 1, 0)
	shop.AccessEndDate = &end
	shop.IsActive = false
	shop.WhatsApp = "11999990000"
	if err := repo.Update(shop); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	reloaded, err := repo.GetByID(shop.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.IsActive || reloaded.WhatsApp != "11999990000" || reloaded.AccessEndDate == nil {
		t.Fatalf("update did not persist: %+v", reloaded)
	}
}

func TestAdminRepositoryEmailIgnoresCase(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewAdminRepository(db)
	admin := &models.Admin{Email: "dona@lua.com", PasswordHash: "x", Role: "owner"}
	if err := repo.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	found, err := repo.GetByEmail("Dona@Lua.com")
	if err != nil || found == nil {
		t.Fatalf("get by email failed: %v", err)
	}
	count, err := repo.CountByRole("owner")
	if err != nil || count != 1 {
		t.Fatalf("owner count want 1 got %d", count)
	}
}

func TestCartSessionRepositoryUpsertAndExpiry(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartSessionRepository(db)
	now := time.Now()

	session := &models.CartSession{SessionID: "abc", Payload: `{"items":[]}`, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Upsert(session); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	session = &models.CartSession{SessionID: "abc", Payload: `{"tenant":"lua","items":[]}`, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Upsert(session); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	loaded, err := repo.Get("abc", now)
	if err != nil || loaded == nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Payload != `{"tenant":"lua","items":[]}` {
		t.Fatalf("payload should be replaced, got %s", loaded.Payload)
	}

	expired, err := repo.Get("abc", now.Add(2*time.Hour))
	if err != nil || expired != nil {
		t.Fatalf("expired session should not be returned")
	}
	purged, err := repo.PurgeExpired(now.Add(2 * time.Hour))
	if err != nil || purged != 1 {
		t.Fatalf("purge want 1 got %d (%v)", purged, err)
	}
}

package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/repository"
)

type stubUploader struct {
	url string
	err error
}

func (s stubUploader) Configured() bool { return true }

func (s stubUploader) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.url, s.err
}

func TestBuildPublicCatalogProfileDefaults(t *testing.T) {
	public := BuildPublicCatalogProfile(nil)
	if public.Title != "Our Products" || public.CTA != "View collection" {
		t.Fatalf("unexpected defaults: %+v", public)
	}
	if public.DesktopImage != DefaultCatalogBanner || public.MobileImage != DefaultCatalogBanner {
		t.Fatalf("default banner expected: %+v", public)
	}
}

func TestBuildPublicCatalogProfileImagePrecedence(t *testing.T) {
	legacyOnly := BuildPublicCatalogProfile(&models.CatalogProfile{Image: "legacy.jpg"})
	if legacyOnly.DesktopImage != "legacy.jpg" || legacyOnly.MobileImage != "legacy.jpg" {
		t.Fatalf("legacy image should fill both: %+v", legacyOnly)
	}
	desktop := BuildPublicCatalogProfile(&models.CatalogProfile{Image: "legacy.jpg", DesktopImage: "desk.jpg"})
	if desktop.DesktopImage != "desk.jpg" || desktop.MobileImage != "desk.jpg" {
		t.Fatalf("mobile should fall back to desktop: %+v", desktop)
	}
	full := BuildPublicCatalogProfile(&models.CatalogProfile{DesktopImage: "desk.jpg", MobileImage: "mob.jpg", Title: "Lua"})
	if full.MobileImage != "mob.jpg" || full.Title != "Lua" {
		t.Fatalf("explicit values should win: %+v", full)
	}
}

func TestCatalogProfileUpdateReportsUploadError(t *testing.T) {
	db := openServiceTestDB(t)
	repo := repository.NewCatalogProfileRepository(db)
	svc := NewCatalogProfileService(repo, stubUploader{err: errors.New("imgbb down")})

	result, err := svc.Update(context.Background(), 1, CatalogProfileInput{
		Title:        "Papelaria Lua",
		DesktopImage: &multipart.FileHeader{Filename: "banner.png"},
	})
	if err != nil {
		t.Fatalf("update should not fail on upload error: %v", err)
	}
	if result.UploadError == "" {
		t.Fatalf("upload error should be reported")
	}
	stored, err := repo.GetByTenant(1)
	if err != nil || stored == nil {
		t.Fatalf("profile should be saved: %v", err)
	}
	if stored.Title != "Papelaria Lua" || stored.DesktopImage != "" {
		t.Fatalf("unexpected stored profile: %+v", stored)
	}
}

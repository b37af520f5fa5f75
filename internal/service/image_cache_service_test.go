package service

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/papelaria-next/internal/config"
)

func TestImageCacheKeyIsStable(t *testing.T) {
	a := ImageCacheKey("https://img.example/a.png")
	b := ImageCacheKey("  https://img.example/a.png ")
	if a != b {
		t.Fatalf("key should ignore surrounding spaces")
	}
	if !strings.HasPrefix(a, "catalog:image:") || len(a) != len("catalog:image:")+64 {
		t.Fatalf("unexpected key format: %s", a)
	}
}

func TestThumbnailResizesSource(t *testing.T) {
	source := samplePNG(t, 400, 200)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(source)
	}))
	defer server.Close()

	svc := NewImageCacheService(config.ImageCacheConfig{MaxDimension: 100, Quality: 78}, nil)
	data, err := svc.Thumbnail(context.Background(), server.URL+"/a.png")
	if err != nil {
		t.Fatalf("thumbnail failed: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("thumbnail should be jpeg: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Fatalf("size want 100x50 got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestThumbnailSourceErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := NewImageCacheService(config.ImageCacheConfig{}, nil)
	if _, err := svc.Thumbnail(context.Background(), server.URL+"/missing.png"); !errors.Is(err, ErrImageUnavailable) {
		t.Fatalf("want ErrImageUnavailable got %v", err)
	}
	if _, err := svc.Thumbnail(context.Background(), " "); !errors.Is(err, ErrImageUnavailable) {
		t.Fatalf("empty url want ErrImageUnavailable got %v", err)
	}
}

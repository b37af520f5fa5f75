package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/logger"
)

const maxSourceImageBytes = 20 << 20

// ImageCacheService 商品图片代理：拉取源图、缩略并缓存到 Redis
type ImageCacheService struct {
	cfg        config.ImageCacheConfig
	catalog    *CatalogService
	httpClient *http.Client
}

// NewImageCacheService 创建图片代理服务
func NewImageCacheService(cfg config.ImageCacheConfig, catalog *CatalogService) *ImageCacheService {
	timeout := cfg.FetchTimeoutSeconds
	if timeout <= 0 {
		timeout = 8
	}
	return &ImageCacheService{
		cfg:        cfg,
		catalog:    catalog,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// ImageCacheKey 源图地址对应的缓存 key
func ImageCacheKey(sourceURL string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(sourceURL)))
	return fmt.Sprintf("%s:%s", constants.CacheKeyImage, hex.EncodeToString(sum[:]))
}

func (s *ImageCacheService) ttl() time.Duration {
	if s.cfg.TTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.cfg.TTLSeconds) * time.Second
}

// ProductImage 商品主图缩略图
func (s *ImageCacheService) ProductImage(ctx context.Context, tenantID, productID uint) ([]byte, error) {
	product, err := s.catalog.GetPublicProduct(tenantID, productID)
	if err != nil {
		return nil, ErrImageUnavailable
	}
	return s.Thumbnail(ctx, product.ImageURL)
}

// ExtraImage 商品附加图片缩略图
func (s *ImageCacheService) ExtraImage(ctx context.Context, tenantID, imageID uint) ([]byte, error) {
	image, err := s.catalog.GetProductImage(tenantID, imageID)
	if err != nil {
		return nil, ErrImageUnavailable
	}
	return s.Thumbnail(ctx, image.URL)
}

// Thumbnail 返回缩略图（优先读缓存）
func (s *ImageCacheService) Thumbnail(ctx context.Context, sourceURL string) ([]byte, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, ErrImageUnavailable
	}
	key := ImageCacheKey(sourceURL)
	cached, hit, err := cache.GetBytes(ctx, key)
	if err != nil {
		logger.Warnw("image_cache_get_failed", "url", sourceURL, "error", err)
	}
	if hit && len(cached) > 0 {
		return cached, nil
	}

	data, err := s.render(ctx, sourceURL)
	if err != nil {
		logger.Warnw("image_cache_render_failed", "url", sourceURL, "error", err)
		return nil, ErrImageUnavailable
	}
	if err := cache.SetBytes(ctx, key, data, s.ttl()); err != nil {
		logger.Warnw("image_cache_set_failed", "url", sourceURL, "error", err)
	}
	return data, nil
}

// Warm 预热缩略图缓存，已缓存的跳过
func (s *ImageCacheService) Warm(ctx context.Context, sourceURLs []string) (int, error) {
	warmed := 0
	for _, sourceURL := range sourceURLs {
		sourceURL = strings.TrimSpace(sourceURL)
		if sourceURL == "" {
			continue
		}
		if _, hit, _ := cache.GetBytes(ctx, ImageCacheKey(sourceURL)); hit {
			continue
		}
		if _, err := s.Thumbnail(ctx, sourceURL); err != nil {
			return warmed, fmt.Errorf("warm %s: %w", sourceURL, err)
		}
		warmed++
	}
	return warmed, nil
}

func (s *ImageCacheService) render(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceImageBytes))
	if err != nil {
		return nil, err
	}

	maxDimension := s.cfg.MaxDimension
	if maxDimension <= 0 {
		maxDimension = 900
	}
	quality := s.cfg.Quality
	if quality <= 0 {
		quality = 78
	}
	return thumbnailJPEG(raw, maxDimension, quality)
}

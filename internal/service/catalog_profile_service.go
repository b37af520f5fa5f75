package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/repository"
)

// 目录展示默认值
const (
	DefaultCatalogTitle   = "Our Products"
	DefaultCatalogMessage = "Choose your favourite items and send your order on WhatsApp."
	DefaultCatalogCTA     = "View collection"
	DefaultCatalogBanner  = "/static/img/catalog-banner.jpg"
)

// PublicCatalogProfile 公开目录展示配置（已应用默认值与图片优先级）
type PublicCatalogProfile struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	CTA          string `json:"cta"`
	DesktopImage string `json:"desktop_image"`
	MobileImage  string `json:"mobile_image"`
}

// CatalogProfileService 目录展示配置服务
type CatalogProfileService struct {
	repo     repository.CatalogProfileRepository
	uploader ImageUploader
}

// NewCatalogProfileService 创建目录展示配置服务
func NewCatalogProfileService(repo repository.CatalogProfileRepository, uploader ImageUploader) *CatalogProfileService {
	return &CatalogProfileService{repo: repo, uploader: uploader}
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// BuildPublicCatalogProfile 合并默认值：桌面图 desktop > image，移动图 mobile > desktop > image
func BuildPublicCatalogProfile(profile *models.CatalogProfile) PublicCatalogProfile {
	public := PublicCatalogProfile{
		Title:        DefaultCatalogTitle,
		Message:      DefaultCatalogMessage,
		CTA:          DefaultCatalogCTA,
		DesktopImage: DefaultCatalogBanner,
		MobileImage:  DefaultCatalogBanner,
	}
	if profile == nil {
		return public
	}
	public.Title = firstNonBlank(profile.Title, public.Title)
	public.Message = firstNonBlank(profile.Message, public.Message)
	public.CTA = firstNonBlank(profile.CTA, public.CTA)
	public.DesktopImage = firstNonBlank(profile.DesktopImage, profile.Image, public.DesktopImage)
	public.MobileImage = firstNonBlank(profile.MobileImage, profile.DesktopImage, profile.Image, public.MobileImage)
	return public
}

// GetPublic 获取公开展示配置
func (s *CatalogProfileService) GetPublic(tenantID uint) (PublicCatalogProfile, error) {
	profile, err := s.repo.GetByTenant(tenantID)
	if err != nil {
		return PublicCatalogProfile{}, err
	}
	return BuildPublicCatalogProfile(profile), nil
}

// Get 获取店铺原始配置（不存在时返回空配置）
func (s *CatalogProfileService) Get(tenantID uint) (*models.CatalogProfile, error) {
	profile, err := s.repo.GetByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.CatalogProfile{TenantID: tenantID}
	}
	return profile, nil
}

// CatalogProfileInput 展示配置输入
type CatalogProfileInput struct {
	Title        string
	Message      string
	CTA          string
	DesktopImage *multipart.FileHeader
	MobileImage  *multipart.FileHeader
}

// CatalogProfileResult 保存结果，图片上传失败不阻塞文字保存
type CatalogProfileResult struct {
	Profile     *models.CatalogProfile `json:"profile"`
	UploadError string                 `json:"upload_error,omitempty"`
}

// Update 保存展示配置
func (s *CatalogProfileService) Update(ctx context.Context, tenantID uint, input CatalogProfileInput) (*CatalogProfileResult, error) {
	profile, err := s.Get(tenantID)
	if err != nil {
		return nil, err
	}
	profile.Title = strings.TrimSpace(input.Title)
	profile.Message = strings.TrimSpace(input.Message)
	profile.CTA = strings.TrimSpace(input.CTA)

	result := &CatalogProfileResult{Profile: profile}
	uploads := []struct {
		file   *multipart.FileHeader
		target *string
		field  string
	}{
		{file: input.DesktopImage, target: &profile.DesktopImage, field: "desktop_image"},
		{file: input.MobileImage, target: &profile.MobileImage, field: "mobile_image"},
	}
	for _, upload := range uploads {
		if upload.file == nil {
			continue
		}
		if s.uploader == nil {
			result.UploadError = ErrImageUploadNotConfigured.Error()
			continue
		}
		url, err := s.uploader.UploadImage(ctx, upload.file)
		if err != nil {
			logger.Warnw("catalog_banner_upload_failed", "tenant_id", tenantID, "field", upload.field, "error", err)
			result.UploadError = err.Error()
			continue
		}
		*upload.target = url
	}

	if err := s.repo.Save(profile); err != nil {
		return nil, err
	}
	return result, nil
}

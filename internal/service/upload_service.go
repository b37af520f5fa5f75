package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/logger"
)

const defaultImgBBEndpoint = "https://api.imgbb.com/1/upload"

// ImageUploader 图片上传接口
type ImageUploader interface {
	Configured() bool
	UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadService 图床上传服务（imgbb），上传前统一缩放并转为 JPEG
type UploadService struct {
	imgbb      config.ImgBBConfig
	upload     config.UploadConfig
	httpClient *http.Client
}

// NewUploadService 创建图片上传服务
func NewUploadService(cfg *config.Config) *UploadService {
	timeout := cfg.ImgBB.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &UploadService{
		imgbb:      cfg.ImgBB,
		upload:     cfg.Upload,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Configured 是否配置了 API Key
func (s *UploadService) Configured() bool {
	return s != nil && strings.TrimSpace(s.imgbb.APIKey) != ""
}

// UploadImage 校验并上传表单图片，返回公网地址
func (s *UploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if !s.Configured() {
		return "", ErrImageUploadNotConfigured
	}
	if file == nil {
		return "", ErrInvalidImage
	}
	if s.upload.MaxSize > 0 && file.Size > s.upload.MaxSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.upload.AllowedExtensions) > 0 && (ext == "" || !isAllowedExtension(ext, s.upload.AllowedExtensions)) {
		return "", ErrInvalidImage
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	return s.UploadImageBytes(ctx, file.Filename, data)
}

// UploadImageBytes 缩放后上传图片数据
func (s *UploadService) UploadImageBytes(ctx context.Context, filename string, data []byte) (string, error) {
	if !s.Configured() {
		return "", ErrImageUploadNotConfigured
	}
	maxDimension := s.imgbb.MaxDimension
	if maxDimension <= 0 {
		maxDimension = 1600
	}
	quality := s.imgbb.Quality
	if quality <= 0 {
		quality = 82
	}
	encoded, err := thumbnailJPEG(data, maxDimension, quality)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimSpace(s.imgbb.Endpoint)
	if endpoint == "" {
		endpoint = defaultImgBBEndpoint
	}
	form := url.Values{}
	form.Set("key", strings.TrimSpace(s.imgbb.APIKey))
	form.Set("image", base64.StdEncoding.EncodeToString(encoded))
	if name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)); name != "" && name != "." {
		form.Set("name", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageUpload, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageUpload, err)
	}
	defer resp.Body.Close()

	var result imgbbResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return "", fmt.Errorf("%w: %v", ErrImageUpload, decodeErr)
	}
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(result.Data.URL) == "" {
		logger.Warnw("imgbb_upload_rejected", "status", resp.StatusCode, "message", result.Error.Message)
		return "", fmt.Errorf("%w: status %d", ErrImageUpload, resp.StatusCode)
	}
	return strings.TrimSpace(result.Data.URL), nil
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

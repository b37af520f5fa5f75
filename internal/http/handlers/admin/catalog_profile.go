package admin

import (
	"mime/multipart"

	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogProfileRequest 目录展示配置请求（multipart）
type CatalogProfileRequest struct {
	Title   string `form:"title"`
	Message string `form:"message"`
	CTA     string `form:"cta"`
}

func optionalFormFile(c *gin.Context, field string) *multipart.FileHeader {
	file, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return file
}

// GetCatalogProfile 获取目录展示配置（原始值与生效值）
func (h *Handler) GetCatalogProfile(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	profile, err := h.CatalogProfileService.Get(tenantID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, gin.H{
		"profile":   profile,
		"effective": service.BuildPublicCatalogProfile(profile),
	})
}

// UpdateCatalogProfile 保存目录展示配置，横幅上传失败不影响文字保存
func (h *Handler) UpdateCatalogProfile(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	var req CatalogProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	result, err := h.CatalogProfileService.Update(c.Request.Context(), tenantID, service.CatalogProfileInput{
		Title:        req.Title,
		Message:      req.Message,
		CTA:          req.CTA,
		DesktopImage: optionalFormFile(c, "desktop_image"),
		MobileImage:  optionalFormFile(c, "mobile_image"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, gin.H{
		"profile":      result.Profile,
		"effective":    service.BuildPublicCatalogProfile(result.Profile),
		"upload_error": result.UploadError,
	})
}

package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const imageCacheControl = "public, max-age=86400"

// GetProductImage 代理商品主图（缩略后缓存）
func (h *Handler) GetProductImage(c *gin.Context) {
	h.serveImage(c, func(tenantID, id uint) ([]byte, error) {
		return h.ImageCacheService.ProductImage(c.Request.Context(), tenantID, id)
	})
}

// GetExtraImage 代理商品附加图片
func (h *Handler) GetExtraImage(c *gin.Context) {
	h.serveImage(c, func(tenantID, id uint) ([]byte, error) {
		return h.ImageCacheService.ExtraImage(c.Request.Context(), tenantID, id)
	})
}

func (h *Handler) serveImage(c *gin.Context, load func(tenantID, id uint) ([]byte, error)) {
	tenant, err := h.TenantService.ResolveTenant(tenantIdentifier(c, ""))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	data, err := load(tenant.ID, id)
	if err != nil {
		requestLog(c).Debugw("public_image_unavailable",
			"tenant_id", tenant.ID,
			"id", id,
			"error", err,
		)
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", imageCacheControl)
	c.Data(http.StatusOK, "image/jpeg", data)
}

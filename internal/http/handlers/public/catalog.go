package public

import (
	"github.com/papelaria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetShop 获取店铺公开信息与目录展示配置
func (h *Handler) GetShop(c *gin.Context) {
	tenant, err := h.TenantService.ResolveTenant(tenantIdentifier(c, ""))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	profile, err := h.CatalogProfileService.GetPublic(tenant.ID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	response.Success(c, gin.H{
		"id":            tenant.ID,
		"slug":          tenant.SlugValue(),
		"business_name": tenant.BusinessName,
		"whatsapp":      tenant.WhatsApp,
		"profile":       profile,
	})
}

// GetHome 获取店铺首页商品（按分类分组）
func (h *Handler) GetHome(c *gin.Context) {
	tenant, err := h.TenantService.ResolveTenant(tenantIdentifier(c, ""))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	home, err := h.CatalogService.Home(c.Request.Context(), tenant.ID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, home)
}

// GetProduct 获取商品详情（含变体与附加图片）
func (h *Handler) GetProduct(c *gin.Context) {
	tenant, err := h.TenantService.ResolveTenant(tenantIdentifier(c, ""))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.CatalogService.GetPublicProduct(tenant.ID, productID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, product)
}

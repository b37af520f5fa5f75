package admin

import (
	"strconv"
	"strings"

	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/repository"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductUpsertRequest 商品创建/更新请求
type ProductUpsertRequest struct {
	Name           string                   `json:"name" binding:"required"`
	Description    string                   `json:"description"`
	Price          string                   `json:"price" binding:"required"`
	Stock          int                      `json:"stock"`
	ImageURL       string                   `json:"image_url"`
	IsActive       *bool                    `json:"is_active"`
	CategoryID     *uint                    `json:"category_id"`
	SubcategoryID  *uint                    `json:"subcategory_id"`
	ExtraImages    []string                 `json:"extra_images"`
	RemoveImageIDs []uint                   `json:"remove_image_ids"`
	Variations     []service.VariationInput `json:"variations"`
}

func (r ProductUpsertRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		Stock:          r.Stock,
		ImageURL:       r.ImageURL,
		IsActive:       r.IsActive,
		CategoryID:     r.CategoryID,
		SubcategoryID:  r.SubcategoryID,
		ExtraImages:    r.ExtraImages,
		RemoveImageIDs: r.RemoveImageIDs,
		Variations:     r.Variations,
	}
}

// ListProducts 商品列表（分页 + 搜索）
func (h *Handler) ListProducts(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	page, pageSize := response.ParsePage(c)
	filter := repository.ProductListFilter{
		TenantID: tenantID,
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if id, err := strconv.ParseUint(c.Query("category_id"), 10, 64); err == nil {
		filter.CategoryID = uint(id)
	}
	if id, err := strconv.ParseUint(c.Query("subcategory_id"), 10, 64); err == nil {
		filter.SubcategoryID = uint(id)
	}

	products, total, err := h.CatalogService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProduct(tenantID, id)
	if err != nil {
		respondCatalogError(c, err, "error.query_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.CatalogService.CreateProduct(c.Request.Context(), tenantID, req.toInput())
	if err != nil {
		respondCatalogError(c, err, "error.save_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品（含变体 upsert）
func (h *Handler) UpdateProduct(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.CatalogService.UpdateProduct(c.Request.Context(), tenantID, id, req.toInput())
	if err != nil {
		respondCatalogError(c, err, "error.save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(c.Request.Context(), tenantID, id); err != nil {
		respondCatalogError(c, err, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}

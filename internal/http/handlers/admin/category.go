package admin

import (
	"strconv"

	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SubcategoryRequest 子分类请求
type SubcategoryRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	categories, err := h.CatalogService.ListCategories(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	category, err := h.CatalogService.CreateCategory(c.Request.Context(), tenantID, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondCatalogError(c, err, "error.save_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	category, err := h.CatalogService.UpdateCategory(c.Request.Context(), tenantID, id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondCatalogError(c, err, "error.save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（商品的分类引用置空）
func (h *Handler) DeleteCategory(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteCategory(c.Request.Context(), tenantID, id); err != nil {
		respondCatalogError(c, err, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}

// ListSubcategories 子分类列表（?category_id=）
func (h *Handler) ListSubcategories(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	categoryID, err := strconv.ParseUint(c.Query("category_id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	subs, err := h.CatalogService.ListSubcategories(c.Request.Context(), tenantID, uint(categoryID))
	if err != nil {
		respondCatalogError(c, err, "error.query_failed")
		return
	}
	response.Success(c, subs)
}

// CreateSubcategory 创建子分类
func (h *Handler) CreateSubcategory(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	var req SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	sub, err := h.CatalogService.CreateSubcategory(c.Request.Context(), tenantID, service.SubcategoryInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
	})
	if err != nil {
		respondCatalogError(c, err, "error.save_failed")
		return
	}
	response.Success(c, sub)
}

// UpdateSubcategory 更新子分类
func (h *Handler) UpdateSubcategory(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	sub, err := h.CatalogService.UpdateSubcategory(c.Request.Context(), tenantID, id, service.SubcategoryInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
	})
	if err != nil {
		respondCatalogError(c, err, "error.save_failed")
		return
	}
	response.Success(c, sub)
}

// DeleteSubcategory 删除子分类
func (h *Handler) DeleteSubcategory(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteSubcategory(c.Request.Context(), tenantID, id); err != nil {
		respondCatalogError(c, err, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}

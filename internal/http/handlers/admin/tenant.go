package admin

import (
	"strings"
	"time"

	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/repository"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func parseDateNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// GetTenant 获取当前店铺资料
func (h *Handler) GetTenant(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	tenant, err := h.TenantService.FindTenant(idString(tenantID))
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, tenantSummary(tenant))
}

// TenantProfileRequest 店铺资料请求（首次访问与后续修改共用）
type TenantProfileRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	WhatsApp     string `json:"whatsapp"`
}

// UpdateTenant 更新店铺名称与 WhatsApp
func (h *Handler) UpdateTenant(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	var req TenantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	tenant, err := h.TenantService.UpdateProfile(tenantID, service.TenantProfileInput{
		BusinessName: req.BusinessName,
		WhatsApp:     req.WhatsApp,
	})
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, tenantSummary(tenant))
}

// ListTenants 平台店铺列表（运营）
func (h *Handler) ListTenants(c *gin.Context) {
	page, pageSize := response.ParsePage(c)
	tenants, total, err := h.TenantService.ListTenants(repository.TenantListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	items := make([]map[string]interface{}, 0, len(tenants))
	for i := range tenants {
		items = append(items, tenantSummary(&tenants[i]))
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// GetTenantByID 平台店铺详情（运营）
func (h *Handler) GetTenantByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	tenant, err := h.TenantService.FindTenant(idString(id))
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, tenantSummary(tenant))
}

// CreateTenantRequest 创建店铺请求
type CreateTenantRequest struct {
	BusinessName  string `json:"business_name"`
	WhatsApp      string `json:"whatsapp"`
	OwnerEmail    string `json:"owner_email" binding:"required"`
	OwnerPassword string `json:"owner_password" binding:"required"`
	AccessEndDate string `json:"access_end_date"`
}

// CreateTenant 创建店铺及店主账号（运营）
func (h *Handler) CreateTenant(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	accessEnd, err := parseDateNullable(req.AccessEndDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	tenant, err := h.TenantService.CreateTenant(c.Request.Context(), service.CreateTenantInput{
		BusinessName:  req.BusinessName,
		WhatsApp:      req.WhatsApp,
		OwnerEmail:    req.OwnerEmail,
		OwnerPassword: req.OwnerPassword,
		AccessEndDate: accessEnd,
	})
	if err != nil {
		respondTenantError(c, err)
		return
	}
	requestLog(c).Infow("admin_tenant_created", "tenant_id", tenant.ID, "slug", tenant.SlugValue())
	response.Success(c, tenantSummary(tenant))
}

// TenantAccessRequest 店铺访问权限请求
type TenantAccessRequest struct {
	AccessEndDate      string `json:"access_end_date"`
	ClearAccessEndDate bool   `json:"clear_access_end_date"`
	IsActive           *bool  `json:"is_active"`
}

// UpdateTenantAccess 更新店铺到期日与启用状态（运营）
func (h *Handler) UpdateTenantAccess(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req TenantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	accessEnd, err := parseDateNullable(req.AccessEndDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	tenant, err := h.TenantService.UpdateAccess(id, service.TenantAccessInput{
		AccessEndDate:      accessEnd,
		ClearAccessEndDate: req.ClearAccessEndDate,
		IsActive:           req.IsActive,
	})
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, tenantSummary(tenant))
}

// ResetTenantPasswordRequest 重置店主密码请求
type ResetTenantPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ResetTenantPassword 重置店主密码（运营）
func (h *Handler) ResetTenantPassword(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ResetTenantPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.TenantService.ResetOwnerPassword(c.Request.Context(), id, req.Password); err != nil {
		respondTenantError(c, err)
		return
	}
	requestLog(c).Infow("admin_tenant_password_reset", "tenant_id", id)
	response.Success(c, nil)
}

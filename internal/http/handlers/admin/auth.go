package admin

import (
	"time"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/http/handlers/shared"
	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email          string                       `json:"email" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	Remember       bool                         `json:"remember"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	Tenant    map[string]interface{} `json:"tenant,omitempty"`
	ExpiresAt string                 `json:"expires_at"`
}

func tenantSummary(tenant *models.Tenant) map[string]interface{} {
	return map[string]interface{}{
		"id":              tenant.ID,
		"slug":            tenant.SlugValue(),
		"business_name":   tenant.BusinessName,
		"whatsapp":        tenant.WhatsApp,
		"onboarded":       tenant.Onboarded(),
		"active":          tenant.Active(time.Now()),
		"access_end_date": tenant.AccessEndDate,
	}
}

// Login 店主/运营登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()); err != nil {
		respondAuthError(c, err)
		return
	}

	result, err := h.AuthService.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	resp := LoginResponse{
		Token: result.Token,
		User: map[string]interface{}{
			"id":    result.Admin.ID,
			"email": result.Admin.Email,
			"role":  result.Admin.Role,
		},
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	}
	if tenant := result.Tenant; tenant != nil {
		resp.Tenant = tenantSummary(tenant)
	}
	requestLog(c).Infow("admin_login_success",
		"admin_id", result.Admin.ID,
		"role", result.Admin.Role,
		"remember", req.Remember,
	)
	response.Success(c, resp)
}

// GetMe 获取当前登录账号信息
func (h *Handler) GetMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}

	data := gin.H{
		"id":    admin.ID,
		"email": admin.Email,
		"role":  admin.Role,
	}
	if admin.TenantID != nil {
		tenant, err := h.TenantService.FindTenant(idString(*admin.TenantID))
		if err == nil {
			data["tenant"] = tenantSummary(tenant)
		}
	}
	response.Success(c, data)
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdatePassword 修改当前账号密码
func (h *Handler) UpdatePassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AuthService.ChangePassword(c.Request.Context(), adminID, req.OldPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}
	response.Success(c, nil)
}

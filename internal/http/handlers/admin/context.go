package admin

import (
	"strconv"
	"strings"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/http/handlers/shared"
	"github.com/papelaria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// HeaderTenant 运营账号指定目标店铺的请求头
const HeaderTenant = "X-Tenant"

func getAdminID(c *gin.Context) (uint, bool) {
	return shared.GetContextUintWithKeys(c, shared.ContextKeyAdminID, "error.unauthorized", "error.internal")
}

func getAdminRole(c *gin.Context) string {
	return c.GetString(shared.ContextKeyAdminRole)
}

// currentTenantID 解析本次请求操作的店铺：
// 店主固定为自身店铺；运营账号通过 ?tenant= 或 X-Tenant 指定（id 或 slug）。
func (h *Handler) currentTenantID(c *gin.Context) (uint, bool) {
	if getAdminRole(c) != constants.RoleOperator {
		tenantID, ok := shared.GetContextUintWithKeys(c, shared.ContextKeyTenantID, "error.tenant_required", "error.internal")
		if !ok {
			return 0, false
		}
		if tenantID == 0 {
			respondError(c, response.CodeBadRequest, "error.tenant_required", nil)
			return 0, false
		}
		return tenantID, true
	}

	identifier := strings.TrimSpace(c.Query("tenant"))
	if identifier == "" {
		identifier = strings.TrimSpace(c.GetHeader(HeaderTenant))
	}
	if identifier == "" {
		respondError(c, response.CodeBadRequest, "error.tenant_required", nil)
		return 0, false
	}
	tenant, err := h.TenantService.FindTenant(identifier)
	if err != nil {
		respondTenantError(c, err)
		return 0, false
	}
	return tenant.ID, true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

func parseOptionalUint(raw string) *uint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	value := uint(id)
	return &value
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

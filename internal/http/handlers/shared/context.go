package shared

import (
	"github.com/papelaria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextKeyAdminID    = "admin_id"
	ContextKeyAdminRole  = "admin_role"
	ContextKeyTenantID   = "tenant_id"
	ContextKeyCartSessID = "cart_session_id"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// CartSessionID 读取中间件写入的购物车会话 ID。
func CartSessionID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(ContextKeyCartSessID)
}

package shared

import (
	"errors"

	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/i18n"
	"github.com/papelaria-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondErrorf 返回带参数的国际化错误响应。
func RespondErrorf(c *gin.Context, code int, key string, args ...interface{}) {
	locale := i18n.ResolveLocale(c)
	response.Error(c, code, i18n.Sprintf(locale, key, args...))
}

// MappedError 业务错误到接口错误响应的映射规则。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondMappedError 按规则表返回错误，未命中时使用兜底错误并记录日志。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

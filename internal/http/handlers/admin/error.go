package admin

import (
	"errors"

	handlershared "github.com/papelaria-next/internal/http/handlers/shared"
	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type mappedHandlerError = handlershared.MappedError

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

var tenantErrorRules = []mappedHandlerError{
	{Target: service.ErrTenantNotFound, Code: response.CodeNotFound, Key: "error.tenant_not_found"},
	{Target: service.ErrTenantRequired, Code: response.CodeBadRequest, Key: "error.tenant_required"},
	{Target: service.ErrTenantSlugTaken, Code: response.CodeConflict, Key: "error.tenant_slug_taken"},
	{Target: service.ErrEmailTaken, Code: response.CodeConflict, Key: "error.email_taken"},
	{Target: service.ErrEmailInvalid, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrPasswordTooShort, Code: response.CodeBadRequest, Key: "error.password_too_short"},
	{Target: service.ErrAdminNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}

var catalogErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductNameRequired, Code: response.CodeBadRequest, Key: "error.product_name_required"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrProductStockInvalid, Code: response.CodeBadRequest, Key: "error.product_stock_invalid"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryNameRequired, Code: response.CodeBadRequest, Key: "error.category_name_required"},
	{Target: service.ErrSubcategoryNotFound, Code: response.CodeNotFound, Key: "error.subcategory_not_found"},
	{Target: service.ErrVariationInvalid, Code: response.CodeBadRequest, Key: "error.variation_invalid"},
}

var orderErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrTenantRequired, Code: response.CodeBadRequest, Key: "error.tenant_required"},
}

var uploadErrorRules = []mappedHandlerError{
	{Target: service.ErrImageUploadNotConfigured, Code: response.CodeBadRequest, Key: "error.image_upload_not_configured"},
	{Target: service.ErrFileTooLarge, Code: response.CodeBadRequest, Key: "error.file_too_large"},
	{Target: service.ErrInvalidImage, Code: response.CodeBadRequest, Key: "error.image_invalid"},
}

var authErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrTenantInactive, Code: response.CodeForbidden, Key: "error.tenant_inactive"},
	{Target: service.ErrTenantNotFound, Code: response.CodeForbidden, Key: "error.tenant_not_found"},
	{Target: service.ErrPasswordTooShort, Code: response.CodeBadRequest, Key: "error.password_too_short"},
	{Target: service.ErrAdminNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

func respondTenantError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, tenantErrorRules, response.CodeInternal, "error.save_failed")
}

func respondCatalogError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondMappedError(c, err, catalogErrorRules, response.CodeInternal, fallbackKey)
}

func respondOrderError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondMappedError(c, err, orderErrorRules, response.CodeInternal, fallbackKey)
}

func respondUploadError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.image_upload_failed")
}

// respondAuthError 登录锁定时返回剩余秒数
func respondAuthError(c *gin.Context, err error) {
	var locked *service.LoginLockedError
	if errors.As(err, &locked) {
		handlershared.RespondErrorf(c, response.CodeTooManyRequests, "error.login_locked", locked.RetrySeconds())
		return
	}
	handlershared.RespondMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
}

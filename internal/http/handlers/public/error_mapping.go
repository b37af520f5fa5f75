package public

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

var catalogErrorRules = []mappedHandlerError{
	{Target: service.ErrTenantNotFound, Code: response.CodeNotFound, Key: "error.tenant_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

var cartErrorRules = []mappedHandlerError{
	{Target: service.ErrTenantNotFound, Code: response.CodeNotFound, Key: "error.tenant_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeBadRequest, Key: "error.cart_item_not_found"},
	{Target: service.ErrCartActionInvalid, Code: response.CodeBadRequest, Key: "error.cart_action_invalid"},
	{Target: service.ErrCartStoreUnavailable, Code: response.CodeInternal, Key: "error.cart_unavailable"},
}

var checkoutErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
	{Target: service.ErrCartEmpty, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrTenantNotFound, Code: response.CodeNotFound, Key: "error.tenant_not_found"},
	{Target: service.ErrCartTenantMismatch, Code: response.CodeConflict, Key: "error.cart_tenant_mismatch"},
	{Target: service.ErrImageUploadNotConfigured, Code: response.CodeBadRequest, Key: "error.image_upload_not_configured"},
	{Target: service.ErrFileTooLarge, Code: response.CodeBadRequest, Key: "error.file_too_large"},
	{Target: service.ErrInvalidImage, Code: response.CodeBadRequest, Key: "error.image_invalid"},
	{Target: service.ErrImageUpload, Code: response.CodeBadRequest, Key: "error.image_upload_failed"},
	{Target: service.ErrCartStoreUnavailable, Code: response.CodeInternal, Key: "error.cart_unavailable"},
}

func respondCatalogError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.query_failed")
}

// respondCartError 变体超限时返回带分组名的提示
func respondCartError(c *gin.Context, err error) {
	var violation *service.SelectionViolationError
	if errors.As(err, &violation) {
		handlershared.RespondErrorf(c, response.CodeBadRequest, "error.variation_selection_limit", violation.Limit, violation.CategoryName)
		return
	}
	handlershared.RespondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.save_failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.save_failed")
}

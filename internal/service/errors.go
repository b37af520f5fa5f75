package service

import "errors"

// 购物车与变体选择
var (
	ErrVariationSelectionLimit = errors.New("variation selection limit exceeded")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrCartItemNotFound        = errors.New("cart item not found")
	ErrCartActionInvalid       = errors.New("cart action invalid")
	ErrCartStoreUnavailable    = errors.New("cart store unavailable")
	ErrCartTenantMismatch      = errors.New("cart belongs to another tenant")
)

// 店铺
var (
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrTenantInactive  = errors.New("tenant inactive")
	ErrTenantRequired  = errors.New("tenant required")
	ErrTenantSlugTaken = errors.New("tenant slug taken")
)

// 商品目录
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNameRequired  = errors.New("product name required")
	ErrProductPriceInvalid  = errors.New("product price invalid")
	ErrProductStockInvalid  = errors.New("product stock invalid")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name required")
	ErrSubcategoryNotFound  = errors.New("subcategory not found")
	ErrVariationInvalid     = errors.New("variation invalid")
)

// 订单
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusInvalid = errors.New("order status invalid")
)

// 账号与认证
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrEmailInvalid       = errors.New("email invalid")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidToken       = errors.New("invalid token")
	ErrLoginLocked        = errors.New("login temporarily locked")
	ErrForbidden          = errors.New("forbidden")
)

// 图片上传与缓存
var (
	ErrImageUpload              = errors.New("image upload failed")
	ErrImageUploadNotConfigured = errors.New("image upload not configured")
	ErrInvalidImage             = errors.New("invalid image")
	ErrFileTooLarge             = errors.New("file too large")
	ErrImageUnavailable         = errors.New("image unavailable")
)

// 验证码与队列
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
	ErrQueueUnavailable     = errors.New("queue unavailable")
)

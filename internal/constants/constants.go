package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusFinished   = "finished"
)

// OrderStatuses 订单状态（按展示顺序）
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusFinished,
}

// 后台角色常量
const (
	RoleOwner    = "owner"
	RoleOperator = "operator"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneCheckout = "checkout"
)

// 购物车相关常量
const (
	CartSessionCookie     = "cart_session"
	CartTenantCookie      = "catalog_tenant"
	CartQuantityMin       = 1
	CartQuantityMax       = 999
	VariationDefaultLimit = 99
)

// 购物车操作常量
const (
	CartActionDecrement = "decrement"
	CartActionRemove    = "remove"
)

// 缓存键前缀
const (
	CacheKeyCatalogHome   = "catalog:home"
	CacheKeyCategories    = "catalog:categories"
	CacheKeySubcategories = "catalog:subcategories"
	CacheKeyImage         = "catalog:image"
	CacheKeyCart          = "cart"
)

// 异步任务常量
const (
	QueueDefault      = "default"
	TaskOrderNotify   = "order:notify"
	TaskImageWarm     = "image:warm"
	TaskCartSessionGC = "cart:gc"
)

package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/queue"
	"github.com/papelaria-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	carts       *CartService
	tenants     *TenantService
	uploader    ImageUploader
	captcha     *CaptchaService
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, carts *CartService, tenants *TenantService, uploader ImageUploader, captcha *CaptchaService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		carts:       carts,
		tenants:     tenants,
		uploader:    uploader,
		captcha:     captcha,
		queueClient: queueClient,
	}
}

// CheckoutInput 下单输入
type CheckoutInput struct {
	SessionID        string
	TenantIdentifier string
	Name             string
	Phone            string
	CoverName        string
	Cover            *multipart.FileHeader
	BackCover        *multipart.FileHeader
	ClientIP         string
	Captcha          CaptchaVerifyPayload
}

// CheckoutResult 下单结果
type CheckoutResult struct {
	Order  *models.Order
	Tenant *models.Tenant
}

// Checkout 将会话购物车转换为订单
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if err := s.captcha.Verify(constants.CaptchaSceneCheckout, input.Captcha); err != nil {
		return nil, err
	}

	cart, err := s.carts.Load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	summary := NormalizeCart(cart)
	if len(summary.Items) == 0 {
		return nil, ErrCartEmpty
	}

	identifier := strings.TrimSpace(input.TenantIdentifier)
	if identifier == "" {
		identifier = cart.Tenant
	}
	tenant, err := s.tenants.ResolveTenant(identifier)
	if err != nil {
		return nil, err
	}
	// 购物车只属于加入商品时的店铺
	if cart.Tenant != "" && cart.Tenant != strconv.FormatUint(uint64(tenant.ID), 10) {
		return nil, ErrCartTenantMismatch
	}

	coverURL, err := s.uploadCheckoutImage(ctx, input.Cover)
	if err != nil {
		return nil, err
	}
	backCoverURL, err := s.uploadCheckoutImage(ctx, input.BackCover)
	if err != nil {
		return nil, err
	}

	order := BuildOrderDraft(tenant.ID, summary, CheckoutContact{
		Name:         input.Name,
		Phone:        input.Phone,
		CoverName:    input.CoverName,
		CoverURL:     coverURL,
		BackCoverURL: backCoverURL,
		ClientIP:     input.ClientIP,
	})
	items := order.Items
	order.Items = nil

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, input.SessionID); err != nil {
		logger.Warnw("checkout_cart_clear_failed",
			"session_id", input.SessionID,
			"order_id", order.ID,
			"error", err,
		)
	}

	if err := s.queueClient.EnqueueOrderNotify(queue.OrderNotifyPayload{
		OrderID:  order.ID,
		TenantID: tenant.ID,
	}); err != nil {
		logger.Warnw("order_notify_enqueue_failed",
			"order_id", order.ID,
			"tenant_id", tenant.ID,
			"error", err,
		)
	}

	logger.Infow("order_checkout_completed",
		"order_id", order.ID,
		"tenant_id", tenant.ID,
		"total_items", summary.TotalItems,
		"total", summary.Total.String(),
	)
	return &CheckoutResult{Order: order, Tenant: tenant}, nil
}

func (s *OrderService) uploadCheckoutImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}
	if s.uploader == nil {
		return "", fmt.Errorf("%w: %v", ErrImageUpload, ErrImageUploadNotConfigured)
	}
	url, err := s.uploader.UploadImage(ctx, file)
	if err != nil {
		if errors.Is(err, ErrImageUpload) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrImageUpload, err)
	}
	return url, nil
}

// ListOrders 后台订单列表（新订单在前）
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.TenantID == 0 {
		return nil, 0, ErrTenantRequired
	}
	if filter.Status != "" && !IsValidOrderStatus(filter.Status) {
		return nil, 0, ErrOrderStatusInvalid
	}
	return s.orderRepo.ListByTenant(filter)
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(tenantID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// StatusCounts 按状态统计订单，缺失状态补 0
func (s *OrderService) StatusCounts(tenantID uint) ([]repository.OrderStatusCount, error) {
	rows, err := s.orderRepo.CountByStatus(tenantID)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}
	counts := make([]repository.OrderStatusCount, 0, len(constants.OrderStatuses))
	for _, status := range constants.OrderStatuses {
		counts = append(counts, repository.OrderStatusCount{Status: status, Count: byStatus[status]})
	}
	return counts, nil
}

// UpdateStatus 修改订单状态
func (s *OrderService) UpdateStatus(tenantID, orderID uint, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidOrderStatus(status) {
		return nil, ErrOrderStatusInvalid
	}
	affected, err := s.orderRepo.UpdateStatus(tenantID, orderID, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderNotFound
	}
	return s.GetOrder(tenantID, orderID)
}

// DeleteOrder 删除订单
func (s *OrderService) DeleteOrder(tenantID, orderID uint) error {
	affected, err := s.orderRepo.Delete(tenantID, orderID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// IsValidOrderStatus 判断订单状态是否合法
func IsValidOrderStatus(status string) bool {
	for _, candidate := range constants.OrderStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// OrderImageURLs 订单项图片（去重，保持顺序）
func OrderImageURLs(order *models.Order) []string {
	if order == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(order.Items))
	urls := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		url := strings.TrimSpace(item.ImageURL)
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}
	return urls
}

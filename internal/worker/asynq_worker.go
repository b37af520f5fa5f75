package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/provider"
	"github.com/papelaria-next/internal/queue"
	"github.com/papelaria-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
	now func() time.Time
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
		now:       time.Now,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderNotify, c.handleOrderNotify)
	mux.HandleFunc(queue.TaskImageWarm, c.handleImageWarm)
	mux.HandleFunc(queue.TaskCartSessionGC, c.handleCartSessionGC)
}

func (c *Consumer) handleOrderNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.TenantID == 0 {
		logger.Debugw("worker_order_notify_skip_invalid_payload", "order_id", payload.OrderID, "tenant_id", payload.TenantID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.TenantID, payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	logger.Infow("worker_order_notify",
		"order_id", order.ID,
		"tenant_id", order.TenantID,
		"customer", order.Customer,
		"items", summarizeOrderItems(order),
		"total", order.TotalAmount.String(),
		"has_cover", order.CoverURL != "",
		"has_back_cover", order.BackCoverURL != "",
	)

	urls := service.OrderImageURLs(order)
	if len(urls) == 0 {
		return nil
	}
	if c.QueueClient.Enabled() {
		if err := c.QueueClient.EnqueueImageWarm(queue.ImageWarmPayload{URLs: urls}); err != nil {
			logger.Warnw("worker_order_notify_enqueue_warm_failed", "order_id", order.ID, "error", err)
		}
		return nil
	}
	c.warmImages(ctx, urls)
	return nil
}

func (c *Consumer) handleImageWarm(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_image_warm_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ImageWarmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_image_warm_unmarshal_failed", "error", err)
		return err
	}
	c.warmImages(ctx, payload.URLs)
	return nil
}

func (c *Consumer) warmImages(ctx context.Context, urls []string) {
	if len(urls) == 0 || c.ImageCacheService == nil {
		return
	}
	warmed, err := c.ImageCacheService.Warm(ctx, urls)
	if err != nil {
		// 单张失败不重试，下次访问时再生成
		logger.Warnw("worker_image_warm_partial", "requested", len(urls), "warmed", warmed, "error", err)
		return
	}
	logger.Debugw("worker_image_warm_done", "warmed", warmed)
}

func (c *Consumer) handleCartSessionGC(_ context.Context, _ *asynq.Task) error {
	if c == nil || c.CartSessionRepo == nil {
		return nil
	}
	purged, err := c.CartSessionRepo.PurgeExpired(c.now())
	if err != nil {
		logger.Warnw("worker_cart_session_gc_failed", "error", err)
		return err
	}
	if purged > 0 {
		logger.Infow("worker_cart_session_gc", "purged", purged)
	}
	return nil
}

// summarizeOrderItems 生成订单项摘要："2x Agenda 2026 - Rosa; 1x Caneta"
func summarizeOrderItems(order *models.Order) string {
	if order == nil {
		return ""
	}
	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.ProductName))
	}
	return strings.Join(parts, "; ")
}

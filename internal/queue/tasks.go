package queue

import (
	"encoding/json"

	"github.com/papelaria-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderNotify 新订单通知任务
	TaskOrderNotify = constants.TaskOrderNotify
	// TaskImageWarm 图片缓存预热任务
	TaskImageWarm = constants.TaskImageWarm
	// TaskCartSessionGC 过期购物车会话清理任务
	TaskCartSessionGC = constants.TaskCartSessionGC
)

// OrderNotifyPayload 新订单通知任务载荷
type OrderNotifyPayload struct {
	OrderID  uint `json:"order_id"`
	TenantID uint `json:"tenant_id"`
}

// ImageWarmPayload 图片预热任务载荷
type ImageWarmPayload struct {
	URLs []string `json:"urls"`
}

// NewOrderNotifyTask 创建新订单通知任务
func NewOrderNotifyTask(payload OrderNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderNotify, body), nil
}

// NewImageWarmTask 创建图片预热任务
func NewImageWarmTask(payload ImageWarmPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskImageWarm, body), nil
}

// NewCartSessionGCTask 创建购物车会话清理任务
func NewCartSessionGCTask() *asynq.Task {
	return asynq.NewTask(TaskCartSessionGC, nil)
}

package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	// CartSessionGCSpec 购物车会话清理的调度周期
	CartSessionGCSpec = "@every 1h"
	cartSessionGCTTL  = time.Hour
)

// Client 队列客户端封装，未启用时所有投递为空操作
type Client struct {
	client       *asynq.Client
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{defaultQueue: DefaultQueue}, nil
	}
	return &Client{
		client:       asynq.NewClient(buildRedisOpt(cfg)),
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func (c *Client) enqueue(task *asynq.Task, defaults []asynq.Option, opts []asynq.Option) error {
	options := append([]asynq.Option{asynq.Queue(c.defaultQueue)}, defaults...)
	options = append(options, opts...)
	_, err := c.client.Enqueue(task, options...)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// EnqueueOrderNotify 推送新订单通知任务
func (c *Client) EnqueueOrderNotify(payload OrderNotifyPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderNotifyTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, []asynq.Option{asynq.MaxRetry(3)}, opts)
}

// EnqueueImageWarm 推送图片预热任务
func (c *Client) EnqueueImageWarm(payload ImageWarmPayload, opts ...asynq.Option) error {
	if !c.Enabled() || len(payload.URLs) == 0 {
		return nil
	}
	task, err := NewImageWarmTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, []asynq.Option{asynq.MaxRetry(2), asynq.Timeout(2 * time.Minute)}, opts)
}

// EnqueueCartSessionGC 立即投递一次过期购物车清理，unique 窗口内只保留一个
func (c *Client) EnqueueCartSessionGC(unique time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	var defaults []asynq.Option
	if unique > 0 {
		defaults = append(defaults, asynq.Unique(unique))
	}
	return c.enqueue(NewCartSessionGCTask(), append(defaults, asynq.MaxRetry(1)), nil)
}

// NewScheduler 创建周期任务调度器（购物车会话清理）
func NewScheduler(cfg *config.QueueConfig) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(buildRedisOpt(cfg), nil)
	_, err := scheduler.Register(CartSessionGCSpec, NewCartSessionGCTask(),
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(1),
		asynq.Unique(cartSessionGCTTL),
	)
	if err != nil {
		return nil, err
	}
	return scheduler, nil
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 10
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	return opt
}

package worker

import (
	"context"
	"errors"
	"time"

	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步任务服务：消费队列并调度周期清理
type Service struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	consumer  *Consumer
}

// NewService 创建异步任务服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.ErrorHandler = asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
		logger.Warnw("worker_task_failed", "type", task.Type(), "error", err)
	})
	scheduler, err := queue.NewScheduler(cfg)
	if err != nil {
		return nil, err
	}
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server:    asynq.NewServer(opt, serverCfg),
		scheduler: scheduler,
		mux:       mux,
		consumer:  consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	return "worker"
}

// Start 启动调度器与消费者，阻塞直到关闭
func (s *Service) Start(_ context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	// 启动时先清理一次，之后交给调度器
	if s.consumer != nil && s.consumer.QueueClient != nil {
		if err := s.consumer.QueueClient.EnqueueCartSessionGC(time.Hour); err != nil {
			logger.Warnw("worker_cart_session_gc_enqueue_failed", "error", err)
		}
	}
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return err
		}
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(_ context.Context) error {
	if s == nil {
		return nil
	}
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}

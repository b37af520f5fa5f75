package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

const defaultStopTimeout = 10 * time.Second

var errNoServices = errors.New("no services to run")

// Service 可启停的后台服务（API / Worker）
// Start 阻塞直到服务退出或 ctx 结束
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 按注册顺序启动服务，任意一个退出即整体关停
type Runner struct {
	services []Service
}

// serviceExit 服务退出结果
type serviceExit struct {
	name string
	err  error
}

// NewRunner 创建服务运行器，忽略 nil 服务
func NewRunner(services ...Service) *Runner {
	kept := make([]Service, 0, len(services))
	for _, svc := range services {
		if svc != nil {
			kept = append(kept, svc)
		}
	}
	return &Runner{services: kept}
}

// Names 返回已注册服务名称
func (r *Runner) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.services))
	for i, svc := range r.services {
		names[i] = svc.Name()
	}
	return names
}

// RunWithOptions 监听系统信号并运行全部服务
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errNoServices
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务，等待首个退出或 ctx 取消后在 stopTimeout 内依次停止
// 信号触发的正常关停返回 nil
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errNoServices
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if stopTimeout <= 0 {
		stopTimeout = defaultStopTimeout
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	exits := make(chan serviceExit, len(r.services))
	for _, svc := range r.services {
		go r.launch(runCtx, svc, exits, logger)
	}

	var cause error
	pending := len(r.services)
	select {
	case <-runCtx.Done():
		cause = runCtx.Err()
	case exit := <-exits:
		pending--
		cause = exit.err
		if cause != nil {
			logger.Errorw("service_failed", "service", exit.name, "error", cause)
		}
	}
	cancelRun()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), stopTimeout)
	defer cancelStop()
	r.stopAll(stopCtx, logger)
	r.drain(stopCtx, exits, pending, logger)

	if errors.Is(cause, context.Canceled) {
		return nil
	}
	return cause
}

func (r *Runner) launch(ctx context.Context, svc Service, exits chan<- serviceExit, logger *zap.SugaredLogger) {
	name := svc.Name()
	logger.Infow("service_start", "service", name)
	err := svc.Start(ctx)
	logger.Infow("service_exit", "service", name)
	exits <- serviceExit{name: name, err: err}
}

// stopAll 逆序停止，后启动的服务先停
func (r *Runner) stopAll(ctx context.Context, logger *zap.SugaredLogger) {
	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		if err := svc.Stop(ctx); err != nil {
			logger.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}

// drain 等待剩余服务退出，超时后放弃
func (r *Runner) drain(ctx context.Context, exits <-chan serviceExit, pending int, logger *zap.SugaredLogger) {
	for ; pending > 0; pending-- {
		select {
		case <-exits:
		case <-ctx.Done():
			logger.Warnw("service_stop_timeout", "pending", pending)
			return
		}
	}
}

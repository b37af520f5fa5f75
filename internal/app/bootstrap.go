package app

import (
	"errors"
	"net"

	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/provider"
	"github.com/papelaria-next/internal/router"
	"github.com/papelaria-next/internal/worker"
)

// BuildRunner 按启动模式组装 API 与 Worker 服务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateMode(mode); err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service
	if runsAPI(mode) {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(listenAddr(cfg), engine))
	}

	// Worker 负责订单通知、图片预热与购物车会话清理
	if runsWorker(mode) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and queue config)")
	}
	return NewRunner(services...), nil
}

func listenAddr(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config), "mode", opts.Mode, "services", runner.Names())
	return RunWithOptions(runner, opts)
}

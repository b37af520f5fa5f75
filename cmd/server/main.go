package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/papelaria-next/internal/app"
	"github.com/papelaria-next/internal/config"
	"github.com/papelaria-next/internal/logger"
	"github.com/papelaria-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiPink  = "\033[95m"
	ansiDim   = "\033[2m"
)

func main() {
	mode := flag.String("mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(*mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	if err := run(cfg, *mode); err != nil {
		logger.StdLogger().Printf("服务运行失败: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, mode string) error {
	stdLog := logger.StdLogger()

	if cfg.JWT.WeakSecret() {
		if cfg.Server.Release() {
			return fmt.Errorf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 平台运营账号只在首次启动时创建，生产环境必须显式配置密码
	if cfg.Server.Release() && cfg.Bootstrap.OperatorPassword == "" {
		stdLog.Printf("警告: 未设置 bootstrap.operator_password，已跳过默认运营账号初始化")
	} else if err := models.InitDefaultOperator(cfg.Bootstrap.OperatorEmail, cfg.Bootstrap.OperatorPassword); err != nil {
		stdLog.Printf("警告: 初始化默认运营账号失败: %v", err)
	}

	if cfg.Server.Release() {
		gin.SetMode(gin.ReleaseMode)
	}

	return app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	})
}

func printStartupBanner(mode string) {
	fmt.Println(ansiPink + ansiBold + "papelaria-next" + ansiReset + ansiDim + "  catálogo multi-loja + carrinho WhatsApp" + ansiReset)
	fmt.Println(ansiDim + "mode: " + mode + ansiReset)
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/xiebiao/library/internal/bootstrap"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/logger"
)

// main 控制台入口
// 与HTTP服务共用配置和存储；日志写到stderr，不干扰菜单输出
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if cfg.Log.Output == "stdout" {
		cfg.Log.Output = "stderr"
	}

	logg, closeLog, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer closeLog()

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logg)
	if err != nil {
		logg.Error("初始化失败", "error", err)
		os.Exit(1)
	}
	defer app.Close(ctx)

	// Save & Exit已经保存过，这里不再重复保存
	if err := app.Console(os.Stdin, os.Stdout).Run(ctx); err != nil {
		logg.Error("保存馆藏失败", "error", err)
	}
}

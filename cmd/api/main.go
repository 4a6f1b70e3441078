package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	_ "github.com/xiebiao/library/docs"
	"github.com/xiebiao/library/internal/bootstrap"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/logger"
)

// @title           Library Lending API
// @version         1.0
// @description     图书馆借阅服务：馆藏查询、借书还书、管理员维护馆藏
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// main HTTP服务入口
// 启动顺序：配置 → 日志 → 存储/馆藏 → 路由 → 监听
// 收到SIGINT/SIGTERM后优雅关闭，并在退出前保存馆藏
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	logg, closeLog, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer closeLog()

	logg.Info("配置加载成功",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"storage", cfg.Storage.Driver,
		"autosave", cfg.Storage.Autosave,
	)

	if err := run(cfg, logg); err != nil {
		logg.Error("服务异常退出", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. 依赖注入
	app, err := bootstrap.New(ctx, cfg, logg)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}

	// 4. 初始化Gin引擎
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 5. 启动服务
	errCh := make(chan error, 1)
	go func() {
		logg.Info("服务启动成功", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logg.Info("收到退出信号，开始优雅关闭")
	case err := <-errCh:
		if err != nil {
			app.Close(context.Background())
			return fmt.Errorf("启动服务失败: %w", err)
		}
	}

	// 6. 优雅关闭：先停止接收请求，再保存馆藏
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Warn("HTTP服务关闭超时", "error", err)
	}
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("退出前保存馆藏失败: %w", err)
	}

	logg.Info("服务已停止")
	return nil
}

package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewClient 创建Redis客户端
// 用途：redis存储驱动（馆藏快照）和管理员会话/Token黑名单
func NewClient(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Info("Redis连接成功", "addr", cfg.Addr(), "db", cfg.DB)
	return client, nil
}

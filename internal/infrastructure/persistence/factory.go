package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/file"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/postgres"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
)

// Resources 按配置打开的存储资源
type Resources struct {
	Catalog *GuardedRepository
	Driver  string

	// Redis 启用Redis（redis.enabled或redis驱动）时非空，会话存储复用
	Redis *goredis.Client

	closers []func() error
}

// Open 根据storage.driver创建馆藏仓储
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Resources, error) {
	res := &Resources{Driver: cfg.Storage.Driver}

	if cfg.Redis.Enabled || cfg.Storage.Driver == config.DriverRedis {
		client, err := redis.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		res.Redis = client
		res.closers = append(res.closers, client.Close)
	}

	var repo catalog.Repository
	switch cfg.Storage.Driver {
	case config.DriverFile:
		repo = file.NewStore(cfg.Storage.FilePath)

	case config.DriverMySQL:
		db, err := mysql.NewDB(cfg, log)
		if err != nil {
			res.Close()
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			res.closers = append(res.closers, sqlDB.Close)
		}
		repo = mysql.NewCatalogRepository(db)

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres, log)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.closers = append(res.closers, func() error { pool.Close(); return nil })

		pg := postgres.NewCatalogRepo(pool, cfg.Postgres.QueryTimeout)
		if err := pg.Migrate(ctx); err != nil {
			res.Close()
			return nil, err
		}
		repo = pg

	case config.DriverRedis:
		repo = redis.NewCatalogStore(res.Redis, cfg.Storage.RedisKey)

	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", cfg.Storage.Driver)
	}

	res.Catalog = Guard(repo, cfg.Storage.Driver, log)
	log.Info("馆藏存储已就绪", "driver", cfg.Storage.Driver)
	return res, nil
}

// Close 逆序关闭所有连接
func (r *Resources) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

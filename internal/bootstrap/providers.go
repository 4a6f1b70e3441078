package bootstrap

import (
	"context"
	"log/slog"

	appadmin "github.com/xiebiao/library/internal/application/admin"
	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/tracing"
)

// =========================================
// Providers
// 需要从Config提取参数、或需要按开关选择实现的依赖
// =========================================

// ProvideTracer 按配置初始化链路追踪，未启用时返回空操作
func ProvideTracer(cfg *config.Config, log *slog.Logger) (tracing.ShutdownFunc, error) {
	if !cfg.Tracing.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		return nil, err
	}
	log.Info("链路追踪已启用", "endpoint", cfg.Tracing.Endpoint)
	return shutdown, nil
}

// ProvideStorage 打开馆藏存储
func ProvideStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*persistence.Resources, func(), error) {
	res, err := persistence.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return res, func() {
		if err := res.Close(); err != nil {
			log.Warn("关闭存储连接失败", "error", err)
		}
	}, nil
}

// ProvideRepository 带熔断的馆藏仓储
func ProvideRepository(res *persistence.Resources) catalog.Repository {
	return res.Catalog
}

// ProvidePublisher mq.enabled时连接RabbitMQ，否则不发布事件
// 连接失败不阻止启动，退化为NopPublisher
func ProvidePublisher(cfg *config.Config, log *slog.Logger) (mq.Publisher, func()) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, func() {}
	}
	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		log.Warn("RabbitMQ不可用，借阅事件不会发布", "error", err)
		return mq.NopPublisher{}, func() {}
	}
	return pub, func() {
		if err := pub.Close(); err != nil {
			log.Warn("关闭RabbitMQ连接失败", "error", err)
		}
	}
}

// ProvideSessionStore 有Redis时会话放在Redis，否则放在进程内
func ProvideSessionStore(res *persistence.Resources) appadmin.SessionStore {
	if res.Redis != nil {
		return redis.NewSessionStore(res.Redis)
	}
	return memory.NewSessionStore()
}

// ProvideJWTManager 从配置创建JWT管理器
func ProvideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// ProvidePasswordVerifier 管理员口令校验
func ProvidePasswordVerifier(cfg *config.Config) (*appadmin.PasswordVerifier, error) {
	return appadmin.NewPasswordVerifier(cfg.Admin)
}

// ProvideLoadOptions 借阅规则与示例数据开关
func ProvideLoadOptions(cfg *config.Config) library.LoadOptions {
	return library.LoadOptions{
		FinePolicy: catalog.FinePolicy{
			AllowedDays: cfg.Lending.AllowedDays,
			DailyFine:   cfg.Lending.DailyFine,
		},
		SeedOnEmpty: cfg.Storage.SeedOnEmpty,
	}
}

// ProvideCatalog 启动时加载馆藏，任何失败都退化为空馆藏
func ProvideCatalog(ctx context.Context, uc *library.LoadCatalogUseCase) *catalog.Catalog {
	return uc.Execute(ctx).Catalog
}

// ProvideAutoSaver 按storage.autosave提交修改
func ProvideAutoSaver(cfg *config.Config, save *library.SaveCatalogUseCase, log *slog.Logger) *library.AutoSaver {
	return library.NewAutoSaver(save, cfg.Storage.Autosave, log)
}

// ProvideLoginUseCase 会话有效期与Refresh Token一致
func ProvideLoginUseCase(
	cfg *config.Config,
	verifier *appadmin.PasswordVerifier,
	jwtManager *jwt.Manager,
	sessions appadmin.SessionStore,
	log *slog.Logger,
) *appadmin.LoginUseCase {
	return appadmin.NewLoginUseCase(verifier, jwtManager, sessions, cfg.JWT.RefreshTokenExpire, log)
}

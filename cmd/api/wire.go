//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 与internal/bootstrap.New的手动组装一一对应，运行 `wire gen ./cmd/api`
// 生成wire_gen.go后可以替换手动注入。
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如appbook.NewAddBookUseCase）
// - wire.Bind: 接口到实现的绑定（Committer → *AutoSaver）
// - Injector: 声明最终要构造的目标类型

package main

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appadmin "github.com/xiebiao/library/internal/application/admin"
	appbook "github.com/xiebiao/library/internal/application/book"
	applending "github.com/xiebiao/library/internal/application/lending"
	"github.com/xiebiao/library/internal/application/library"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/bootstrap"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/http/router"
)

// infrastructureSet 存储、消息、会话、JWT
var infrastructureSet = wire.NewSet(
	bootstrap.ProvideStorage,
	bootstrap.ProvideRepository,
	bootstrap.ProvidePublisher,
	bootstrap.ProvideSessionStore,
	bootstrap.ProvideJWTManager,
	bootstrap.ProvidePasswordVerifier,
)

// librarySet 馆藏加载、保存、自动保存
var librarySet = wire.NewSet(
	bootstrap.ProvideLoadOptions,
	library.NewLoadCatalogUseCase,
	bootstrap.ProvideCatalog,
	library.NewSaveCatalogUseCase,
	bootstrap.ProvideAutoSaver,
	wire.Bind(new(library.Committer), new(*library.AutoSaver)),
)

// applicationSet 全部Use Case
var applicationSet = wire.NewSet(
	appbook.NewAddBookUseCase,
	appbook.NewRemoveBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appmember.NewAddMemberUseCase,
	appmember.NewGetMemberUseCase,
	appmember.NewListMembersUseCase,
	applending.NewIssueBookUseCase,
	applending.NewReturnBookUseCase,
	bootstrap.ProvideLoginUseCase,
	appadmin.NewLogoutUseCase,
	appadmin.NewAuthenticator,
	appadmin.NewRefreshUseCase,
)

// handlerSet HTTP处理器与中间件
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewMemberHandler,
	handler.NewLendingHandler,
	handler.NewAdminHandler,
	middleware.NewAuthMiddleware,
	wire.Struct(new(router.Handlers), "*"),
	provideRouterOptions,
	router.New,
)

func provideRouterOptions(cfg *config.Config) router.Options {
	return router.Options{
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		TracingEnabled: cfg.Tracing.Enabled,
		Swagger:        cfg.Server.Mode != "release",
	}
}

// InitializeRouter 构造HTTP路由
// cleanup依次关闭消息连接与存储连接
func InitializeRouter(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		librarySet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}

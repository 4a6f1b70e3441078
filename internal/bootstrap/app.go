package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	appadmin "github.com/xiebiao/library/internal/application/admin"
	appbook "github.com/xiebiao/library/internal/application/book"
	applending "github.com/xiebiao/library/internal/application/lending"
	"github.com/xiebiao/library/internal/application/library"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/console"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/pkg/metrics"
)

// App 组装好的应用（HTTP服务与控制台共用）
// 依赖链：Config → 存储 → 馆藏 → UseCase → Handler/Console
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Catalog *catalog.Catalog
	Driver  string

	Book    BookUseCases
	Member  MemberUseCases
	Lending LendingUseCases
	Admin   AdminUseCases
	Save    *library.SaveCatalogUseCase

	cleanups []func()
	shutdown func(context.Context) error
}

type BookUseCases struct {
	Add    *appbook.AddBookUseCase
	Remove *appbook.RemoveBookUseCase
	Get    *appbook.GetBookUseCase
	List   *appbook.ListBooksUseCase
}

type MemberUseCases struct {
	Add  *appmember.AddMemberUseCase
	Get  *appmember.GetMemberUseCase
	List *appmember.ListMembersUseCase
}

type LendingUseCases struct {
	Issue  *applending.IssueBookUseCase
	Return *applending.ReturnBookUseCase
}

type AdminUseCases struct {
	Verifier *appadmin.PasswordVerifier
	Login    *appadmin.LoginUseCase
	Logout   *appadmin.LogoutUseCase
	Refresh  *appadmin.RefreshUseCase
	Auth     *appadmin.Authenticator
}

// New 手动依赖注入（与cmd/api/wire.go中的Provider一一对应）
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	shutdownTracer, err := ProvideTracer(cfg, log)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Log: log, Driver: cfg.Storage.Driver, shutdown: shutdownTracer}

	// 基础设施层
	storage, closeStorage, err := ProvideStorage(ctx, cfg, log)
	if err != nil {
		_ = shutdownTracer(ctx)
		return nil, err
	}
	app.cleanups = append(app.cleanups, closeStorage)

	publisher, closePublisher := ProvidePublisher(cfg, log)
	app.cleanups = append(app.cleanups, closePublisher)

	verifier, err := ProvidePasswordVerifier(cfg)
	if err != nil {
		app.close()
		_ = shutdownTracer(ctx)
		return nil, err
	}
	repo := ProvideRepository(storage)
	sessions := ProvideSessionStore(storage)
	jwtManager := ProvideJWTManager(cfg)

	// 馆藏
	cat := ProvideCatalog(ctx, library.NewLoadCatalogUseCase(repo, ProvideLoadOptions(cfg), log))
	app.Catalog = cat
	app.Save = library.NewSaveCatalogUseCase(cat, repo, log)
	committer := ProvideAutoSaver(cfg, app.Save, log)

	// 应用层
	app.Book = BookUseCases{
		Add:    appbook.NewAddBookUseCase(cat, publisher, committer, log),
		Remove: appbook.NewRemoveBookUseCase(cat, publisher, committer, log),
		Get:    appbook.NewGetBookUseCase(cat),
		List:   appbook.NewListBooksUseCase(cat),
	}
	app.Member = MemberUseCases{
		Add:  appmember.NewAddMemberUseCase(cat, committer),
		Get:  appmember.NewGetMemberUseCase(cat),
		List: appmember.NewListMembersUseCase(cat),
	}
	app.Lending = LendingUseCases{
		Issue:  applending.NewIssueBookUseCase(cat, publisher, committer, log),
		Return: applending.NewReturnBookUseCase(cat, publisher, committer, log),
	}
	auth := appadmin.NewAuthenticator(jwtManager, sessions)
	app.Admin = AdminUseCases{
		Verifier: verifier,
		Login:    ProvideLoginUseCase(cfg, verifier, jwtManager, sessions, log),
		Logout:   appadmin.NewLogoutUseCase(sessions, log),
		Refresh:  appadmin.NewRefreshUseCase(auth),
		Auth:     auth,
	}

	return app, nil
}

// Router HTTP路由
func (a *App) Router() *gin.Engine {
	h := router.Handlers{
		Book:    handler.NewBookHandler(a.Book.Add, a.Book.Remove, a.Book.Get, a.Book.List),
		Member:  handler.NewMemberHandler(a.Member.Add, a.Member.Get, a.Member.List),
		Lending: handler.NewLendingHandler(a.Lending.Issue, a.Lending.Return),
		Admin:   handler.NewAdminHandler(a.Admin.Login, a.Admin.Logout, a.Admin.Refresh, a.Save),
		Auth:    middleware.NewAuthMiddleware(a.Admin.Auth),
	}
	return router.New(h, router.Options{
		MetricsEnabled: a.Config.Metrics.Enabled,
		MetricsPath:    a.Config.Metrics.Path,
		TracingEnabled: a.Config.Tracing.Enabled,
		Swagger:        a.Config.Server.Mode != "release",
	}, a.Log)
}

// Console 交互式控制台
func (a *App) Console(in io.Reader, out io.Writer) *console.Console {
	return console.New(in, out, console.Deps{
		Verifier:    a.Admin.Verifier,
		AddBook:     a.Book.Add,
		RemoveBook:  a.Book.Remove,
		ListBooks:   a.Book.List,
		AddMember:   a.Member.Add,
		ListMembers: a.Member.List,
		IssueBook:   a.Lending.Issue,
		ReturnBook:  a.Lending.Return,
		Save:        a.Save,
		Log:         a.Log,
	})
}

// Shutdown 保存馆藏后释放资源
// 保存失败只记录日志，资源照常释放
func (a *App) Shutdown(ctx context.Context) error {
	_, saveErr := a.Save.Execute(ctx)
	if saveErr != nil {
		a.Log.ErrorContext(ctx, "退出前保存馆藏失败", "error", saveErr)
	}
	a.close()
	if err := a.shutdown(ctx); err != nil {
		a.Log.WarnContext(ctx, "关闭链路追踪失败", "error", err)
	}
	return saveErr
}

// Close 只释放资源，不保存（控制台退出时已经保存过）
func (a *App) Close(ctx context.Context) {
	a.close()
	_ = a.shutdown(ctx)
}

func (a *App) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Book    *handler.BookHandler
	Member  *handler.MemberHandler
	Lending *handler.LendingHandler
	Admin   *handler.AdminHandler
	Auth    *middleware.AuthMiddleware
}

// Options 路由选项
type Options struct {
	MetricsEnabled bool
	MetricsPath    string
	TracingEnabled bool
	Swagger        bool
}

// New 创建Gin引擎并注册全部路由
//
//	GET  /ping
//	GET  /metrics
//	GET  /swagger/*any
//	/api/v1/books, /api/v1/members, /api/v1/loans     公开
//	/api/v1/admin/login, /api/v1/admin/refresh         公开
//	/api/v1/admin/...                                  需要管理员Token
func New(h Handlers, opts Options, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	if opts.TracingEnabled {
		r.Use(middleware.Tracing())
	}
	if opts.MetricsEnabled {
		r.Use(middleware.Metrics())
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.GET("/:isbn", h.Book.GetBook)
		}

		v1.GET("/members/:id", h.Member.GetMember)

		loans := v1.Group("/loans")
		{
			loans.POST("", h.Lending.IssueBook)
			loans.POST("/return", h.Lending.ReturnBook)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/login", h.Admin.Login)
			admin.POST("/refresh", h.Admin.Refresh)

			authorized := admin.Group("")
			authorized.Use(h.Auth.RequireAdmin())
			{
				authorized.POST("/logout", h.Admin.Logout)
				authorized.POST("/books", h.Book.AddBook)
				authorized.DELETE("/books/:isbn", h.Book.RemoveBook)
				authorized.POST("/members", h.Member.AddMember)
				authorized.GET("/members", h.Member.ListMembers)
				authorized.POST("/catalog/save", h.Admin.SaveCatalog)
			}
		}
	}

	return r
}

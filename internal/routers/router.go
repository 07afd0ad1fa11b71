package routers

import (
	"strings"
	"time"

	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/middleware"
	"github.com/learncss/Annotum/internal/routers/api_router"
	"github.com/learncss/Annotum/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/opentracing/opentracing-go"
)

// apiLimiters throttles the credential endpoints.
func apiLimiters() limiter.Face {
	return limiter.NewMethodLimiter().AddBuckets(
		limiter.BucketRule{
			Key:          "/api/user/login",
			FillInterval: time.Second,
			Capacity:     10,
			Quantum:      10,
		},
		limiter.BucketRule{
			Key:          "/api/user/register",
			FillInterval: time.Second,
			Capacity:     5,
			Quantum:      5,
		},
	)
}

// NewRouter builds the public engine. tracer may be nil, in which case no
// spans are started.
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator, tracer opentracing.Tracer) *gin.Engine {
	cfg := appContainer.Config()
	logger := appContainer.Logger()

	r := gin.New()
	r.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
	r.Use(middleware.TraceMiddleware(middleware.TraceConfig{Enabled: cfg.Tracer.Enabled, Header: cfg.Tracer.Header}))
	if tracer != nil {
		r.Use(middleware.Tracing(tracer))
	}
	r.Use(middleware.Cors())
	r.Use(middleware.LangWithTranslator(uni))
	r.Use(middleware.AccessLogWithLogger(logger))
	r.Use(middleware.RecoveryWithLogger(logger))
	r.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))

	// XML 下载：已发布文章匿名可访问，预览需要登录
	exportHandler := api_router.NewExportHandler(appContainer)
	xml := r.Group("/", middleware.OptionalUserAuthToken(cfg.Security.AuthTokenKey))
	if cfg.Export.RateLimit > 0 {
		burst := cfg.Export.RateBurst
		if burst < cfg.Export.RateLimit {
			burst = cfg.Export.RateLimit
		}
		xml.Use(middleware.RateLimiter(limiter.NewMethodLimiter().AddBuckets(limiter.BucketRule{
			Key:          "/",
			FillInterval: time.Second,
			Capacity:     burst,
			Quantum:      cfg.Export.RateLimit,
		})))
	}
	{
		base := "/" + strings.Trim(cfg.Site.ArticleBase, "/") + "/:slug/xml"
		xml.GET(base, exportHandler.Pretty(false))
		xml.GET(base+"/", exportHandler.Pretty(false))
		xml.GET(base+"/preview", exportHandler.Pretty(true))
		xml.GET(base+"/preview/", exportHandler.Pretty(true))
		xml.GET("/", exportHandler.Plain)
	}

	api := r.Group("/api", middleware.RateLimiter(apiLimiters()))
	{
		userHandler := api_router.NewUserHandler(appContainer)
		articleHandler := api_router.NewArticleHandler(appContainer)
		commentHandler := api_router.NewCommentHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		// 可选登录：登录用户可看到自己的草稿
		optional := api.Group("", middleware.OptionalUserAuthToken(cfg.Security.AuthTokenKey))
		optional.GET("/article", articleHandler.Get)
		optional.GET("/articles", articleHandler.List)
		optional.GET("/article/comments", commentHandler.List)
		optional.POST("/article/comment", commentHandler.Create)
		optional.GET("/article/download_url", exportHandler.DownloadURL)

		auth := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		auth.GET("/user/info", userHandler.UserInfo)
		auth.POST("/article", articleHandler.Save)
		auth.DELETE("/article", articleHandler.Delete)
		auth.POST("/article/autosave", articleHandler.Autosave)
		auth.POST("/admin/archive", exportHandler.Archive)
	}

	r.NoRoute(middleware.NoFound())

	return r
}

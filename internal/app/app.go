// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/learncss/Annotum/internal/dao"
	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/service"
	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/storage"
	"github.com/learncss/Annotum/pkg/workerpool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 归档任务使用的 Worker Pool
	workerPool *workerpool.Pool
	// Storage 为 nil 表示归档存储不可用
	Storage storage.Storager

	// Repository 层
	UserRepo      domain.UserRepository
	ArticleRepo   domain.ArticleRepository
	CommentRepo   domain.CommentRepository
	RelationRepo  domain.RelationRepository
	ReferenceRepo domain.ReferenceRepository

	// Service 层
	UserService    service.UserService
	ArticleService service.ArticleService
	CommentService service.CommentService
	ExportService  service.ExportService
	ArchiveService service.ArchiveService

	TokenManager pkgapp.TokenManager

	// StartTime 用于健康检查中的运行时长
	StartTime time.Time

	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// DatabaseConfig maps the file config to the DAO one.
func (c *AppConfig) DatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		Name:            c.Database.Name,
		Replicas:        c.Database.Replicas,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		SSLMode:         c.Database.SSLMode,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		RunMode:         c.Server.RunMode,
		Tracing:         c.Tracer.JaegerAgent != "",
	}
}

// ServiceConfig extracts what the service layer needs. The journal is
// snapshotted here; a config reload builds a new container.
func (c *AppConfig) ServiceConfig() *service.ServiceConfig {
	return &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable:  c.User.RegisterIsEnable,
			AdminUID:          c.User.AdminUID,
			CommentModeration: c.User.CommentModeration,
		},
		Site: service.SiteServiceConfig{
			BaseURL:          c.Site.BaseURL,
			ArticleBase:      c.Site.ArticleBase,
			PrettyPermalinks: c.Site.PrettyPermalinks,
			WorkflowEnabled:  c.Site.WorkflowEnabled,
		},
		Export: service.ExportServiceConfig{
			LegacyAffiliations: c.Export.LegacyAffiliations,
		},
		Archive: service.ArchiveServiceConfig{
			Prefix:      c.Archive.Prefix,
			StorageType: c.Storage.Type,
		},
		Journal: c.Journal.Snapshot(),
	}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	dbConfig := cfg.DatabaseConfig()
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(&dbConfig),
		dao.WithLogger(logger),
	)

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    Name,
		Expiry:    cfg.GetTokenExpiry(),
	})

	store, err := storage.NewClient(&cfg.Storage)
	if err != nil {
		logger.Warn("archive storage unavailable", zap.String("type", cfg.Storage.Type), zap.Error(err))
	} else {
		a.Storage = store
	}

	// Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.ArticleRepo = dao.NewArticleRepository(a.Dao)
	a.CommentRepo = dao.NewCommentRepository(a.Dao)
	a.RelationRepo = dao.NewRelationRepository(a.Dao)
	a.ReferenceRepo = dao.NewReferenceRepository(a.Dao)

	// Service 层
	svcConfig := cfg.ServiceConfig()
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)
	a.ArticleService = service.NewArticleService(a.ArticleRepo, a.RelationRepo, a.ReferenceRepo, a.UserRepo, logger, svcConfig)
	a.CommentService = service.NewCommentService(a.CommentRepo, a.ArticleRepo, a.UserRepo, logger, svcConfig)
	a.ExportService = service.NewExportService(a.ArticleRepo, a.CommentRepo, a.RelationRepo, a.ReferenceRepo, a.UserRepo, logger, svcConfig)
	a.ArchiveService = service.NewArchiveService(a.ArticleRepo, a.ExportService, a.Storage, a.workerPool, logger, svcConfig)

	logger.Info("App container initialized successfully",
		zap.String("database", dbConfig.Type),
		zap.String("storage", cfg.Storage.Type),
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers))

	return a, nil
}

// Close 释放数据库连接
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// IsReturnSuccess 写操作成功时是否返回提示
func (a *App) IsReturnSuccess() bool {
	return a.config.App.IsReturnSussess
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// WorkerPool 获取 Worker Pool
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：后台操作 -> Worker Pool -> Database
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 1. 等待后台操作（正在进行的归档）
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 2. Worker Pool
	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	// 3. 数据库
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}
	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation 跟踪后台操作，关闭时等待其完成
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return a.wg.Done
}

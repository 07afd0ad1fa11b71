package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	internalApp "github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dao"
	"github.com/learncss/Annotum/internal/mcpserver"
	"github.com/learncss/Annotum/internal/routers"
	"github.com/learncss/Annotum/internal/service"
	"github.com/learncss/Annotum/internal/task"
	"github.com/learncss/Annotum/internal/upgrade"
	"github.com/learncss/Annotum/pkg/logger"
	"github.com/learncss/Annotum/pkg/safe_close"
	"github.com/learncss/Annotum/pkg/tracer"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultSecretKeys 定义需要检测的默认密钥列表
var defaultSecretKeys = []string{
	"6666",
	"annotum-Auth-Token",
	"",
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = internalApp.DefaultShutdownTimeout

type Server struct {
	logger            *zap.Logger             // 日志对象
	config            *internalApp.AppConfig  // 应用配置（注入的依赖）
	db                *gorm.DB                // 数据库连接
	ut                *ut.UniversalTranslator // 翻译器
	httpServer        *http.Server
	privateHttpServer *http.Server
	tracerCloser      io.Closer
	sc                *safe_close.SafeClose
	app               *internalApp.App // App Container
}

// checkSecurityConfigWithConfig 检查安全配置，如果使用默认密钥则输出警告
func checkSecurityConfigWithConfig(cfg *internalApp.AppConfig, lg *zap.Logger) {
	isDefault := false
	for _, key := range defaultSecretKeys {
		if cfg.Security.AuthTokenKey == key {
			isDefault = true
			break
		}
	}

	if isDefault {
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("SECURITY WARNING: Using default secret key!")
		fmt.Println()
		fmt.Println("Please modify 'security.auth-token-key' in config.yaml")
		fmt.Println("Generate a secure key with:")
		fmt.Println("  openssl rand -base64 32")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println()

		if lg != nil {
			lg.Warn("Using default secret key - please change security.auth-token-key in config.yaml")
		}
	}
}

// newContainer loads the config and builds the logger, database and App
// Container. It is shared by the server and the one-shot commands; the
// latter log to stderr so their stdout stays clean.
// newContainer 加载配置并初始化 App Container
func newContainer(configPath string, stderrLog bool) (*internalApp.App, string, error) {
	appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	lg, err := logger.NewLogger(logger.Config{
		Level:      appConfig.Log.Level,
		File:       appConfig.Log.File,
		Production: appConfig.Log.Production,
		Stderr:     stderrLog,
	})
	if err != nil {
		return nil, "", fmt.Errorf("initLogger: %w", err)
	}

	if err := initStorageWithConfig(appConfig); err != nil {
		return nil, "", fmt.Errorf("initStorage: %w", err)
	}

	db, err := dao.NewDBEngineWithConfig(appConfig.DatabaseConfig(), lg)
	if err != nil {
		return nil, "", fmt.Errorf("initDatabase: %w", err)
	}

	app, err := internalApp.NewApp(appConfig, lg, db)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create app container: %w", err)
	}

	if appConfig.Database.AutoMigrate {
		if err := app.Dao.Migrate(); err != nil {
			_ = app.Close()
			return nil, "", fmt.Errorf("migrate: %w", err)
		}
		// 自动执行数据升级任务
		if err := upgrade.Execute(context.Background(), db, lg, internalApp.Version); err != nil {
			_ = app.Close()
			return nil, "", fmt.Errorf("upgrade.Execute: %w", err)
		}
	}
	return app, configRealpath, nil
}

func NewServer(runEnv *runFlags) (*Server, error) {

	app, configRealpath, err := newContainer(runEnv.config, false)
	if err != nil {
		return nil, err
	}
	appConfig := app.Config()

	// 确定运行模式
	runMode := runEnv.runMode
	if len(runMode) <= 0 {
		runMode = appConfig.Server.RunMode
	}
	if len(runMode) > 0 {
		gin.SetMode(runMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if len(runEnv.port) > 0 {
		appConfig.Server.HttpPort = ":" + strings.TrimPrefix(runEnv.port, ":")
	}

	s := &Server{
		config: appConfig,
		logger: app.Logger(),
		db:     app.DB,
		app:    app,
		sc:     safe_close.NewSafeClose(),
	}

	checkSecurityConfigWithConfig(appConfig, s.logger)

	uni, err := routers.NewTranslator()
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	service.RegisterMetrics(prometheus.DefaultRegisterer)

	var tr opentracing.Tracer
	if agent := appConfig.Tracer.JaegerAgent; agent != "" {
		t, closer, err := tracer.NewJaegerTracer(tracer.Config{
			ServiceName: appConfig.Tracer.ServiceName,
			AgentHost:   agent,
			SampleRate:  appConfig.Tracer.SampleRate,
		})
		if err != nil {
			s.logger.Warn("jaeger tracer disabled", zap.String("agent", agent), zap.Error(err))
		} else {
			tr = t
			s.tracerCloser = closer
		}
	}

	// 启动调度器
	initScheduler(s)

	banner := `
    ___                     __
   /   |  ____  ____  ____  / /___  ______ ___
  / /| | / __ \/ __ \/ __ \/ __/ / / / __ '__ \
 / ___ |/ / / / / / / /_/ / /_/ /_/ / / / / / /
/_/  |_/_/ /_/_/ /_/\____/\__/\__,_/_/ /_/ /_/ `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	// 启动 HTTP API 服务器
	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", appConfig.Server.HttpPort))
		s.httpServer = &http.Server{
			Addr:           appConfig.Server.HttpPort,
			Handler:        routers.NewRouter(s.app, s.ut, tr),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.serve(s.httpServer, "api service")
	}

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", appConfig.Server.PrivateHttpListen))
		private := routers.NewPrivateRouterWithLogger(appConfig.Server.RunMode, s.logger, s.app.WorkerPool())
		private.Any(mcpserver.DefaultEndpoint, gin.WrapH(mcpserver.Handler(s.app, mcpserver.DefaultEndpoint)))
		s.privateHttpServer = &http.Server{
			Addr:           appConfig.Server.PrivateHttpListen,
			Handler:        private,
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.serve(s.privateHttpServer, "private api service")
	}

	// 注册 App Container 的优雅关闭（使用 Shutdown 方法）
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal

		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()

		if err := s.app.Shutdown(ctx); err != nil {
			s.logger.Error("failed to shutdown app container", zap.Error(err))
		} else {
			s.logger.Info("App container shutdown gracefully")
		}
		if s.tracerCloser != nil {
			_ = s.tracerCloser.Close()
		}
	})

	return s, nil
}

// serve runs srv until the close signal, then shuts it down.
func (s *Server) serve(srv *http.Server, name string) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			s.logger.Error(name+" err", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// 停止 HTTP 服务器
			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error(name+" shutdown error", zap.Error(err))
			}
		}
	})
}

func initScheduler(s *Server) {
	manager := task.NewManager(s.logger, s.sc, s.app)

	// 注册所有任务(业务层控制)
	if err := manager.RegisterTasks(); err != nil {
		s.logger.Error("failed to register tasks", zap.Error(err))
	}

	manager.Start()
}

// initStorageWithConfig 初始化存储目录（使用注入的配置）
func initStorageWithConfig(cfg *internalApp.AppConfig) error {
	dirs := []string{
		filepath.Dir(cfg.Log.File),
	}
	if cfg.Database.Type == "sqlite" && !strings.HasPrefix(cfg.Database.Path, "file:") {
		dirs = append(dirs, filepath.Dir(cfg.Database.Path))
	}
	if cfg.Storage.Type == "localfs" {
		dirs = append(dirs, cfg.Storage.SavePath)
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}

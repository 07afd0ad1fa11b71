// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/model"
	"github.com/learncss/Annotum/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// DatabaseConfig 数据库配置（DAO 层）
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Port            int
	Name            string
	Replicas        []string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
	// Tracing 是否注册 opentracing 插件
	Tracing bool
}

// Dao 数据访问对象
type Dao struct {
	Db     *gorm.DB
	ctx    context.Context
	config *DatabaseConfig
	logger *zap.Logger

	migrated sync.Map // key -> *sync.Once
}

// Option Dao 配置选项
type Option func(*Dao)

// WithConfig 设置数据库配置
func WithConfig(c *DatabaseConfig) Option {
	return func(d *Dao) { d.config = c }
}

// WithLogger 设置日志器
func WithLogger(l *zap.Logger) Option {
	return func(d *Dao) { d.logger = l }
}

// New 创建 Dao
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{Db: db, ctx: ctx, logger: zap.NewNop(), config: &DatabaseConfig{AutoMigrate: true}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// UseWithOnceFunc returns the session for a table group, running fn the
// first time key is seen. Repositories use it to migrate lazily.
func (d *Dao) UseWithOnceFunc(fn func(g *gorm.DB), key string) *gorm.DB {
	if d.config.AutoMigrate {
		v, _ := d.migrated.LoadOrStore(key, new(sync.Once))
		v.(*sync.Once).Do(func() { fn(d.Db) })
	}
	return d.Db
}

// migrate is the UseWithOnceFunc callback for a model key.
func (d *Dao) migrate(key string) *gorm.DB {
	return d.UseWithOnceFunc(func(g *gorm.DB) {
		if err := model.AutoMigrate(g, key); err != nil {
			d.logger.Error("auto migrate failed", zap.String("model", key), zap.Error(err))
		}
	}, key)
}

// Migrate runs every migration up front.
func (d *Dao) Migrate() error {
	for _, key := range []string{"User", "Article", "Comment", "ArticleRelation", "ArticleReference"} {
		if err := model.AutoMigrate(d.Db, key); err != nil {
			return errors.Wrapf(err, "migrate %s", key)
		}
		v, _ := d.migrated.LoadOrStore(key, new(sync.Once))
		v.(*sync.Once).Do(func() {})
	}
	return nil
}

// NewDBEngineWithConfig opens the database described by c, wires read
// replicas through dbresolver and registers the tracing plugin.
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	primary, err := dialector(c, "")
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(primary, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	if len(c.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(c.Replicas))
		for _, r := range c.Replicas {
			d, err := dialector(c, r)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, d)
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, errors.Wrap(err, "register replicas")
		}
		if lg != nil {
			lg.Info("database replicas registered", zap.Int("count", len(replicas)))
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && d > 0 {
		sqlDB.SetConnMaxIdleTime(d)
	}

	if c.Tracing {
		_ = db.Use(&gormTracing.OpentracingPlugin{})
	}

	return db, nil
}

// dialector builds the dialector for the primary (replica == "") or for a
// replica, which replaces the host (mysql/postgres) or path (sqlite).
func dialector(c DatabaseConfig, replica string) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		host := c.Host
		if replica != "" {
			host = replica
		}
		if c.Port > 0 && !strings.Contains(host, ":") {
			host = fmt.Sprintf("%s:%d", host, c.Port)
		}
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=True&loc=Local",
			c.UserName, c.Password, host, c.Name, c.Charset)), nil
	case "postgres":
		host := c.Host
		if replica != "" {
			host = replica
		}
		port := c.Port
		if port == 0 {
			port = 5432
		}
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
			host, c.UserName, c.Password, c.Name, port, c.SSLMode)), nil
	case "sqlite", "":
		path := c.Path
		if replica != "" {
			path = replica
		}
		if !strings.HasPrefix(path, "file:") && path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0754); err != nil {
				return nil, errors.Wrap(err, "create database dir")
			}
		}
		return sqlite.Open(path), nil
	}
	return nil, errors.Errorf("unsupported database type %q", c.Type)
}

// notFound maps gorm's not found error to the domain one.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

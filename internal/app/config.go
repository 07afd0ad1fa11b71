// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/learncss/Annotum/pkg/jats"
	"github.com/learncss/Annotum/pkg/storage"
	"github.com/learncss/Annotum/pkg/util"
	"github.com/learncss/Annotum/pkg/workerpool"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Site     SiteConfig     `yaml:"site"`
	Journal  JournalConfig  `yaml:"journal"`
	Export   ExportConfig   `yaml:"export"`
	User     UserConfig     `yaml:"user"`
	Security SecurityConfig `yaml:"security"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Storage  storage.Config `yaml:"storage"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	RunMode           string `yaml:"run-mode" default:"release"`
	HttpPort          string `yaml:"http-port" default:":9000"`
	ReadTimeout       int    `yaml:"read-timeout" default:"60"`  // 秒
	WriteTimeout      int    `yaml:"write-timeout" default:"60"` // 秒
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path     string `yaml:"path" default:"storage/database/annotum.sqlite3"`
	UserName string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	// Replicas read replicas: hosts for mysql/postgres, file paths for sqlite
	Replicas        []string `yaml:"replicas"`
	TablePrefix     string   `yaml:"table-prefix" default:"an_"`
	AutoMigrate     bool     `yaml:"auto-migrate" default:"true"`
	Charset         string   `yaml:"charset" default:"utf8mb4"`
	SSLMode         string   `yaml:"ssl-mode" default:"disable"`
	MaxIdleConns    int      `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns    int      `yaml:"max-open-conns" default:"100"`
	ConnMaxLifetime string   `yaml:"conn-max-lifetime" default:"30m"`
	ConnMaxIdleTime string   `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	DefaultPageSize       int `yaml:"default-page-size" default:"10"`
	MaxPageSize           int `yaml:"max-page-size" default:"100"`
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"` // 秒
	// IsReturnSussess 写操作成功时是否返回提示
	IsReturnSussess bool `yaml:"is-return-sussess" default:"false"`
}

// SiteConfig decides how article permalinks look.
type SiteConfig struct {
	// BaseURL 站点根地址，不含结尾斜杠
	BaseURL string `yaml:"base-url" default:"http://localhost:9000"`
	// ArticleBase 美化链接中文章路径前缀
	ArticleBase string `yaml:"article-base" default:"articles"`
	// PrettyPermalinks 是否使用美化链接
	PrettyPermalinks bool `yaml:"pretty-permalinks" default:"true"`
	// WorkflowEnabled 启用审稿流程时才输出关联文章
	WorkflowEnabled bool `yaml:"workflow-enabled" default:"true"`
}

// JournalConfig 期刊信息，每次渲染时按值快照
type JournalConfig struct {
	Title             string `yaml:"title"`
	ID                string `yaml:"id"`
	IDType            string `yaml:"id-type"`
	ISSN              string `yaml:"issn"`
	AbbrevTitle       string `yaml:"abbrev-title"`
	PublisherName     string `yaml:"publisher-name"`
	PublisherLocation string `yaml:"publisher-location"`
}

// Snapshot copies the journal settings into the render model.
func (j JournalConfig) Snapshot() jats.Journal {
	return jats.Journal{
		Title:             j.Title,
		ID:                j.ID,
		IDType:            j.IDType,
		ISSN:              j.ISSN,
		AbbrevTitle:       j.AbbrevTitle,
		PublisherName:     j.PublisherName,
		PublisherLocation: j.PublisherLocation,
	}
}

// ExportConfig XML 导出配置
type ExportConfig struct {
	// LegacyAffiliations 复现旧版 aff 输出（所有 aff 使用最后一位作者的单位）
	LegacyAffiliations bool `yaml:"legacy-affiliations" default:"false"`
	// RateLimit 下载接口每秒令牌数，0 表示不限流
	RateLimit int64 `yaml:"rate-limit" default:"20"`
	// RateBurst 令牌桶容量
	RateBurst int64 `yaml:"rate-burst" default:"40"`
}

// UserConfig 用户配置
type UserConfig struct {
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
	// AdminUID 管理员 UID，可预览任意文章；0 表示没有管理员
	AdminUID int64 `yaml:"admin-uid" default:"0"`
	// CommentModeration 匿名评论是否需要审核
	CommentModeration bool `yaml:"comment-moderation" default:"false"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"annotum-Auth-Token"`
	// TokenExpiry 支持 7d / 24h / 30m
	TokenExpiry string `yaml:"token-expiry" default:"30d"`
}

// ArchiveConfig 定时归档配置
type ArchiveConfig struct {
	Enabled    bool   `yaml:"enabled" default:"false"`
	Cron       string `yaml:"cron" default:"@every 24h"`
	StartupRun bool   `yaml:"startup-run" default:"false"`
	// Prefix 归档对象键前缀
	Prefix     string `yaml:"prefix" default:"jats"`
	MaxWorkers int    `yaml:"max-workers" default:"8"`
	QueueSize  int    `yaml:"queue-size" default:"256"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Header  string `yaml:"header" default:"X-Trace-ID"`
	// Jaeger 为空时不上报 span
	JaegerAgent string  `yaml:"jaeger-agent"`
	ServiceName string  `yaml:"service-name" default:"annotum"`
	SampleRate  float64 `yaml:"sample-rate" default:"1"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	c, err := ParseConfig(file)
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath
	return c, realpath, nil
}

// ParseConfig decodes YAML on top of the defaults. Defaults are applied
// once, before decoding, so an explicit `false` or `0` in the file sticks.
func ParseConfig(data []byte) (*AppConfig, error) {
	c := new(AppConfig)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}
	return c, nil
}

// GetWorkerPoolConfig 获取归档 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()
	if c.Archive.MaxWorkers > 0 {
		cfg.MaxWorkers = c.Archive.MaxWorkers
	}
	if c.Archive.QueueSize > 0 {
		cfg.QueueSize = c.Archive.QueueSize
	}
	return cfg
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil {
		return expiry
	}
	return 30 * 24 * time.Hour
}

// GetContextTimeout 请求上下文超时
func (c *AppConfig) GetContextTimeout() time.Duration {
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

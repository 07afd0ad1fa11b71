// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"time"

	"github.com/learncss/Annotum/pkg/jats"
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User    UserServiceConfig
	Site    SiteServiceConfig
	Export  ExportServiceConfig
	Archive ArchiveServiceConfig
	// Journal is copied into every Document, so a render never observes a
	// half-updated journal.
	Journal jats.Journal
}

// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool
	AdminUID         int64 // 0 表示没有管理员
	// CommentModeration 匿名评论需审核后才会出现在导出文档中
	CommentModeration bool
}

// SiteServiceConfig 站点链接配置
type SiteServiceConfig struct {
	BaseURL          string
	ArticleBase      string
	PrettyPermalinks bool
	WorkflowEnabled  bool
}

// ExportServiceConfig 导出配置
type ExportServiceConfig struct {
	LegacyAffiliations bool
	// Now overrides the clock used for the copyright year
	Now func() time.Time
}

// ArchiveServiceConfig 归档配置
type ArchiveServiceConfig struct {
	Prefix      string
	StorageType string
}

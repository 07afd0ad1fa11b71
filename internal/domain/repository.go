// Package domain 定义领域模型和接口
package domain

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// ArticleRepository 文章仓储接口
type ArticleRepository interface {
	// GetByID 根据ID获取文章
	GetByID(ctx context.Context, id int64) (*Article, error)

	// GetBySlug 根据别名获取文章
	GetBySlug(ctx context.Context, slug string) (*Article, error)

	// GetAutosave 获取最新的自动保存版本
	GetAutosave(ctx context.Context, articleID int64) (*ArticleRevision, error)

	// List 分页获取文章列表
	List(ctx context.Context, opt ArticleListOptions) ([]*Article, int64, error)

	// ListPublished 获取全部已发布文章 ID
	ListPublished(ctx context.Context) ([]int64, error)

	// Create 创建文章
	Create(ctx context.Context, article *Article) (*Article, error)

	// Update 更新文章
	Update(ctx context.Context, article *Article) (*Article, error)

	// Delete 删除文章及其附属数据
	Delete(ctx context.Context, id int64) error

	// SaveAutosave 保存自动保存版本
	SaveAutosave(ctx context.Context, rev *ArticleRevision) (*ArticleRevision, error)
}

// CommentRepository 评论仓储接口
type CommentRepository interface {
	// ListApprovedByArticle 已审核评论，按时间正序
	ListApprovedByArticle(ctx context.Context, articleID int64) ([]*Comment, error)

	// Create 创建评论
	Create(ctx context.Context, comment *Comment) (*Comment, error)
}

// RelationRepository 文章关联（上游文章）仓储接口
type RelationRepository interface {
	// ListAncestors 按保存顺序返回上游文章 ID
	ListAncestors(ctx context.Context, articleID int64) ([]int64, error)

	// Replace 覆盖文章的上游文章列表
	Replace(ctx context.Context, articleID int64, ancestors []int64) error
}

// ReferenceRepository 参考文献仓储接口
type ReferenceRepository interface {
	// GetMarkup 获取已渲染的参考文献片段，没有时返回空字符串
	GetMarkup(ctx context.Context, articleID int64) (string, error)

	// Save 保存参考文献片段
	Save(ctx context.Context, articleID int64, markup string) error
}

// UserRepository 用户仓储接口
type UserRepository interface {
	GetByUID(ctx context.Context, uid int64) (*User, error)
	GetByUIDs(ctx context.Context, uids []int64) (map[int64]*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

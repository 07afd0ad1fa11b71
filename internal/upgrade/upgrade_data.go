package upgrade

import (
	"context"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/model"

	"gorm.io/gorm"
)

// CommentApproveMigrate approves comments written by registered users.
// Moderation only ever applied to anonymous comments.
type CommentApproveMigrate struct{}

func (m *CommentApproveMigrate) Version() string { return "0.0.1" }

func (m *CommentApproveMigrate) Description() string {
	return "Approve comments left by registered users"
}

func (m *CommentApproveMigrate) Up(db *gorm.DB, ctx context.Context) error {
	return db.WithContext(ctx).Model(&model.Comment{}).
		Where("uid > 0 AND approved = ?", false).
		Update("approved", true).Error
}

// PublishedAtMigrate fills published_at for published rows imported without
// one, so their pub-date elements are not left out.
type PublishedAtMigrate struct{}

func (m *PublishedAtMigrate) Version() string { return "0.1.0" }

func (m *PublishedAtMigrate) Description() string {
	return "Backfill published_at of published articles"
}

func (m *PublishedAtMigrate) Up(db *gorm.DB, ctx context.Context) error {
	return db.WithContext(ctx).Model(&model.Article{}).
		Where("status = ? AND published_at IS NULL", string(domain.ArticleStatusPublished)).
		UpdateColumn("published_at", gorm.Expr("COALESCE(updated_at, created_at)")).Error
}

package dao

import (
	"context"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/model"

	"gorm.io/gorm"
)

// commentRepository 实现 domain.CommentRepository 接口
type commentRepository struct {
	dao *Dao
}

// NewCommentRepository 创建 CommentRepository 实例
func NewCommentRepository(dao *Dao) domain.CommentRepository {
	return &commentRepository{dao: dao}
}

func (r *commentRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.migrate("Comment").WithContext(ctx)
}

func (r *commentRepository) toDomain(m *model.Comment) *domain.Comment {
	return &domain.Comment{
		ID:          m.ID,
		ArticleID:   m.ArticleID,
		UID:         m.UID,
		AuthorName:  m.AuthorName,
		AuthorEmail: m.AuthorEmail,
		AuthorURL:   m.AuthorURL,
		Content:     m.Content,
		Approved:    m.Approved,
		CreatedAt:   m.CreatedAt,
	}
}

// ListApprovedByArticle 已审核评论，按时间正序
func (r *commentRepository) ListApprovedByArticle(ctx context.Context, articleID int64) ([]*domain.Comment, error) {
	var ms []*model.Comment
	err := r.db(ctx).
		Where("article_id = ? AND approved = ?", articleID, true).
		Order("created_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Comment, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Create 创建评论
func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	m := &model.Comment{
		ArticleID:   c.ArticleID,
		UID:         c.UID,
		AuthorName:  c.AuthorName,
		AuthorEmail: c.AuthorEmail,
		AuthorURL:   c.AuthorURL,
		Content:     c.Content,
		Approved:    c.Approved,
	}
	if !c.CreatedAt.IsZero() {
		m.CreatedAt = c.CreatedAt
	}
	if err := r.db(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

var _ domain.CommentRepository = (*commentRepository)(nil)

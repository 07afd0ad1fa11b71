package dao

import (
	"context"
	"time"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// articleRepository 实现 domain.ArticleRepository 接口
type articleRepository struct {
	dao *Dao
}

// NewArticleRepository 创建 ArticleRepository 实例
func NewArticleRepository(dao *Dao) domain.ArticleRepository {
	return &articleRepository{dao: dao}
}

func (r *articleRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.migrate("Article").WithContext(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *articleRepository) toDomain(m *model.Article) *domain.Article {
	if m == nil {
		return nil
	}
	a := &domain.Article{
		ID:        m.ID,
		UID:       m.UID,
		Slug:      m.Slug,
		Title:     m.Title,
		Subtitle:  m.Subtitle,
		Excerpt:   m.Excerpt,
		Content:   m.Content,
		Status:    domain.ArticleStatus(m.Status),
		Category:  m.Category,
		Tags:      m.Tags.V,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.PublishedAt != nil {
		a.PublishedAt = *m.PublishedAt
	}
	_ = copier.Copy(&a.Meta, &m.Meta.V)
	_ = copier.Copy(&a.Authors, &m.Authors.V)
	return a
}

// toModel 将领域模型转换为数据库模型
func (r *articleRepository) toModel(a *domain.Article) *model.Article {
	m := &model.Article{
		ID:       a.ID,
		UID:      a.UID,
		Slug:     a.Slug,
		Title:    a.Title,
		Subtitle: a.Subtitle,
		Excerpt:  a.Excerpt,
		Content:  a.Content,
		Status:   string(a.Status),
		Category: a.Category,
		Tags:     model.NewJSON(a.Tags),
	}
	if !a.PublishedAt.IsZero() {
		t := a.PublishedAt
		m.PublishedAt = &t
	}
	var meta model.Meta
	_ = copier.Copy(&meta, &a.Meta)
	m.Meta = model.NewJSON(meta)
	var authors []model.Author
	_ = copier.Copy(&authors, &a.Authors)
	m.Authors = model.NewJSON(authors)
	return m
}

// GetByID 根据ID获取文章
func (r *articleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var m model.Article
	if err := r.db(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toDomain(&m), nil
}

// GetBySlug 根据别名获取文章
func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var m model.Article
	if err := r.db(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toDomain(&m), nil
}

// GetAutosave 获取最新的自动保存版本
func (r *articleRepository) GetAutosave(ctx context.Context, articleID int64) (*domain.ArticleRevision, error) {
	var m model.ArticleRevision
	err := r.db(ctx).Where("article_id = ?", articleID).Order("id DESC").First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &domain.ArticleRevision{
		ID:        m.ID,
		ArticleID: m.ArticleID,
		UID:       m.UID,
		Title:     m.Title,
		Subtitle:  m.Subtitle,
		Excerpt:   m.Excerpt,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}, nil
}

// List 分页获取文章列表
func (r *articleRepository) List(ctx context.Context, opt domain.ArticleListOptions) ([]*domain.Article, int64, error) {
	q := r.db(ctx).Model(&model.Article{})
	if opt.UID > 0 {
		q = q.Where("uid = ?", opt.UID)
	}
	if opt.Status != "" {
		q = q.Where("status = ?", string(opt.Status))
	}
	if opt.Keyword != "" {
		q = q.Where("title LIKE ?", "%"+opt.Keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if opt.PageSize > 0 {
		page := opt.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * opt.PageSize).Limit(opt.PageSize)
	}

	var ms []*model.Article
	if err := q.Order("id DESC").Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Article, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, total, nil
}

// ListPublished 获取全部已发布文章 ID
func (r *articleRepository) ListPublished(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db(ctx).Model(&model.Article{}).
		Where("status = ?", string(domain.ArticleStatusPublished)).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// Create 创建文章
func (r *articleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	m := r.toModel(a)
	m.ID = 0
	if err := r.db(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新文章
func (r *articleRepository) Update(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	m := r.toModel(a)
	m.UpdatedAt = time.Now()
	err := r.db(ctx).Model(&model.Article{}).Where("id = ?", a.ID).Select("*").Omit("id", "created_at").Updates(m).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, a.ID)
}

// Delete 删除文章及其附属数据
func (r *articleRepository) Delete(ctx context.Context, id int64) error {
	r.dao.migrate("Comment")
	r.dao.migrate("ArticleRelation")
	r.dao.migrate("ArticleReference")
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.ArticleRevision{}, &model.Comment{}, &model.ArticleRelation{}, &model.ArticleReference{}} {
			if err := tx.Where("article_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&model.Article{}).Error
	})
}

// SaveAutosave 保存自动保存版本
func (r *articleRepository) SaveAutosave(ctx context.Context, rev *domain.ArticleRevision) (*domain.ArticleRevision, error) {
	m := &model.ArticleRevision{
		ArticleID: rev.ArticleID,
		UID:       rev.UID,
		Title:     rev.Title,
		Subtitle:  rev.Subtitle,
		Excerpt:   rev.Excerpt,
		Content:   rev.Content,
	}
	if err := r.db(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	out := *rev
	out.ID = m.ID
	out.CreatedAt = m.CreatedAt
	return &out, nil
}

var _ domain.ArticleRepository = (*articleRepository)(nil)

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/dto"
	"github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	"github.com/learncss/Annotum/pkg/util"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxSlugAttempts bounds the "-2", "-3" … suffix search for generated slugs.
const maxSlugAttempts = 50

// ArticleService 文章业务服务接口
type ArticleService interface {
	// Save 创建 (ID == 0) 或更新文章
	Save(ctx context.Context, uid int64, params *dto.ArticleSaveRequest) (*dto.ArticleDTO, error)

	// Get 获取文章，未发布的文章只对作者和管理员可见
	Get(ctx context.Context, uid int64, params *dto.ArticleGetRequest) (*dto.ArticleDTO, error)

	// List 分页获取文章列表
	List(ctx context.Context, uid int64, params *dto.ArticleListRequest, pager *app.Pager) ([]*dto.ArticleDTO, int64, error)

	// Delete 删除文章
	Delete(ctx context.Context, uid int64, id int64) error

	// Autosave 保存自动保存版本
	Autosave(ctx context.Context, uid int64, params *dto.ArticleAutosaveRequest) (*dto.ArticleRevisionDTO, error)
}

type articleService struct {
	articleRepo   domain.ArticleRepository
	relationRepo  domain.RelationRepository
	referenceRepo domain.ReferenceRepository
	userRepo      domain.UserRepository
	logger        *zap.Logger
	config        *ServiceConfig
}

// NewArticleService 创建 ArticleService 实例
func NewArticleService(
	articleRepo domain.ArticleRepository,
	relationRepo domain.RelationRepository,
	referenceRepo domain.ReferenceRepository,
	userRepo domain.UserRepository,
	logger *zap.Logger,
	config *ServiceConfig,
) ArticleService {
	return &articleService{
		articleRepo:   articleRepo,
		relationRepo:  relationRepo,
		referenceRepo: referenceRepo,
		userRepo:      userRepo,
		logger:        logger,
		config:        config,
	}
}

// canEdit reports whether uid may edit or preview a.
func canEdit(cfg *ServiceConfig, a *domain.Article, uid int64) bool {
	if uid == 0 {
		return false
	}
	return a.IsOwnedBy(uid) || (cfg != nil && cfg.User.AdminUID != 0 && cfg.User.AdminUID == uid)
}

func (s *articleService) load(ctx context.Context, id int64) (*domain.Article, error) {
	a, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorArticleNotFound
		}
		return nil, errors.Wrap(err, "get article")
	}
	return a, nil
}

// Save 创建或更新文章
func (s *articleService) Save(ctx context.Context, uid int64, params *dto.ArticleSaveRequest) (*dto.ArticleDTO, error) {
	var article *domain.Article
	if params.ID > 0 {
		existing, err := s.load(ctx, params.ID)
		if err != nil {
			return nil, err
		}
		if !canEdit(s.config, existing, uid) {
			return nil, code.ErrorPermissionDenied
		}
		article = existing
	} else {
		article = &domain.Article{UID: uid, Status: domain.ArticleStatusDraft}
	}

	article.Title = params.Title
	article.Subtitle = params.Subtitle
	article.Excerpt = params.Excerpt
	article.Content = params.Content
	article.Category = params.Category
	article.Tags = params.Tags
	if params.Status != "" {
		article.Status = domain.ArticleStatus(params.Status)
	}
	article.Meta = domain.ArticleMeta{}
	_ = copier.Copy(&article.Meta, &params.Meta)

	if len(params.Authors) > 0 {
		article.Authors = nil
		_ = copier.Copy(&article.Authors, &params.Authors)
	} else if len(article.Authors) == 0 {
		if owner, err := s.userRepo.GetByUID(ctx, article.UID); err == nil {
			article.Authors = []domain.AuthorSnapshot{authorFromUser(owner)}
		}
	}

	if params.PublishedAt != nil {
		article.PublishedAt = *params.PublishedAt
	}
	if article.IsPublished() && article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now()
	}

	slug, err := s.resolveSlug(ctx, article.ID, params.Slug, params.Title)
	if err != nil {
		return nil, err
	}
	article.Slug = slug

	var saved *domain.Article
	if article.ID == 0 {
		saved, err = s.articleRepo.Create(ctx, article)
	} else {
		saved, err = s.articleRepo.Update(ctx, article)
	}
	if err != nil {
		s.logger.Error("articleService.Save", zap.Int64("uid", uid), zap.Error(err))
		return nil, code.ErrorArticleSaveFailed.WithDetails(err.Error())
	}

	ancestors := make([]int64, 0, len(params.Ancestors))
	for _, id := range params.Ancestors {
		if id > 0 && id != saved.ID {
			ancestors = append(ancestors, id)
		}
	}
	if err := s.relationRepo.Replace(ctx, saved.ID, ancestors); err != nil {
		return nil, errors.Wrap(err, "save related articles")
	}
	if err := s.referenceRepo.Save(ctx, saved.ID, params.References); err != nil {
		return nil, errors.Wrap(err, "save references")
	}

	return articleToDTO(saved, true), nil
}

// resolveSlug keeps an explicit slug (rejecting one owned by another
// article) or derives one from the title with a numeric suffix.
func (s *articleService) resolveSlug(ctx context.Context, id int64, explicit, title string) (string, error) {
	taken := func(slug string) (bool, error) {
		other, err := s.articleRepo.GetBySlug(ctx, slug)
		if err != nil {
			if isNotFound(err) {
				return false, nil
			}
			return false, errors.Wrap(err, "slug lookup")
		}
		return other.ID != id, nil
	}

	if explicit != "" {
		slug := util.Slugify(explicit)
		if slug == "" {
			return "", code.ErrorInvalidParams.WithDetails("slug")
		}
		used, err := taken(slug)
		if err != nil {
			return "", err
		}
		if used {
			return "", code.ErrorArticleSlugExists
		}
		return slug, nil
	}

	base := util.Slugify(title)
	if base == "" {
		base = "article"
	}
	for i := 1; i <= maxSlugAttempts; i++ {
		slug := base
		if i > 1 {
			slug = fmt.Sprintf("%s-%d", base, i)
		}
		used, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !used {
			return slug, nil
		}
	}
	return "", code.ErrorArticleSlugExists
}

func authorFromUser(u *domain.User) domain.AuthorSnapshot {
	surname := u.LastName
	if surname == "" {
		surname = u.Name()
	}
	return domain.AuthorSnapshot{
		UID:         u.UID,
		Surname:     surname,
		GivenNames:  u.FirstName,
		Prefix:      u.Prefix,
		Suffix:      u.Suffix,
		Affiliation: u.Affiliation,
		Institution: u.Institution,
		Bio:         u.Bio,
		Link:        u.Link,
	}
}

// Get 获取文章
func (s *articleService) Get(ctx context.Context, uid int64, params *dto.ArticleGetRequest) (*dto.ArticleDTO, error) {
	var (
		a   *domain.Article
		err error
	)
	switch {
	case params.ID > 0:
		a, err = s.load(ctx, params.ID)
	case params.Slug != "":
		a, err = s.articleRepo.GetBySlug(ctx, params.Slug)
		if isNotFound(err) {
			err = code.ErrorArticleNotFound
		}
	default:
		return nil, code.ErrorInvalidParams.WithDetails("id or slug required")
	}
	if err != nil {
		return nil, err
	}
	if !a.IsPublished() && !canEdit(s.config, a, uid) {
		return nil, code.ErrorArticleNotFound
	}
	return articleToDTO(a, true), nil
}

// List 分页获取文章列表；非本人列表只包含已发布文章
func (s *articleService) List(ctx context.Context, uid int64, params *dto.ArticleListRequest, pager *app.Pager) ([]*dto.ArticleDTO, int64, error) {
	opt := domain.ArticleListOptions{
		Status:   domain.ArticleStatus(params.Status),
		Keyword:  params.Keyword,
		Page:     pager.Page,
		PageSize: pager.PageSize,
	}
	if params.Mine && uid > 0 {
		opt.UID = uid
	} else {
		opt.Status = domain.ArticleStatusPublished
	}

	list, total, err := s.articleRepo.List(ctx, opt)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list articles")
	}
	out := make([]*dto.ArticleDTO, 0, len(list))
	for _, a := range list {
		out = append(out, articleToDTO(a, false))
	}
	return out, total, nil
}

// Delete 删除文章
func (s *articleService) Delete(ctx context.Context, uid int64, id int64) error {
	a, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(s.config, a, uid) {
		return code.ErrorPermissionDenied
	}
	return errors.Wrap(s.articleRepo.Delete(ctx, id), "delete article")
}

// Autosave 保存自动保存版本
func (s *articleService) Autosave(ctx context.Context, uid int64, params *dto.ArticleAutosaveRequest) (*dto.ArticleRevisionDTO, error) {
	a, err := s.load(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if !canEdit(s.config, a, uid) {
		return nil, code.ErrorPermissionDenied
	}
	rev, err := s.articleRepo.SaveAutosave(ctx, &domain.ArticleRevision{
		ArticleID: a.ID,
		UID:       uid,
		Title:     params.Title,
		Subtitle:  params.Subtitle,
		Excerpt:   params.Excerpt,
		Content:   params.Content,
	})
	if err != nil {
		return nil, code.ErrorArticleSaveFailed.WithDetails(err.Error())
	}
	out := &dto.ArticleRevisionDTO{}
	_ = copier.Copy(out, rev)
	return out, nil
}

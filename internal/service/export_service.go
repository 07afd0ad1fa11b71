package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/dto"
	"github.com/learncss/Annotum/pkg/code"
	"github.com/learncss/Annotum/pkg/jats"
	"github.com/learncss/Annotum/pkg/util"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// export modes, used as metric and log labels
const (
	ModePublished = "published"
	ModePreview   = "preview"
	ModeAutosave  = "autosave"
)

// sharedRenderTimeout bounds a deduplicated published render.
const sharedRenderTimeout = 2 * time.Minute

// ExportService XML 导出服务接口
type ExportService interface {
	// Export resolves the requested article for uid (0 = anonymous) and
	// renders it. Previews require the owner or the admin.
	Export(ctx context.Context, req *dto.ExportRequest, uid int64) (*dto.ExportResult, error)

	// Render renders a published article.
	Render(ctx context.Context, articleID int64) (*dto.ExportResult, error)

	// DownloadURL builds the XML download link for an article.
	DownloadURL(ctx context.Context, articleID int64, preview, autosave bool) (string, error)
}

type exportService struct {
	articleRepo   domain.ArticleRepository
	commentRepo   domain.CommentRepository
	relationRepo  domain.RelationRepository
	referenceRepo domain.ReferenceRepository
	userRepo      domain.UserRepository
	logger        *zap.Logger
	config        *ServiceConfig
	sf            singleflight.Group
}

// NewExportService 创建 ExportService 实例
func NewExportService(
	articleRepo domain.ArticleRepository,
	commentRepo domain.CommentRepository,
	relationRepo domain.RelationRepository,
	referenceRepo domain.ReferenceRepository,
	userRepo domain.UserRepository,
	logger *zap.Logger,
	config *ServiceConfig,
) ExportService {
	return &exportService{
		articleRepo:   articleRepo,
		commentRepo:   commentRepo,
		relationRepo:  relationRepo,
		referenceRepo: referenceRepo,
		userRepo:      userRepo,
		logger:        logger,
		config:        config,
	}
}

func (s *exportService) resolve(ctx context.Context, id int64, slug string) (*domain.Article, error) {
	var (
		a   *domain.Article
		err error
	)
	switch {
	case slug != "":
		a, err = s.articleRepo.GetBySlug(ctx, slug)
	case id > 0:
		a, err = s.articleRepo.GetByID(ctx, id)
	default:
		return nil, code.ErrorArticleNotFound
	}
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorArticleNotFound
		}
		return nil, errors.Wrap(err, "resolve article")
	}
	return a, nil
}

// Export 导出文章
func (s *exportService) Export(ctx context.Context, req *dto.ExportRequest, uid int64) (*dto.ExportResult, error) {
	article, err := s.resolve(ctx, req.ID, req.Slug)
	if err != nil {
		exportTotal.WithLabelValues(ModePublished, "not_found").Inc()
		return nil, err
	}

	if !req.Preview {
		if !article.IsPublished() {
			exportTotal.WithLabelValues(ModePublished, "not_published").Inc()
			return nil, code.ErrorArticleNotPublished
		}
		// 共享渲染不跟随首个调用方取消，每个调用方只等待自己的 ctx
		ch := s.sf.DoChan(strconv.FormatInt(article.ID, 10), func() (interface{}, error) {
			rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedRenderTimeout)
			defer cancel()
			return s.render(rctx, article, ModePublished)
		})
		select {
		case r := <-ch:
			if r.Err != nil {
				return nil, r.Err
			}
			return r.Val.(*dto.ExportResult), nil
		case <-ctx.Done():
			exportTotal.WithLabelValues(ModePublished, "canceled").Inc()
			return nil, ctx.Err()
		}
	}

	mode := ModePreview
	if uid == 0 {
		exportTotal.WithLabelValues(mode, "unauthorized").Inc()
		return nil, code.ErrorNotUserAuthToken
	}
	if !canEdit(s.config, article, uid) {
		exportTotal.WithLabelValues(mode, "forbidden").Inc()
		return nil, code.ErrorPermissionDenied
	}

	if req.Autosave {
		rev, err := s.articleRepo.GetAutosave(ctx, article.ID)
		switch {
		case err == nil:
			mode = ModeAutosave
			overlay := *article
			overlay.Title = rev.Title
			overlay.Subtitle = rev.Subtitle
			overlay.Excerpt = rev.Excerpt
			overlay.Content = rev.Content
			article = &overlay
		case isNotFound(err):
			// no autosave yet: preview the saved article
		default:
			return nil, errors.Wrap(err, "get autosave")
		}
	}

	return s.render(ctx, article, mode)
}

// Render 渲染已发布文章
func (s *exportService) Render(ctx context.Context, articleID int64) (*dto.ExportResult, error) {
	return s.Export(ctx, &dto.ExportRequest{ID: articleID}, 0)
}

func (s *exportService) render(ctx context.Context, article *domain.Article, mode string) (*dto.ExportResult, error) {
	start := time.Now()

	doc, err := s.document(ctx, article)
	if err != nil {
		exportTotal.WithLabelValues(mode, "error").Inc()
		s.logger.Error("exportService.render",
			zap.Int64("articleId", article.ID),
			zap.String("mode", mode),
			zap.Error(err))
		return nil, code.ErrorArticleExportFailed.WithDetails(err.Error())
	}

	opts := []jats.Option{jats.WithLegacyAffiliations(s.config.Export.LegacyAffiliations)}
	if s.config.Export.Now != nil {
		opts = append(opts, jats.WithClock(s.config.Export.Now))
	}
	body := jats.RenderBytes(doc, opts...)

	exportDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	exportSize.Observe(float64(len(body)))
	exportTotal.WithLabelValues(mode, "ok").Inc()

	s.logger.Debug("article exported",
		zap.Int64("articleId", article.ID),
		zap.String("mode", mode),
		zap.Int("size", len(body)),
		zap.Duration("duration", time.Since(start)))

	return &dto.ExportResult{Filename: Filename(article), Body: body}, nil
}

// document resolves the collaborators concurrently and assembles the
// render input. The journal is copied by value.
func (s *exportService) document(ctx context.Context, article *domain.Article) (*jats.Document, error) {
	art, err := articleToJATS(article)
	if err != nil {
		s.logger.Error("article mapping failed", zap.Int64("articleId", article.ID), zap.Error(err))
		return nil, err
	}
	doc := &jats.Document{
		Journal: s.config.Journal,
		Article: art,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		comments, err := s.comments(gctx, article.ID)
		doc.Comments = comments
		return err
	})

	if s.config.Site.WorkflowEnabled {
		g.Go(func() error {
			related, err := s.related(gctx, article.ID)
			doc.Related = related
			return err
		})
	}

	g.Go(func() error {
		markup, err := s.referenceRepo.GetMarkup(gctx, article.ID)
		if err != nil {
			return errors.Wrap(err, "references")
		}
		doc.References = markup
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *exportService) comments(ctx context.Context, articleID int64) ([]jats.Comment, error) {
	list, err := s.commentRepo.ListApprovedByArticle(ctx, articleID)
	if err != nil {
		return nil, errors.Wrap(err, "comments")
	}
	if len(list) == 0 {
		return nil, nil
	}

	uids := make([]int64, 0, len(list))
	seen := make(map[int64]bool)
	for _, c := range list {
		if c.UID != 0 && !seen[c.UID] {
			seen[c.UID] = true
			uids = append(uids, c.UID)
		}
	}
	users, err := s.userRepo.GetByUIDs(ctx, uids)
	if err != nil {
		return nil, errors.Wrap(err, "comment authors")
	}

	out := make([]jats.Comment, 0, len(list))
	for _, c := range list {
		out = append(out, commentToJATS(c, users))
	}
	return out, nil
}

// related resolves ancestor articles in stored order. Missing ones are
// dropped; unpublished ones are kept and skipped by the renderer.
func (s *exportService) related(ctx context.Context, articleID int64) ([]jats.RelatedArticle, error) {
	ids, err := s.relationRepo.ListAncestors(ctx, articleID)
	if err != nil {
		return nil, errors.Wrap(err, "related articles")
	}
	out := make([]jats.RelatedArticle, 0, len(ids))
	for _, id := range ids {
		a, err := s.articleRepo.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, errors.Wrap(err, "related article")
		}
		out = append(out, jats.RelatedArticle{
			ID:        a.ID,
			Permalink: s.permalink(a),
			DOI:       a.Meta.DOI,
			Published: a.IsPublished(),
		})
	}
	return out, nil
}

// pretty reports whether a gets a pretty permalink. Articles that were never
// published only have the plain ?p= form.
func (s *exportService) pretty(a *domain.Article) bool {
	return s.config.Site.PrettyPermalinks && a.IsPublished()
}

// permalink 文章固定链接
func (s *exportService) permalink(a *domain.Article) string {
	base := strings.TrimRight(s.config.Site.BaseURL, "/")
	if s.pretty(a) {
		return fmt.Sprintf("%s/%s/%s/", base, strings.Trim(s.config.Site.ArticleBase, "/"), url.PathEscape(a.Slug))
	}
	return fmt.Sprintf("%s/?p=%d", base, a.ID)
}

// DownloadURL 生成 XML 下载链接
func (s *exportService) DownloadURL(ctx context.Context, articleID int64, preview, autosave bool) (string, error) {
	a, err := s.resolve(ctx, articleID, "")
	if err != nil {
		return "", err
	}
	link := s.permalink(a)

	if s.pretty(a) {
		link += "xml/"
		if preview {
			link += "preview/"
			if autosave {
				link += "?autosave=true"
			}
		}
		return link, nil
	}

	link += "&xml=true"
	if preview {
		link += "&preview=true"
		if autosave {
			link += "&autosave=true"
		}
	}
	return link, nil
}

// Filename is the attachment name: the slugified title, falling back to the
// article id when the title has no usable characters.
func Filename(a *domain.Article) string {
	name := util.Slugify(a.Title)
	if name == "" {
		name = fmt.Sprintf("article-%d", a.ID)
	}
	return name + ".xml"
}

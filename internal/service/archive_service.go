package service

import (
	"context"
	"path"
	"sort"
	"sync"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/dto"
	"github.com/learncss/Annotum/pkg/code"
	"github.com/learncss/Annotum/pkg/storage"
	"github.com/learncss/Annotum/pkg/workerpool"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ArchiveService 将已发布文章的 XML 归档到对象存储
type ArchiveService interface {
	// ArchiveAll renders every published article and stores it under
	// <prefix>/<slug>.xml. Per-article failures are counted, not returned.
	ArchiveAll(ctx context.Context) (*dto.ArchiveResultDTO, error)

	// ArchiveOne stores a single published article and returns its key.
	ArchiveOne(ctx context.Context, articleID int64) (string, error)
}

type archiveService struct {
	articleRepo domain.ArticleRepository
	export      ExportService
	storage     storage.Storager
	pool        *workerpool.Pool
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewArchiveService 创建 ArchiveService 实例。store 为 nil 时归档不可用
func NewArchiveService(
	articleRepo domain.ArticleRepository,
	export ExportService,
	store storage.Storager,
	pool *workerpool.Pool,
	logger *zap.Logger,
	config *ServiceConfig,
) ArchiveService {
	return &archiveService{
		articleRepo: articleRepo,
		export:      export,
		storage:     store,
		pool:        pool,
		logger:      logger,
		config:      config,
	}
}

// ObjectKey 归档对象键
func ObjectKey(prefix, slug string) string {
	return path.Join(prefix, slug+".xml")
}

func (s *archiveService) ArchiveOne(ctx context.Context, articleID int64) (string, error) {
	if s.storage == nil {
		return "", code.ErrorArchiveStorageUnavailable
	}
	a, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		if isNotFound(err) {
			return "", code.ErrorArticleNotFound
		}
		return "", errors.Wrap(err, "get article")
	}
	if !a.IsPublished() {
		return "", code.ErrorArticleNotPublished
	}

	res, err := s.export.Render(ctx, a.ID)
	if err != nil {
		archiveTotal.WithLabelValues("error").Inc()
		return "", err
	}

	key, err := s.storage.SendContent(ctx, ObjectKey(s.config.Archive.Prefix, a.Slug), res.Body, "application/xml")
	if err != nil {
		archiveTotal.WithLabelValues("error").Inc()
		return "", errors.Wrapf(err, "store %s", a.Slug)
	}
	archiveTotal.WithLabelValues("ok").Inc()
	return key, nil
}

func (s *archiveService) ArchiveAll(ctx context.Context) (*dto.ArchiveResultDTO, error) {
	if s.storage == nil {
		return nil, code.ErrorArchiveStorageUnavailable
	}
	ids, err := s.articleRepo.ListPublished(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list published articles")
	}

	result := &dto.ArchiveResultDTO{
		Total:   len(ids),
		Keys:    []string{},
		Storage: s.config.Archive.StorageType,
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			err := s.pool.Submit(gctx, func(ctx context.Context) error {
				key, err := s.ArchiveOne(ctx, id)
				if err != nil {
					return err
				}
				mu.Lock()
				result.Stored++
				result.Keys = append(result.Keys, key)
				mu.Unlock()
				return nil
			})
			if err != nil {
				s.logger.Warn("archive article failed", zap.Int64("articleId", id), zap.Error(err))
				mu.Lock()
				result.Failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(result.Keys)
	s.logger.Info("archive finished",
		zap.Int("total", result.Total),
		zap.Int("stored", result.Stored),
		zap.Int("failed", result.Failed))
	return result, nil
}

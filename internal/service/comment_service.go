package service

import (
	"context"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/dto"
	"github.com/learncss/Annotum/pkg/code"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CommentService 评论业务服务接口
type CommentService interface {
	// Create 发表评论，uid 为 0 时为匿名评论
	Create(ctx context.Context, uid int64, params *dto.CommentCreateRequest) (*dto.CommentDTO, error)

	// List 已审核评论列表
	List(ctx context.Context, articleID int64) ([]*dto.CommentDTO, error)
}

type commentService struct {
	commentRepo domain.CommentRepository
	articleRepo domain.ArticleRepository
	userRepo    domain.UserRepository
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewCommentService 创建 CommentService 实例
func NewCommentService(commentRepo domain.CommentRepository, articleRepo domain.ArticleRepository, userRepo domain.UserRepository, logger *zap.Logger, config *ServiceConfig) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		logger:      logger,
		config:      config,
	}
}

// Create 发表评论
func (s *commentService) Create(ctx context.Context, uid int64, params *dto.CommentCreateRequest) (*dto.CommentDTO, error) {
	article, err := s.articleRepo.GetByID(ctx, params.ArticleID)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorArticleNotFound
		}
		return nil, errors.Wrap(err, "get article")
	}
	if !article.IsPublished() {
		return nil, code.ErrorArticleNotPublished
	}

	c := &domain.Comment{
		ArticleID:   article.ID,
		AuthorName:  params.AuthorName,
		AuthorEmail: params.AuthorEmail,
		AuthorURL:   params.AuthorURL,
		Content:     params.Content,
	}

	if uid > 0 {
		user, err := s.userRepo.GetByUID(ctx, uid)
		if err != nil {
			if isNotFound(err) {
				return nil, code.ErrorUserNotFound
			}
			return nil, errors.Wrap(err, "get user")
		}
		c.UID = user.UID
		c.AuthorName = user.Name()
		c.AuthorEmail = user.Email
		c.AuthorURL = user.Link
		c.Approved = true
	} else {
		if c.AuthorName == "" {
			return nil, code.ErrorInvalidParams.WithDetails("authorName")
		}
		c.Approved = s.config == nil || !s.config.User.CommentModeration
	}

	saved, err := s.commentRepo.Create(ctx, c)
	if err != nil {
		s.logger.Error("commentService.Create", zap.Int64("articleId", article.ID), zap.Error(err))
		return nil, code.ErrorCommentSaveFailed.WithDetails(err.Error())
	}
	return commentToDTO(saved), nil
}

// List 已审核评论列表
func (s *commentService) List(ctx context.Context, articleID int64) ([]*dto.CommentDTO, error) {
	list, err := s.commentRepo.ListApprovedByArticle(ctx, articleID)
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	out := make([]*dto.CommentDTO, 0, len(list))
	for _, c := range list {
		out = append(out, commentToDTO(c))
	}
	return out, nil
}

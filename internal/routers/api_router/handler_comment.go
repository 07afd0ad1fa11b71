package api_router

import (
	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dto"
	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	apperrors "github.com/learncss/Annotum/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论 API 路由处理器
type CommentHandler struct {
	*Handler
}

// NewCommentHandler 创建 CommentHandler 实例
func NewCommentHandler(a *app.App) *CommentHandler {
	return &CommentHandler{Handler: NewHandler(a)}
}

// Create posts a comment; anonymous callers must give a name
// @Summary Create comment
// @Tags Comment
// @Accept json
// @Produce json
// @Param params body dto.CommentCreateRequest true "Comment"
// @Success 200 {object} pkgapp.Res{data=dto.CommentDTO} "Success"
// @Router /api/article/comment [post]
func (h *CommentHandler) Create(c *gin.Context) {
	params := &dto.CommentCreateRequest{}
	if !h.bind(c, "CommentHandler.Create", params) {
		return
	}

	ctx := c.Request.Context()
	comment, err := h.App.CommentService.Create(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "CommentHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(comment))
}

// List 已审核评论
// @Summary List approved comments
// @Tags Comment
// @Produce json
// @Param articleId query int true "Article ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.CommentDTO} "Success"
// @Router /api/article/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	params := &dto.CommentListRequest{}
	if !h.bind(c, "CommentHandler.List", params) {
		return
	}

	ctx := c.Request.Context()
	list, err := h.App.CommentService.List(ctx, params.ArticleID)
	if err != nil {
		h.logError(ctx, "CommentHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(list))
}

package api_router

import (
	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dto"
	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	apperrors "github.com/learncss/Annotum/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ArticleHandler 文章 API 路由处理器
type ArticleHandler struct {
	*Handler
}

// NewArticleHandler 创建 ArticleHandler 实例
func NewArticleHandler(a *app.App) *ArticleHandler {
	return &ArticleHandler{Handler: NewHandler(a)}
}

// Save creates or updates an article
// @Summary Create or update article
// @Tags Article
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param params body dto.ArticleSaveRequest true "Article"
// @Success 200 {object} pkgapp.Res{data=dto.ArticleDTO} "Success"
// @Router /api/article [post]
func (h *ArticleHandler) Save(c *gin.Context) {
	params := &dto.ArticleSaveRequest{}
	if !h.bind(c, "ArticleHandler.Save", params) {
		return
	}
	uid, ok := h.requireUID(c, "ArticleHandler.Save")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	article, err := h.App.ArticleService.Save(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "ArticleHandler.Save", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(article))
}

// Get returns one article; drafts only for their owner
// @Summary Get article
// @Tags Article
// @Produce json
// @Param id query int false "Article ID"
// @Param slug query string false "Article slug"
// @Success 200 {object} pkgapp.Res{data=dto.ArticleDTO} "Success"
// @Router /api/article [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	params := &dto.ArticleGetRequest{}
	if !h.bind(c, "ArticleHandler.Get", params) {
		return
	}

	ctx := c.Request.Context()
	article, err := h.App.ArticleService.Get(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "ArticleHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(article))
}

// List 文章列表
// @Summary List articles
// @Tags Article
// @Produce json
// @Param params query dto.ArticleListRequest false "Filters"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes{list=[]dto.ArticleDTO}} "Success"
// @Router /api/articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	params := &dto.ArticleListRequest{}
	if !h.bind(c, "ArticleHandler.List", params) {
		return
	}

	ctx := c.Request.Context()
	pager := &pkgapp.Pager{Page: pkgapp.GetPage(c), PageSize: pkgapp.GetPageSize(c)}
	list, total, err := h.App.ArticleService.List(ctx, pkgapp.GetUID(c), params, pager)
	if err != nil {
		h.logError(ctx, "ArticleHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, int(total))
}

// Delete 删除文章
// @Summary Delete article
// @Tags Article
// @Security UserAuthToken
// @Param id query int true "Article ID"
// @Success 204
// @Router /api/article [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	params := &dto.ArticleDeleteRequest{}
	if !h.bind(c, "ArticleHandler.Delete", params) {
		return
	}
	uid, ok := h.requireUID(c, "ArticleHandler.Delete")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.App.ArticleService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "ArticleHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	h.success(c)
}

// Autosave 保存自动保存版本
// @Summary Autosave article
// @Tags Article
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param params body dto.ArticleAutosaveRequest true "Autosave"
// @Success 200 {object} pkgapp.Res{data=dto.ArticleRevisionDTO} "Success"
// @Router /api/article/autosave [post]
func (h *ArticleHandler) Autosave(c *gin.Context) {
	params := &dto.ArticleAutosaveRequest{}
	if !h.bind(c, "ArticleHandler.Autosave", params) {
		return
	}
	uid, ok := h.requireUID(c, "ArticleHandler.Autosave")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	rev, err := h.App.ArticleService.Autosave(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "ArticleHandler.Autosave", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(rev))
}

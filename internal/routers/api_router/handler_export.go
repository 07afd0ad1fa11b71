package api_router

import (
	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dto"
	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	apperrors "github.com/learncss/Annotum/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves JATS XML downloads.
// ExportHandler XML 下载处理器
type ExportHandler struct {
	*Handler
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(a *app.App) *ExportHandler {
	return &ExportHandler{Handler: NewHandler(a)}
}

func (h *ExportHandler) serve(c *gin.Context, params *dto.ExportRequest) {
	ctx := c.Request.Context()
	res, err := h.App.ExportService.Export(ctx, params, pkgapp.GetUID(c))
	if err != nil {
		h.logError(ctx, "ExportHandler.Export", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToXML(res.Body, res.Filename, !params.Screen)
}

// Pretty serves /<article-base>/:slug/xml/ and, with preview set by the
// route, /<article-base>/:slug/xml/preview/.
func (h *ExportHandler) Pretty(preview bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := &dto.ExportRequest{}
		if !h.bind(c, "ExportHandler.Pretty", params) {
			return
		}
		params.ID = 0
		params.Slug = c.Param("slug")
		params.Preview = preview
		params.Autosave = preview && params.Autosave
		h.serve(c, params)
	}
}

// Plain serves /?p=<id>&xml=true[&preview=true[&autosave=true]]. Requests
// without xml=true are not ours.
func (h *ExportHandler) Plain(c *gin.Context) {
	if c.Query("xml") != "true" {
		pkgapp.NewResponse(c).ToResponse(code.ErrorNotFound)
		return
	}
	params := &dto.ExportRequest{}
	if !h.bind(c, "ExportHandler.Plain", params) {
		return
	}
	params.Slug = ""
	params.Autosave = params.Preview && params.Autosave
	h.serve(c, params)
}

// DownloadURL 获取 XML 下载链接
// @Summary Get XML download link
// @Tags Export
// @Produce json
// @Param params query dto.DownloadURLRequest true "Article"
// @Success 200 {object} pkgapp.Res{data=dto.DownloadURLDTO} "Success"
// @Router /api/article/download_url [get]
func (h *ExportHandler) DownloadURL(c *gin.Context) {
	params := &dto.DownloadURLRequest{}
	if !h.bind(c, "ExportHandler.DownloadURL", params) {
		return
	}

	ctx := c.Request.Context()
	link, err := h.App.ExportService.DownloadURL(ctx, params.ID, params.Preview, params.Autosave)
	if err != nil {
		h.logError(ctx, "ExportHandler.DownloadURL", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(dto.DownloadURLDTO{URL: link}))
}

// Archive 立即归档全部已发布文章，仅管理员可用
// @Summary Archive all published articles
// @Tags Export
// @Produce json
// @Security UserAuthToken
// @Success 200 {object} pkgapp.Res{data=dto.ArchiveResultDTO} "Success"
// @Router /api/admin/archive [post]
func (h *ExportHandler) Archive(c *gin.Context) {
	uid, ok := h.requireUID(c, "ExportHandler.Archive")
	if !ok {
		return
	}
	if admin := h.App.Config().User.AdminUID; admin == 0 || uid != admin {
		pkgapp.NewResponse(c).ToResponse(code.ErrorPermissionDenied)
		return
	}

	done := h.App.TrackOperation()
	defer done()

	ctx := c.Request.Context()
	res, err := h.App.ArchiveService.ArchiveAll(ctx)
	if err != nil {
		h.logError(ctx, "ExportHandler.Archive", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(res))
}

// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"
	"net/http"

	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/middleware"
	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录错误日志，包含 Trace ID
func (h *Handler) logError(ctx context.Context, method string, err error) {
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", middleware.GetTraceID(ctx)),
	)
}

// bind binds and validates params, answering the request itself on failure.
func (h *Handler) bind(c *gin.Context, method string, params interface{}) bool {
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error(method+".BindAndValid errs", zap.Error(errs))
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return false
	}
	return true
}

// requireUID 获取登录用户 ID，未登录时直接返回错误响应
func (h *Handler) requireUID(c *gin.Context, method string) (int64, bool) {
	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error(method + " err uid=0")
		pkgapp.NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
		return 0, false
	}
	return uid, true
}

// success answers a write without payload: 204 unless the success
// envelope is configured.
func (h *Handler) success(c *gin.Context) {
	if !h.App.IsReturnSuccess() {
		c.Status(http.StatusNoContent)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success)
}

package api_router

import (
	"time"

	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dto"
	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	"github.com/learncss/Annotum/pkg/util"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接；host=true 时附带主机负载
// @Tags System
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.HealthDTO}
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	res := dto.HealthDTO{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(h.App.StartTime).Round(time.Second).String(),
	}
	if c.Query("host") == "true" {
		stats := util.GetHostStats()
		res.Host = &stats
	}

	sqlDB, err := h.App.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		res.Status = "degraded"
		res.Database = err.Error()
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(res))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(res))
}

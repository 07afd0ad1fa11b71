package api_router

import (
	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dto"
	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	apperrors "github.com/learncss/Annotum/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UserHandler user API router handler
// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler creates UserHandler instance
// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Register user registration
// @Summary User registration
// @Description Register an account. Registration may be disabled in server settings.
// @Description 用户注册，注册功能可能在服务器设置中被禁用。
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserCreateRequest true "Register Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Router /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	params := &dto.UserCreateRequest{}
	if !h.bind(c, "UserHandler.Register", params) {
		return
	}

	ctx := c.Request.Context()
	userDTO, err := h.App.UserService.Register(ctx, params)
	if err != nil {
		h.logError(ctx, "UserHandler.Register", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(userDTO))
}

// Login user login
// @Summary User login
// @Description Login with username or email and return an auth token.
// @Description 使用用户名或邮箱登录并返回认证 Token。
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserLoginRequest true "Login Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Router /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	params := &dto.UserLoginRequest{}
	if !h.bind(c, "UserHandler.Login", params) {
		return
	}

	ctx := c.Request.Context()
	userDTO, err := h.App.UserService.Login(ctx, params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(userDTO))
}

// UserInfo retrieves user info
// @Summary Get user info
// @Tags User
// @Produce json
// @Security UserAuthToken
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Router /api/user/info [get]
func (h *UserHandler) UserInfo(c *gin.Context) {
	uid, ok := h.requireUID(c, "UserHandler.UserInfo")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	userDTO, err := h.App.UserService.GetInfo(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.UserInfo", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(userDTO))
}

package service

import (
	"context"
	"strings"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/dto"
	"github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	"github.com/learncss/Annotum/pkg/util"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
	}
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorPasswordNotValid
	}

	for _, lookup := range []func() (*domain.User, error){
		func() (*domain.User, error) { return s.userRepo.GetByEmail(ctx, params.Email) },
		func() (*domain.User, error) { return s.userRepo.GetByUsername(ctx, params.Username) },
	} {
		u, err := lookup()
		if err != nil && !isNotFound(err) {
			return nil, errors.Wrap(err, "user lookup")
		}
		if u != nil {
			return nil, code.ErrorUserAlreadyExists
		}
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username:    params.Username,
		Email:       params.Email,
		Password:    password,
		DisplayName: params.DisplayName,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Prefix:      params.Prefix,
		Suffix:      params.Suffix,
		Link:        params.Link,
		Bio:         params.Bio,
		Affiliation: params.Affiliation,
		Institution: params.Institution,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create user")
	}

	token, err := s.tokenManager.Generate(user.UID, user.Username, "")
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	out := userToDTO(user)
	out.Token = token
	return out, nil
}

// Login 用户登录，凭证可以是用户名或邮箱
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	var (
		user *domain.User
		err  error
	)
	if strings.Contains(params.Credentials, "@") {
		user, err = s.userRepo.GetByEmail(ctx, params.Credentials)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, params.Credentials)
	}
	if err != nil {
		// 不暴露用户是否存在
		return nil, code.ErrorUserLoginPasswordFailed
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	token, err := s.tokenManager.Generate(user.UID, user.Username, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	out := userToDTO(user)
	out.Token = token
	return out, nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorUserNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}
	return userToDTO(user), nil
}

package dto

import "time"

// UserCreateRequest User registration request parameters
// 用户注册请求参数
type UserCreateRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email"`               // User email // 用户邮件
	Username        string `json:"username" form:"username" binding:"required,min=3,max=64"`  // User name // 用户名
	Password        string `json:"password" form:"password" binding:"required,min=6"`         // User password // 用户密码
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"` // Confirm password // 校验密码
	DisplayName     string `json:"displayName" form:"displayName"`
	FirstName       string `json:"firstName" form:"firstName"`
	LastName        string `json:"lastName" form:"lastName"`
	Prefix          string `json:"prefix" form:"prefix"`
	Suffix          string `json:"suffix" form:"suffix"`
	Link            string `json:"link" form:"link" binding:"omitempty,url"`
	Bio             string `json:"bio" form:"bio"`
	Affiliation     string `json:"affiliation" form:"affiliation"`
	Institution     string `json:"institution" form:"institution"`
}

// UserLoginRequest User login request parameters
// 用户登录请求参数
type UserLoginRequest struct {
	Credentials string `json:"credentials" form:"credentials" binding:"required"` // Username or Email // 登录凭证（用户名或邮件）
	Password    string `json:"password" form:"password" binding:"required"`       // Password // 密码
}

// UserDTO User data transfer object
// UserDTO 用户数据传输对象
type UserDTO struct {
	UID         int64     `json:"uid"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Token       string    `json:"token,omitempty"`
	DisplayName string    `json:"displayName"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Prefix      string    `json:"prefix"`
	Suffix      string    `json:"suffix"`
	Link        string    `json:"link"`
	Bio         string    `json:"bio"`
	Affiliation string    `json:"affiliation"`
	Institution string    `json:"institution"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

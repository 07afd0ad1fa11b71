package domain

import "time"

// User 用户领域模型
type User struct {
	UID         int64
	Username    string
	Email       string
	Password    string
	DisplayName string
	FirstName   string
	LastName    string
	Prefix      string
	Suffix      string
	Link        string
	Bio         string
	Affiliation string
	Institution string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasEmail 判断用户是否有邮箱
func (u *User) HasEmail() bool {
	return u.Email != ""
}

// Name returns the display name, falling back to the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

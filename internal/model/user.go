package model

import "time"

// User mapped from table <user>
type User struct {
	UID         int64     `gorm:"column:uid;primaryKey" json:"uid"`
	Username    string    `gorm:"column:username;size:100;not null;uniqueIndex:idx_user_username" json:"username"`
	Email       string    `gorm:"column:email;size:200;index:idx_user_email" json:"email"`
	Password    string    `gorm:"column:password;size:200" json:"-"`
	DisplayName string    `gorm:"column:display_name;size:200" json:"displayName"`
	FirstName   string    `gorm:"column:first_name;size:100" json:"firstName"`
	LastName    string    `gorm:"column:last_name;size:100" json:"lastName"`
	Prefix      string    `gorm:"column:prefix;size:50" json:"prefix"`
	Suffix      string    `gorm:"column:suffix;size:50" json:"suffix"`
	Link        string    `gorm:"column:link;size:500" json:"link"`
	Bio         string    `gorm:"column:bio;type:text" json:"bio"`
	Affiliation string    `gorm:"column:affiliation;type:text" json:"affiliation"`
	Institution string    `gorm:"column:institution;type:text" json:"institution"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

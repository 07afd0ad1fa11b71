package model

import "time"

// Comment mapped from table <comment>
type Comment struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	ArticleID   int64     `gorm:"column:article_id;not null;index:idx_comment_article" json:"articleId"`
	UID         int64     `gorm:"column:uid;not null;default:0" json:"uid"`
	AuthorName  string    `gorm:"column:author_name;size:200" json:"authorName"`
	AuthorEmail string    `gorm:"column:author_email;size:200" json:"authorEmail"`
	AuthorURL   string    `gorm:"column:author_url;size:500" json:"authorUrl"`
	Content     string    `gorm:"column:content;type:text" json:"content"`
	Approved    bool      `gorm:"column:approved;not null;default:false" json:"approved"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

package dto

import "time"

// CommentCreateRequest 发表评论，登录用户可省略作者信息
type CommentCreateRequest struct {
	ArticleID   int64  `json:"articleId" form:"articleId" binding:"required,gt=0"`
	AuthorName  string `json:"authorName" form:"authorName" binding:"max=200"`
	AuthorEmail string `json:"authorEmail" form:"authorEmail" binding:"omitempty,email"`
	AuthorURL   string `json:"authorUrl" form:"authorUrl" binding:"omitempty,url"`
	Content     string `json:"content" form:"content" binding:"required"`
}

// CommentListRequest 评论列表
type CommentListRequest struct {
	ArticleID int64 `json:"articleId" form:"articleId" binding:"required,gt=0"`
}

// CommentDTO 评论数据传输对象
type CommentDTO struct {
	ID         int64     `json:"id"`
	ArticleID  int64     `json:"articleId"`
	UID        int64     `json:"uid"`
	AuthorName string    `json:"authorName"`
	AuthorURL  string    `json:"authorUrl"`
	Content    string    `json:"content"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"createdAt"`
}

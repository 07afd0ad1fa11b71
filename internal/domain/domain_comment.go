package domain

import "time"

// Comment 评论领域模型，UID 为 0 表示匿名评论
type Comment struct {
	ID          int64
	ArticleID   int64
	UID         int64
	AuthorName  string
	AuthorEmail string
	AuthorURL   string
	Content     string
	Approved    bool
	CreatedAt   time.Time
}

// IsAnonymous 是否匿名评论
func (c *Comment) IsAnonymous() bool {
	return c.UID == 0
}

package dto

import "time"

// AuthorDTO article author
type AuthorDTO struct {
	UID         int64  `json:"uid"`
	Surname     string `json:"surname" binding:"required"`
	GivenNames  string `json:"givenNames"`
	Prefix      string `json:"prefix"`
	Suffix      string `json:"suffix"`
	Degrees     string `json:"degrees"`
	Affiliation string `json:"affiliation"` // " | " separated
	Institution string `json:"institution"` // " | " separated
	Bio         string `json:"bio"`
	Link        string `json:"link"`
}

// ArticleMetaDTO article metadata; empty strings are unset
type ArticleMetaDTO struct {
	DOI             string   `json:"doi"`
	Funding         string   `json:"funding"`
	Volume          string   `json:"volume"`
	Issue           string   `json:"issue"`
	FirstPage       string   `json:"fpage"`
	LastPage        string   `json:"lpage"`
	Received        string   `json:"received" binding:"omitempty,datetime=2006-01-02"`
	Accepted        string   `json:"accepted" binding:"omitempty,datetime=2006-01-02"`
	AuthorNotes     string   `json:"authorNotes"`
	Acknowledgments string   `json:"acknowledgments"`
	Appendices      []string `json:"appendices"`
}

// ArticleSaveRequest creates (ID == 0) or updates an article
// 创建或更新文章的请求参数
type ArticleSaveRequest struct {
	ID          int64          `json:"id" form:"id"`
	Slug        string         `json:"slug" form:"slug" binding:"omitempty,max=200"`
	Title       string         `json:"title" form:"title" binding:"required"`
	Subtitle    string         `json:"subtitle" form:"subtitle"`
	Excerpt     string         `json:"excerpt" form:"excerpt"`
	Content     string         `json:"content" form:"content"`
	Status      string         `json:"status" form:"status" binding:"omitempty,oneof=draft pending published"`
	Category    string         `json:"category" form:"category"`
	Tags        []string       `json:"tags" form:"tags"`
	Meta        ArticleMetaDTO `json:"meta"`
	Authors     []AuthorDTO    `json:"authors" binding:"dive"`
	Ancestors   []int64        `json:"ancestors"`  // related article ids
	References  string         `json:"references"` // rendered <ref-list> markup
	PublishedAt *time.Time     `json:"publishedAt"`
}

// ArticleGetRequest 获取单篇文章
type ArticleGetRequest struct {
	ID   int64  `json:"id" form:"id"`
	Slug string `json:"slug" form:"slug"`
}

// ArticleDeleteRequest 删除文章
type ArticleDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gt=0"`
}

// ArticleListRequest 文章列表
type ArticleListRequest struct {
	Status  string `json:"status" form:"status" binding:"omitempty,oneof=draft pending published"`
	Keyword string `json:"keyword" form:"keyword"`
	Mine    bool   `json:"mine" form:"mine"`
}

// ArticleAutosaveRequest 自动保存
type ArticleAutosaveRequest struct {
	ID       int64  `json:"id" form:"id" binding:"required,gt=0"`
	Title    string `json:"title" form:"title"`
	Subtitle string `json:"subtitle" form:"subtitle"`
	Excerpt  string `json:"excerpt" form:"excerpt"`
	Content  string `json:"content" form:"content"`
}

// ArticleDTO article response
// ArticleDTO 文章数据传输对象
type ArticleDTO struct {
	ID          int64          `json:"id"`
	UID         int64          `json:"uid"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Excerpt     string         `json:"excerpt"`
	Content     string         `json:"content,omitempty"`
	Status      string         `json:"status"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags"`
	Meta        ArticleMetaDTO `json:"meta"`
	Authors     []AuthorDTO    `json:"authors"`
	PublishedAt time.Time      `json:"publishedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ArticleRevisionDTO autosave response
type ArticleRevisionDTO struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"articleId"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

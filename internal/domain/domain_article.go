package domain

import "time"

// ArticleStatus 文章状态
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPending   ArticleStatus = "pending"
	ArticleStatusPublished ArticleStatus = "published"
)

// Valid reports whether s is a known status.
func (s ArticleStatus) Valid() bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPending, ArticleStatusPublished:
		return true
	}
	return false
}

// Article 文章领域模型
type Article struct {
	ID       int64
	UID      int64 // owner
	Slug     string
	Title    string
	Subtitle string
	Excerpt  string
	Content  string
	Status   ArticleStatus
	Category string
	Tags     []string
	Meta     ArticleMeta
	Authors  []AuthorSnapshot

	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPublished 是否已发布
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// IsOwnedBy reports whether uid owns the article.
func (a *Article) IsOwnedBy(uid int64) bool {
	return uid != 0 && a.UID == uid
}

// ArticleMeta 文章元数据，空字符串表示未设置
type ArticleMeta struct {
	DOI             string   `json:"doi,omitempty"`
	Funding         string   `json:"funding,omitempty"`
	Volume          string   `json:"volume,omitempty"`
	Issue           string   `json:"issue,omitempty"`
	FirstPage       string   `json:"fpage,omitempty"`
	LastPage        string   `json:"lpage,omitempty"`
	Received        string   `json:"received,omitempty"` // YYYY-MM-DD
	Accepted        string   `json:"accepted,omitempty"` // YYYY-MM-DD
	AuthorNotes     string   `json:"authorNotes,omitempty"`
	Acknowledgments string   `json:"acknowledgments,omitempty"`
	Appendices      []string `json:"appendices,omitempty"`
}

// AuthorSnapshot is an author as recorded on the article at save time.
// Affiliation and Institution hold " | " separated lists.
type AuthorSnapshot struct {
	UID         int64  `json:"uid,omitempty"`
	Surname     string `json:"surname"`
	GivenNames  string `json:"givenNames,omitempty"`
	Prefix      string `json:"prefix,omitempty"`
	Suffix      string `json:"suffix,omitempty"`
	Degrees     string `json:"degrees,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Institution string `json:"institution,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Link        string `json:"link,omitempty"`
}

// ArticleRevision 自动保存的修订版本
type ArticleRevision struct {
	ID        int64
	ArticleID int64
	UID       int64
	Title     string
	Subtitle  string
	Excerpt   string
	Content   string
	CreatedAt time.Time
}

// ArticleListOptions 文章列表查询条件
type ArticleListOptions struct {
	UID      int64 // 0 表示不限作者
	Status   ArticleStatus
	Keyword  string
	Page     int
	PageSize int
}

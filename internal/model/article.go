package model

import "time"

// Author is the stored form of an author snapshot.
type Author struct {
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

// Meta is the stored form of the article metadata.
type Meta struct {
	DOI             string   `json:"doi,omitempty"`
	Funding         string   `json:"funding,omitempty"`
	Volume          string   `json:"volume,omitempty"`
	Issue           string   `json:"issue,omitempty"`
	FirstPage       string   `json:"fpage,omitempty"`
	LastPage        string   `json:"lpage,omitempty"`
	Received        string   `json:"received,omitempty"`
	Accepted        string   `json:"accepted,omitempty"`
	AuthorNotes     string   `json:"authorNotes,omitempty"`
	Acknowledgments string   `json:"acknowledgments,omitempty"`
	Appendices      []string `json:"appendices,omitempty"`
}

// Article mapped from table <article>
type Article struct {
	ID          int64          `gorm:"column:id;primaryKey" json:"id"`
	UID         int64          `gorm:"column:uid;not null;index:idx_article_uid" json:"uid"`
	Slug        string         `gorm:"column:slug;size:200;not null;uniqueIndex:idx_article_slug" json:"slug"`
	Title       string         `gorm:"column:title;type:text" json:"title"`
	Subtitle    string         `gorm:"column:subtitle;type:text" json:"subtitle"`
	Excerpt     string         `gorm:"column:excerpt;type:text" json:"excerpt"`
	Content     string         `gorm:"column:content;type:text" json:"content"`
	Status      string         `gorm:"column:status;size:20;not null;index:idx_article_status" json:"status"`
	Category    string         `gorm:"column:category;size:200" json:"category"`
	Tags        JSON[[]string] `gorm:"column:tags" json:"tags"`
	Meta        JSON[Meta]     `gorm:"column:meta" json:"meta"`
	Authors     JSON[[]Author] `gorm:"column:authors" json:"authors"`
	PublishedAt *time.Time     `gorm:"column:published_at" json:"publishedAt"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// ArticleRevision mapped from table <article_revision>
type ArticleRevision struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	ArticleID int64     `gorm:"column:article_id;not null;index:idx_revision_article" json:"articleId"`
	UID       int64     `gorm:"column:uid;not null" json:"uid"`
	Title     string    `gorm:"column:title;type:text" json:"title"`
	Subtitle  string    `gorm:"column:subtitle;type:text" json:"subtitle"`
	Excerpt   string    `gorm:"column:excerpt;type:text" json:"excerpt"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

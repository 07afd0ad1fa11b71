// Package jats assembles Journal Publishing (NLM/JATS v3.0) article documents
// from already resolved article data. Every function here is pure: the same
// Document always renders to the same bytes, and nothing is shared between calls.
//
// Package jats 将文章数据组装为 JATS/NLM XML 文档，纯函数，无共享状态
package jats

import "time"

// Journal is the process-wide journal configuration, passed by value so one
// render always sees a consistent snapshot.
type Journal struct {
	Title             string
	ID                string
	IDType            string
	ISSN              string
	AbbrevTitle       string
	PublisherName     string
	PublisherLocation string
}

// Author is a snapshot of one article author.
// Affiliation and Institution hold " | " separated lists.
type Author struct {
	Surname     string
	GivenNames  string
	Prefix      string
	Suffix      string
	Degrees     string
	Affiliation string
	Institution string
	Bio         string
	Link        string
}

// HasAffiliation reports whether the author contributes to the aff list.
func (a *Author) HasAffiliation() bool {
	return a.Affiliation != "" || a.Institution != ""
}

// Article is the article record. An empty string means the field is unset;
// any other value, including "0", is emitted.
type Article struct {
	ID          int64
	Title       string
	Subtitle    string
	Abstract    string
	Body        string // trusted markup, written verbatim
	PublishedAt time.Time
	Category    string
	Tags        []string

	DOI       string
	Funding   string
	Volume    string
	Issue     string
	FirstPage string
	LastPage  string
	Received  string // YYYY-MM-DD
	Accepted  string // YYYY-MM-DD

	Authors         []Author
	AuthorNotes     string   // trusted markup
	Appendices      []string // trusted markup, empty entries skipped
	Acknowledgments string
}

// User is a registered commenter.
type User struct {
	FirstName   string
	LastName    string
	DisplayName string
	Email       string
	Link        string
	Bio         string
	Prefix      string
	Suffix      string
	Affiliation string
	Institution string
}

// Comment is one reader response. A nil User means an anonymous commenter
// identified by AuthorName and AuthorLink.
type Comment struct {
	User       *User
	AuthorName string
	AuthorLink string
	Content    string
	Date       time.Time
}

// RelatedArticle is an ancestor article. Unpublished targets are skipped.
type RelatedArticle struct {
	ID        int64
	Permalink string
	DOI       string
	Published bool
}

// Document bundles everything one render needs.
type Document struct {
	Journal    Journal
	Article    Article
	Comments   []Comment
	Related    []RelatedArticle
	References string // trusted markup from the reference list renderer
}

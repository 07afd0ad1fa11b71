package jats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildCommentAuthor(t *testing.T) {
	tests := []struct {
		name     string
		comment  Comment
		contains []string
		absent   []string
	}{
		{
			name: "registered with last name",
			comment: Comment{User: &User{
				LastName: "Doe", FirstName: "Jane", DisplayName: "jd", Prefix: "Dr", Suffix: "III",
				Email: "jane@example.org", Affiliation: "Lab", Institution: "Uni",
				Bio: "First para.\n\nSecond & last.", Link: "https://jane.example",
			}},
			contains: []string{
				"<surname>Doe</surname>", "<given-names>Jane</given-names>", "<prefix>Dr</prefix>", "<suffix>III</suffix>",
				"<email>jane@example.org</email>",
				"<aff>Lab<institution>Uni</institution></aff>",
				"<p>First para.</p>", "<p>Second &amp; last.</p>",
				`<ext-link ext-link-type="uri" xlink:href="https://jane.example">https://jane.example</ext-link>`,
			},
			absent: []string{"jd"},
		},
		{
			name:     "registered falls back to display name",
			comment:  Comment{User: &User{DisplayName: "jd"}},
			contains: []string{"<surname>jd</surname>"},
			absent:   []string{"<aff", "<bio", "<email"},
		},
		{
			name:     "anonymous",
			comment:  Comment{AuthorName: "Visitor", AuthorLink: "http://v.example", Content: "hi"},
			contains: []string{"<name>\n", "<surname>Visitor</surname>", "</name>\n\t\t<ext-link"},
			absent:   []string{"<email", "<aff", "<bio"},
		},
		{
			name:     "anonymous link without name",
			comment:  Comment{AuthorLink: "http://v.example"},
			contains: []string{`<contrib contrib-type="author"/>`},
			absent:   []string{"<name", "<ext-link"},
		},
		{
			name:     "disallowed link scheme",
			comment:  Comment{AuthorName: "Visitor", AuthorLink: "javascript:alert(1)"},
			contains: []string{"<surname>Visitor</surname>"},
			absent:   []string{"<ext-link", "alert"},
		},
		{
			name:     "anonymous without name",
			comment:  Comment{},
			contains: []string{`<contrib-group>`, `<contrib contrib-type="author"/>`},
			absent:   []string{"<name"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := buildCommentAuthor(&tt.comment).String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestBuildResponses(t *testing.T) {
	assert.Empty(t, buildResponses(nil))

	comments := []Comment{
		{AuthorName: "A", Content: "x < y", Date: time.Date(2022, 12, 9, 0, 0, 0, 0, time.UTC)},
		{AuthorName: "B", Content: "second"},
	}
	nodes := buildResponses(comments)
	assert.Len(t, nodes, 2)

	first := nodes[0].String()
	assert.Contains(t, first, `<response response-type="reply">`)
	assert.Contains(t, first, "<p>x &lt; y</p>")
	assert.Contains(t, first, `<pub-date pub-type="epub">`)
	assert.Contains(t, first, "<day>9</day>")
	assert.NotContains(t, nodes[1].String(), "pub-date")
}

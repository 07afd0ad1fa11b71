package jats

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		text string
		attr string
	}{
		{name: "plain", in: "abc", text: "abc", attr: "abc"},
		{name: "markup", in: `O'Brien & Co. <Test>`, text: "O'Brien &amp; Co. &lt;Test&gt;", attr: "O&#39;Brien &amp; Co. &lt;Test&gt;"},
		{name: "quotes", in: `"q"`, text: `"q"`, attr: "&quot;q&quot;"},
		{name: "control chars dropped", in: "a\x00b\x1fc\td", text: "abc\td", attr: "abc\td"},
		{name: "invalid utf8", in: "a\xffb", text: "a�b", attr: "a�b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, EscapeText(tt.in))
			assert.Equal(t, tt.attr, EscapeAttr(tt.in))
		})
	}
}

func TestEscapeURL(t *testing.T) {
	assert.Equal(t, "http://a.example/?x=1&amp;y=2", EscapeURL(" http://a.example/?x=1&y=2 "))
	assert.Equal(t, "mailto:a@b.c", EscapeURL("mailto:a@b.c"))
	assert.Equal(t, "", EscapeURL("javascript:alert(1)"))
	assert.Equal(t, "/relative/path", EscapeURL("/relative/path"))
}

func TestEscape_WellFormedProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("any scalar text keeps the document well formed", prop.ForAll(
		func(s string) bool {
			d := &Document{
				Journal: Journal{Title: s, ID: s, IDType: s, PublisherName: s},
				Article: Article{
					Title:   s,
					Authors: []Author{{Surname: s, Institution: s, Affiliation: s, Link: s}},
					Tags:    []string{s},
				},
				Comments: []Comment{{AuthorName: s, AuthorLink: s, Content: s}},
				Related:  []RelatedArticle{{ID: 1, Permalink: s, DOI: s, Published: true}},
			}
			return wellFormed(Render(d, WithClock(fixedNow))) == nil
		},
		gen.AnyString(),
	))

	properties.Property("escaped text contains no raw markup", prop.ForAll(
		func(s string) bool {
			out := EscapeAttr(s)
			for _, r := range out {
				if r == '<' || r == '>' || r == '"' || r == '\'' {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

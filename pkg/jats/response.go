package jats

import (
	"strings"
)

// buildResponses renders one <response> per comment, in the given order.
func buildResponses(comments []Comment) []*Node {
	out := make([]*Node, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		stub := El("front-stub", buildCommentAuthor(c))
		stub.Append(pubDates(c.Date)...)
		out = append(out, El("response",
			stub,
			El("body", El("p", Text(c.Content))),
		).Attr("response-type", "reply"))
	}
	return out
}

// buildCommentAuthor renders the commenter, registered or anonymous.
// The contrib-group wrapper is always present.
func buildCommentAuthor(c *Comment) *Node {
	contrib := El("contrib").Attr("contrib-type", "author")
	if u := c.User; u != nil {
		surname := u.LastName
		if surname == "" {
			surname = u.DisplayName
		}
		contrib.Append(
			wrap("name",
				optional("surname", surname),
				optional("given-names", u.FirstName),
				optional("prefix", u.Prefix),
				optional("suffix", u.Suffix),
			),
			optional("email", u.Email),
			userAff(u.Affiliation, u.Institution),
			wrap("bio", paragraphs(u.Bio)...),
			extLink(u.Link),
		)
	} else if c.AuthorName != "" {
		// 匿名评论者的链接只跟随姓名输出
		contrib.Append(
			wrap("name", optional("surname", c.AuthorName)),
			extLink(c.AuthorLink),
		)
	}
	return El("contrib-group", contrib)
}

func userAff(affiliation, institution string) *Node {
	if affiliation == "" && institution == "" {
		return nil
	}
	n := El("aff")
	if affiliation != "" {
		n.Append(Text(affiliation))
	}
	return n.Append(optional("institution", institution))
}

// paragraphs splits text on blank lines into <p> elements.
func paragraphs(text string) []*Node {
	text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
	var out []*Node
	for _, block := range strings.Split(text, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, El("p", Text(block)))
		}
	}
	return out
}

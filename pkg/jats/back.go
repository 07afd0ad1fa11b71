package jats

import (
	"strconv"
)

// buildBody wraps the curated content verbatim.
func buildBody(a *Article) *Node {
	b := El("body")
	if a.Body != "" {
		b.Append(Raw(a.Body))
	}
	return b
}

// buildBack returns nil when there is nothing to put in <back>, so no empty
// wrapper is ever written.
func buildBack(d *Document) *Node {
	back := El("back",
		acknowledgments(d.Article.Acknowledgments),
		appendices(d.Article.Appendices),
	)
	if d.References != "" {
		back.Append(Raw(d.References))
	}
	if back.Empty() {
		return nil
	}
	return back
}

func acknowledgments(text string) *Node {
	if text == "" {
		return nil
	}
	return El("ack",
		El("title", Text("Acknowledgments")),
		El("p", Text(text)),
	)
}

// appendices numbers each entry by its original position, so skipped empty
// entries leave gaps.
func appendices(list []string) *Node {
	g := El("app-group")
	for i, content := range list {
		if content == "" {
			continue
		}
		n := strconv.Itoa(i + 1)
		g.Append(El("app",
			El("sec", El("title", Text("Appendix "+n))),
			Raw(content),
		).Attr("id", "app"+n))
	}
	if g.Empty() {
		return nil
	}
	return g
}

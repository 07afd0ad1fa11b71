package jats

import (
	"strings"
)

// Header is the fixed XML declaration and DOCTYPE.
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
	`<!DOCTYPE article PUBLIC "-//NLM//DTD Journal Publishing DTD v3.0 20080202//EN" "journalpublishing3.dtd">` + "\n"

var rootAttrs = []Attr{
	{"article-type", "research-article"},
	{"xml:lang", "en"},
	{"xmlns:mml", "http://www.w3.org/1998/Math/MathML"},
	{"xmlns:xlink", "http://www.w3.org/1999/xlink"},
	{"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance"},
}

// Build assembles the <article> tree: front, body, optional back, then the
// responses.
func Build(d *Document, opts ...Option) *Node {
	o := newOptions(opts)
	root := El("article", ProcInst("origin", "annotum"))
	root.Attrs = append(root.Attrs, rootAttrs...)
	root.Append(
		buildFront(d, o),
		buildBody(&d.Article),
		buildBack(d),
	)
	root.Append(buildResponses(d.Comments)...)
	return root
}

// Render returns the complete document. It never fails.
// Render 渲染完整 XML 文档
func Render(d *Document, opts ...Option) string {
	var b strings.Builder
	b.WriteString(Header)
	Build(d, opts...).render(&b, 0)
	b.WriteByte('\n')
	return b.String()
}

// RenderBytes is Render for callers that write to the network.
func RenderBytes(d *Document, opts ...Option) []byte {
	return []byte(Render(d, opts...))
}

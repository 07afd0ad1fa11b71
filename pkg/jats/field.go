package jats

import (
	"strconv"
	"strings"
	"time"
)

// optional returns <name attrs...>value</name>, or nil when value is unset.
// attrs are name/value pairs.
func optional(name, value string, attrs ...string) *Node {
	if value == "" {
		return nil
	}
	n := El(name, Text(value))
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr(attrs[i], attrs[i+1])
	}
	return n
}

// wrap returns <name>children</name>, or nil when every child is nil.
func wrap(name string, children ...*Node) *Node {
	n := El(name, children...)
	if n.Empty() {
		return nil
	}
	return n
}

// dateParts splits a YYYY-MM-DD string into day, month and year elements.
// Missing positions are left out; values are not padded or validated.
func dateParts(s string) []*Node {
	parts := strings.Split(s, "-")
	at := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return []*Node{
		optional("day", at(2)),
		optional("month", at(1)),
		optional("year", at(0)),
	}
}

// historyDate builds <date date-type="kind"> from a YYYY-MM-DD string.
func historyDate(kind, s string) *Node {
	if s == "" {
		return nil
	}
	d := wrap("date", dateParts(s)...)
	if d == nil {
		return nil
	}
	return d.Attr("date-type", kind)
}

// pubDates emits the epub and ppub pub-date pair for t. Day and month are
// not zero padded. A zero time yields nothing.
func pubDates(t time.Time) []*Node {
	if t.IsZero() {
		return nil
	}
	out := make([]*Node, 0, 2)
	for _, kind := range []string{"epub", "ppub"} {
		out = append(out, El("pub-date",
			El("day", Text(strconv.Itoa(t.Day()))),
			El("month", Text(strconv.Itoa(int(t.Month())))),
			El("year", Text(strconv.Itoa(t.Year()))),
		).Attr("pub-type", kind))
	}
	return out
}

// extLink builds <ext-link ext-link-type="uri" xlink:href="link">link</ext-link>.
// Links with a disallowed scheme are dropped.
func extLink(link string) *Node {
	href := SafeURL(link)
	if href == "" {
		return nil
	}
	return El("ext-link", Text(link)).
		Attr("ext-link-type", "uri").
		Attr("xlink:href", href)
}

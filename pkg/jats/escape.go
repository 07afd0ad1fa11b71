package jats

import (
	"strings"
	"unicode/utf8"
)

var (
	textReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")
)

// allowedSchemes mirrors the protocol whitelist applied to author and commenter links.
var allowedSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "ftps": true, "mailto": true,
	"news": true, "irc": true, "gopher": true, "nntp": true, "feed": true, "telnet": true,
}

// EscapeText escapes s for use as XML element content.
// EscapeText 转义元素内容中的 & < >
func EscapeText(s string) string {
	return textReplacer.Replace(clean(s))
}

// EscapeAttr escapes s for use inside a double or single quoted attribute value.
// EscapeAttr 在 EscapeText 的基础上额外转义引号
func EscapeAttr(s string) string {
	return attrReplacer.Replace(clean(s))
}

// EscapeURL returns an attribute-safe link, or "" when the link uses a scheme
// outside the whitelist (javascript:, data:, ...).
func EscapeURL(link string) string {
	return EscapeAttr(SafeURL(link))
}

// SafeURL trims link and blanks it when its scheme is not whitelisted.
// Relative links pass through unchanged.
func SafeURL(link string) string {
	link = strings.TrimSpace(link)
	if i := strings.IndexByte(link, ':'); i > 0 {
		scheme := strings.ToLower(link[:i])
		if !strings.ContainsAny(scheme, "/?#") && !allowedSchemes[scheme] {
			return ""
		}
	}
	return link
}

// clean drops runes that XML 1.0 cannot carry at all, so escaping stays total.
func clean(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	if strings.IndexFunc(s, invalidRune) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if invalidRune(r) {
			return -1
		}
		return r
	}, s)
}

func invalidRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20:
		return true
	case r >= 0xD800 && r <= 0xDFFF:
		return true
	case r == 0xFFFE || r == 0xFFFF:
		return true
	}
	return false
}

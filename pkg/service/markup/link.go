// Package markup rewrites link-like text in card comments into HTML anchors.
package markup

import (
	"html"
	"regexp"
	"strings"
)

var (
	anchorPattern  = regexp.MustCompile(`(?is)<a\s[^>]*>.*?</a>`)
	labeledPattern = regexp.MustCompile(`\[([^\[\]|]+)\|\s*((?:https?|ftp)://[^\s\[\]|]+)\s*\]`)
	urlPattern     = regexp.MustCompile(`(?:https?|ftp)://[^\s<>"'\[\]|]+`)
)

// Linkify turns "[label|url]" constructs and bare http, https and ftp URLs
// into anchors that open in a new tab. Text already inside an anchor element
// is kept as is, so Linkify(Linkify(s)) == Linkify(s).
func Linkify(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range anchorPattern.FindAllStringIndex(text, -1) {
		b.WriteString(linkifyPlain(text[last:loc[0]]))
		b.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(linkifyPlain(text[last:]))
	return b.String()
}

func linkifyPlain(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range labeledPattern.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(wrapBare(s[last:m[0]]))
		b.WriteString(anchor(s[m[4]:m[5]], strings.TrimSpace(s[m[2]:m[3]])))
		last = m[1]
	}
	b.WriteString(wrapBare(s[last:]))
	return b.String()
}

func wrapBare(s string) string {
	var b strings.Builder
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		// attribute values such as src="..." are markup, not prose
		if start > 0 && strings.ContainsRune(`"'=>`, rune(s[start-1])) {
			continue
		}

		url := strings.TrimRight(s[start:end], ".,;:!?)")
		b.WriteString(s[last:start])
		b.WriteString(anchor(url, url))
		last = start + len(url)
	}
	b.WriteString(s[last:])
	return b.String()
}

func anchor(url, label string) string {
	return `<a href="` + html.EscapeString(url) + `" target="_blank">` + html.EscapeString(label) + `</a>`
}

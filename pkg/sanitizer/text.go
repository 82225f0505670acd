package sanitizer

import (
	"html"
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended by Excerpt when it truncates.
const Ellipsis = "…"

// PlainText strips markup, unescapes entities and collapses whitespace.
func PlainText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(StripHTML(s))), " ")
}

// Excerpt returns at most max runes of PlainText(s), cut at a word
// boundary when possible and suffixed with Ellipsis. max <= 0 disables
// truncation.
func Excerpt(s string, max int) string {
	text := PlainText(s)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + Ellipsis
}

package seo

import "strings"

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#39;",
)

// Escape replaces the five HTML-significant characters with character
// references. The result is safe both as element text and inside a
// double-quoted attribute value.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

package render

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var summaryPolicy = bluemonday.StrictPolicy()

const ellipsis = "…"

// Summary reduces an HTML fragment to plain text of at most limit runes plus
// an ellipsis. A cut falls back to the last word boundary when there is one.
// limit <= 0 disables truncation.
func Summary(fragment []byte, limit int) string {
	plain := html.UnescapeString(string(summaryPolicy.SanitizeBytes(fragment)))
	plain = strings.Join(strings.Fields(plain), " ")
	if limit <= 0 {
		return plain
	}
	runes := []rune(plain)
	if len(runes) <= limit {
		return plain
	}
	cut := runes[:limit]
	if !unicode.IsSpace(runes[limit]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + ellipsis
}

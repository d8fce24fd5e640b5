package render

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultExcerptLength is the number of characters kept in a post excerpt.
const DefaultExcerptLength = 54

var stripPolicy = bluemonday.StrictPolicy()

// Excerpt strips every tag from hypertext and keeps the first maxLen
// characters of the remaining text.
func Excerpt(hypertext string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// the sanitizer escapes the text it keeps
	runes := []rune(html.UnescapeString(stripPolicy.Sanitize(hypertext)))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen])
}

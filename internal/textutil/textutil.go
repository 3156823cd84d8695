package textutil

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Truncate cuts s to at most limit runes. Limits of zero or less return s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Collapse squeezes runs of whitespace into single spaces and trims the ends.
func Collapse(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// LooksLikeJSONObject reports whether s, after trimming, opens a JSON object.
func LooksLikeJSONObject(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "{")
}

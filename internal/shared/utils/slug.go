package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashRuns     = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a title into a URL-friendly slug.
// "Lofoten, Winter 2024" -> "lofoten-winter-2024"
func GenerateSlug(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")
	normalized := slugDashRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

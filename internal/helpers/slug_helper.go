package helpers

import (
	"regexp"
	"strings"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a URL-safe slug from an event title: lowercase, runs of
// anything outside [a-z0-9] collapse to a single hyphen, no leading or trailing
// hyphen. The slug is computed once at creation and stored, so historical URLs
// stay stable if the title later changes.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

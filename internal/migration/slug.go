package migration

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun       = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a human-readable name:
// lower-case, whitespace runs become single dashes, everything outside
// [a-z0-9-] is stripped, dash runs collapse, edge dashes are trimmed.
// "Joe's Diner" -> "joes-diner". Deterministic for a given input.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = disallowed.ReplaceAllString(slug, "")
	slug = dashRun.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "organization"
	}
	return slug
}

package sanitizer

import (
	"regexp"
	"strings"
)

var (
	reSlugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	reMultiHyphen = regexp.MustCompile(`-+`)
)

// NormalizeSlug lowercases, replaces whitespace with hyphens and strips
// anything outside [a-z0-9-]. The result may still fail validation
// (e.g. too short); normalization never invents a valid slug.
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = reSlugInvalid.ReplaceAllString(slug, "")
	slug = reMultiHyphen.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

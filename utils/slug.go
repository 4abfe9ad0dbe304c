package utils

import (
	"regexp"

	"github.com/gosimple/slug"
)

const DefaultSlug = "restaurant"

// MaxSlugLength leaves room for a numeric collision suffix.
const MaxSlugLength = 60

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func init() {
	slug.MaxLength = MaxSlugLength
}

// NormalizeSlug returns the first candidate that normalizes to a non-empty
// URL-safe slug (lowercase letters, digits, hyphens), or DefaultSlug.
func NormalizeSlug(candidates ...string) string {
	for _, c := range candidates {
		if s := slug.Make(c); s != "" && slugPattern.MatchString(s) {
			return s
		}
	}
	return DefaultSlug
}

// IsValidSlug reports whether s is already in normalized slug form.
func IsValidSlug(s string) bool {
	return len(s) <= MaxSlugLength+8 && slugPattern.MatchString(s)
}

package posts

import "github.com/goliatone/go-slug"

const fallbackSlug = "post"

// NormalizeSlug applies the default slug normalization rules.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether the slug matches the default rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}

// Slugify derives a slug from a title, falling back to "post" when the title
// has no usable characters.
func Slugify(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		return fallbackSlug
	}
	return normalized
}

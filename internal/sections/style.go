package sections

import (
	"maps"
	"slices"
	"strings"
)

// Style is a set of inline CSS declarations.
type Style map[string]string

// CSS renders the declarations sorted by property name.
func (s Style) CSS() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s))
	for _, key := range slices.Sorted(maps.Keys(s)) {
		parts = append(parts, key+": "+s[key])
	}
	return strings.Join(parts, "; ")
}

// Merge returns a new style with other's declarations applied over s.
func (s Style) Merge(other Style) Style {
	out := make(Style, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

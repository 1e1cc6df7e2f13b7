package sections

import "strings"

// ColorRef names a palette slot, or "custom" for an explicit hex value.
type ColorRef string

const (
	ColorPrimary    ColorRef = "primary"
	ColorSecondary  ColorRef = "secondary"
	ColorAccent     ColorRef = "accent"
	ColorNeutral    ColorRef = "neutral"
	ColorText       ColorRef = "text"
	ColorHeading    ColorRef = "heading"
	ColorButtonBg   ColorRef = "buttonBg"
	ColorButtonText ColorRef = "buttonText"
	ColorCustom     ColorRef = "custom"
)

// Palette holds the site's main colors as hex strings.
type Palette struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Neutral    string `json:"neutral,omitempty"`
	Text       string `json:"text,omitempty"`
	Heading    string `json:"heading,omitempty"`
	ButtonBg   string `json:"buttonBg,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
}

// Lookup returns the palette color for ref. Empty slots are not found.
func (p Palette) Lookup(ref ColorRef) (string, bool) {
	var value string
	switch ref {
	case ColorPrimary:
		value = p.Primary
	case ColorSecondary:
		value = p.Secondary
	case ColorAccent:
		value = p.Accent
	case ColorNeutral:
		value = p.Neutral
	case ColorText:
		value = p.Text
	case ColorHeading:
		value = p.Heading
	case ColorButtonBg:
		value = p.ButtonBg
	case ColorButtonText:
		value = p.ButtonText
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// ResolveColor turns a color reference into a CSS color. A custom reference
// resolves to custom when set.
func ResolveColor(ref ColorRef, custom string, palette Palette) (string, bool) {
	if ref == "" {
		return "", false
	}
	if ref == ColorCustom {
		custom = strings.TrimSpace(custom)
		return custom, custom != ""
	}
	return palette.Lookup(ref)
}

func validColorRef(ref ColorRef) bool {
	switch ref {
	case "", ColorPrimary, ColorSecondary, ColorAccent, ColorNeutral, ColorText,
		ColorHeading, ColorButtonBg, ColorButtonText, ColorCustom:
		return true
	}
	return false
}

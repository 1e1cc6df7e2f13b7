package sections

import "fmt"

// BackgroundType selects how a section background is painted.
type BackgroundType string

const (
	BackgroundNone     BackgroundType = "none"
	BackgroundColor    BackgroundType = "color"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundImage    BackgroundType = "image"
)

var gradientDirections = map[string]string{
	"to-r":  "to right",
	"to-br": "to bottom right",
	"to-b":  "to bottom",
	"to-bl": "to bottom left",
	"to-l":  "to left",
}

const defaultGradientDirection = "to-r"

// Gradient is a two stop linear gradient.
type Gradient struct {
	From       ColorRef `json:"fromRef,omitempty"`
	FromCustom string   `json:"fromCustom,omitempty"`
	To         ColorRef `json:"toRef,omitempty"`
	ToCustom   string   `json:"toCustom,omitempty"`
	Direction  string   `json:"direction,omitempty"`
}

// ImageBackground is a background image with an optional overlay.
type ImageBackground struct {
	URL            string   `json:"url,omitempty"`
	OverlayColor   ColorRef `json:"overlayColorRef,omitempty"`
	OverlayCustom  string   `json:"overlayCustomColor,omitempty"`
	OverlayOpacity *int     `json:"overlayOpacity,omitempty"`
}

// BackgroundStyle computes the inline style of a section background and
// text color. Colors that cannot be resolved are left out.
func BackgroundStyle(s Settings, palette Palette) Style {
	style := Style{}

	switch s.BackgroundType {
	case BackgroundColor:
		if color, ok := ResolveColor(s.BackgroundColor, s.BackgroundCustom, palette); ok {
			style["background-color"] = color
		}
	case BackgroundGradient:
		if s.Gradient == nil {
			break
		}
		from, okFrom := ResolveColor(s.Gradient.From, s.Gradient.FromCustom, palette)
		to, okTo := ResolveColor(s.Gradient.To, s.Gradient.ToCustom, palette)
		if okFrom && okTo {
			direction, ok := gradientDirections[s.Gradient.Direction]
			if !ok {
				direction = gradientDirections[defaultGradientDirection]
			}
			style["background-image"] = fmt.Sprintf("linear-gradient(%s, %s, %s)", direction, from, to)
		}
	case BackgroundImage:
		if s.Image != nil && s.Image.URL != "" {
			style["position"] = "relative"
		}
	}

	if color, ok := ResolveColor(s.TextColor, s.TextCustom, palette); ok {
		style["color"] = color
		style["--section-text-color"] = color
	}
	return style
}

package sections

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	cssLengthPattern = regexp.MustCompile(`^\d+(\.\d+)?(px|rem|em|%|vh|vw)$`)
	anchorIDPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
)

const defaultOverlayOpacity = 50

// Settings are the layout options shared by every page-builder section.
type Settings struct {
	PaddingTop          Padding          `json:"paddingTop,omitempty"`
	PaddingTopCustom    string           `json:"paddingTopCustom,omitempty"`
	PaddingBottom       Padding          `json:"paddingBottom,omitempty"`
	PaddingBottomCustom string           `json:"paddingBottomCustom,omitempty"`
	ContainerWidth      Width            `json:"containerWidth,omitempty"`
	AnchorID            string           `json:"anchorId,omitempty"`
	BackgroundType      BackgroundType   `json:"backgroundType,omitempty"`
	BackgroundColor     ColorRef         `json:"backgroundColorRef,omitempty"`
	BackgroundCustom    string           `json:"backgroundCustomColor,omitempty"`
	Gradient            *Gradient        `json:"backgroundGradient,omitempty"`
	Image               *ImageBackground `json:"backgroundImage,omitempty"`
	TextColor           ColorRef         `json:"textColorRef,omitempty"`
	TextCustom          string           `json:"textCustomColor,omitempty"`
}

// WithDefaults returns a copy with editor defaults filled in.
func (s Settings) WithDefaults() Settings {
	if s.PaddingTop == "" {
		s.PaddingTop = PaddingMedium
	}
	if s.PaddingBottom == "" {
		s.PaddingBottom = PaddingMedium
	}
	if s.ContainerWidth == "" {
		s.ContainerWidth = WidthDefault
	}
	if s.BackgroundType == "" {
		s.BackgroundType = BackgroundNone
	}
	if s.Gradient != nil {
		gradient := *s.Gradient
		if gradient.Direction == "" {
			gradient.Direction = defaultGradientDirection
		}
		s.Gradient = &gradient
	}
	if s.Image != nil && s.Image.OverlayOpacity == nil {
		image := *s.Image
		opacity := defaultOverlayOpacity
		image.OverlayOpacity = &opacity
		s.Image = &image
	}
	return s
}

// Validate checks field formats and enum membership.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.PaddingTop, validation.In(paddingValues()...)),
		validation.Field(&s.PaddingBottom, validation.In(paddingValues()...)),
		validation.Field(&s.PaddingTopCustom, validation.Match(cssLengthPattern).Error("must be a CSS length such as 80px or 5rem")),
		validation.Field(&s.PaddingBottomCustom, validation.Match(cssLengthPattern).Error("must be a CSS length such as 80px or 5rem")),
		validation.Field(&s.ContainerWidth, validation.In(WidthNarrow, WidthDefault, WidthWide, WidthFull)),
		validation.Field(&s.AnchorID, validation.Match(anchorIDPattern).Error("must contain only lowercase letters, numbers, and hyphens")),
		validation.Field(&s.BackgroundType, validation.In(BackgroundNone, BackgroundColor, BackgroundGradient, BackgroundImage)),
		validation.Field(&s.BackgroundColor, validation.By(colorRefRule)),
		validation.Field(&s.TextColor, validation.By(colorRefRule)),
		validation.Field(&s.Gradient),
		validation.Field(&s.Image),
	)
}

// Validate checks gradient stops and direction.
func (g Gradient) Validate() error {
	directions := make([]any, 0, len(gradientDirections))
	for key := range gradientDirections {
		directions = append(directions, key)
	}
	return validation.ValidateStruct(&g,
		validation.Field(&g.From, validation.By(colorRefRule)),
		validation.Field(&g.To, validation.By(colorRefRule)),
		validation.Field(&g.Direction, validation.In(directions...)),
	)
}

// Validate checks the overlay color and opacity range.
func (i ImageBackground) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.OverlayColor, validation.By(colorRefRule)),
		validation.Field(&i.OverlayOpacity, validation.Min(0), validation.Max(100)),
	)
}

func paddingValues() []any {
	return []any{PaddingNone, PaddingSmall, PaddingMedium, PaddingLarge, PaddingXLarge, PaddingCustom}
}

func colorRefRule(value any) error {
	ref, _ := value.(ColorRef)
	if !validColorRef(ref) {
		return validation.NewError("sections.color_ref_invalid", "unknown color reference")
	}
	return nil
}

// Resolved is the render-ready form of Settings.
type Resolved struct {
	AnchorID         string
	SpacingClasses   string
	ContainerClasses string
	Style            Style
}

// Resolve computes classes and inline style for a section.
func Resolve(s Settings, palette Palette) Resolved {
	out := Resolved{
		AnchorID:         strings.TrimSpace(s.AnchorID),
		ContainerClasses: ContainerWidth(s.ContainerWidth),
		Style:            BackgroundStyle(s, palette),
	}
	spacing := Spacing(s.PaddingTop, s.PaddingBottom)
	if spacing.Custom {
		out.Style = out.Style.Merge(CustomSpacing(s.PaddingTop, s.PaddingBottom, s.PaddingTopCustom, s.PaddingBottomCustom))
	} else {
		out.SpacingClasses = spacing.Classes
	}
	return out
}

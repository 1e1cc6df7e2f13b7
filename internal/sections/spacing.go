package sections

import "strings"

// Padding is a named vertical spacing step.
type Padding string

const (
	PaddingNone   Padding = "none"
	PaddingSmall  Padding = "small"
	PaddingMedium Padding = "medium"
	PaddingLarge  Padding = "large"
	PaddingXLarge Padding = "xlarge"
	PaddingCustom Padding = "custom"
)

var (
	verticalSpacing = map[Padding]string{
		PaddingNone:   "",
		PaddingSmall:  "py-8 md:py-12",
		PaddingMedium: "py-16 md:py-24",
		PaddingLarge:  "py-24 md:py-32",
		PaddingXLarge: "py-32 md:py-48",
	}
	topSpacing = map[Padding]string{
		PaddingNone:   "",
		PaddingSmall:  "pt-8 md:pt-12",
		PaddingMedium: "pt-16 md:pt-24",
		PaddingLarge:  "pt-24 md:pt-32",
		PaddingXLarge: "pt-32 md:pt-48",
	}
	bottomSpacing = map[Padding]string{
		PaddingNone:   "",
		PaddingSmall:  "pb-8 md:pb-12",
		PaddingMedium: "pb-16 md:pb-24",
		PaddingLarge:  "pb-24 md:pb-32",
		PaddingXLarge: "pb-32 md:pb-48",
	}
)

// SpacingResult is either a class list or a signal that inline custom
// padding applies instead.
type SpacingResult struct {
	Classes string
	Custom  bool
}

// Spacing resolves padding steps to utility classes. Unknown steps fall back
// to medium per side; an unknown step used on both sides yields no classes.
func Spacing(top, bottom Padding) SpacingResult {
	if top == PaddingCustom || bottom == PaddingCustom {
		return SpacingResult{Custom: true}
	}
	if top == "" && bottom == "" {
		return SpacingResult{Classes: verticalSpacing[PaddingMedium]}
	}
	if top == bottom {
		return SpacingResult{Classes: verticalSpacing[top]}
	}

	topClass, ok := topSpacing[top]
	if !ok {
		topClass = topSpacing[PaddingMedium]
	}
	bottomClass, ok := bottomSpacing[bottom]
	if !ok {
		bottomClass = bottomSpacing[PaddingMedium]
	}
	return SpacingResult{Classes: strings.TrimSpace(topClass + " " + bottomClass)}
}

// CustomSpacing returns inline padding for the sides set to custom.
func CustomSpacing(top, bottom Padding, topCustom, bottomCustom string) Style {
	style := Style{}
	if top == PaddingCustom && strings.TrimSpace(topCustom) != "" {
		style["padding-top"] = strings.TrimSpace(topCustom)
	}
	if bottom == PaddingCustom && strings.TrimSpace(bottomCustom) != "" {
		style["padding-bottom"] = strings.TrimSpace(bottomCustom)
	}
	return style
}

// Width is the container width of a section.
type Width string

const (
	WidthNarrow  Width = "narrow"
	WidthDefault Width = "default"
	WidthWide    Width = "wide"
	WidthFull    Width = "full"
)

var containerWidths = map[Width]string{
	WidthNarrow:  "max-w-4xl mx-auto",
	WidthDefault: "container mx-auto",
	WidthWide:    "max-w-screen-2xl mx-auto",
	WidthFull:    "max-w-none",
}

// ContainerWidth maps a width to container classes, defaulting to the
// standard container.
func ContainerWidth(width Width) string {
	if classes, ok := containerWidths[width]; ok {
		return classes
	}
	return containerWidths[WidthDefault]
}

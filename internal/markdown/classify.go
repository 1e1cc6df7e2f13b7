package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-sitecms/richtext"
)

// LineKind tags the result of classifying one trimmed source line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineHeading
	LineListItem
	LineText
	// LineIgnored marks lines that start with '#' but are not headings
	// (e.g. "#hashtag" or "#######"). They end the current paragraph and
	// produce no block.
	LineIgnored
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineHeading:
		return "heading"
	case LineListItem:
		return "list_item"
	case LineIgnored:
		return "ignored"
	default:
		return "text"
	}
}

// Line is the classified form of one source line.
type Line struct {
	Kind LineKind
	// Text holds the content with any heading or list marker removed.
	Text string
	// Level is the number of '#' characters for headings.
	Level int
	// ListType is richtext.ListBullet or richtext.ListNumber for list items.
	ListType string
}

var (
	headingPattern    = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	listMarkerPattern = regexp.MustCompile(`^(-|\d+\.)\s`)
)

type lineMatcher func(trimmed string) (Line, bool)

// matchers are evaluated in order; the first match wins.
var matchers = []lineMatcher{
	matchBlank,
	matchHeading,
	matchListItem,
}

// ClassifyLine trims line and reports which kind of block it starts.
func ClassifyLine(line string) Line {
	trimmed := strings.TrimSpace(line)
	for _, match := range matchers {
		if out, ok := match(trimmed); ok {
			return out
		}
	}
	return Line{Kind: LineText, Text: trimmed}
}

func matchBlank(trimmed string) (Line, bool) {
	if trimmed == "" {
		return Line{Kind: LineBlank}, true
	}
	return Line{}, false
}

func matchHeading(trimmed string) (Line, bool) {
	if !strings.HasPrefix(trimmed, "#") {
		return Line{}, false
	}
	groups := headingPattern.FindStringSubmatch(trimmed)
	if groups == nil {
		return Line{Kind: LineIgnored, Text: trimmed}, true
	}
	return Line{Kind: LineHeading, Level: len(groups[1]), Text: groups[2]}, true
}

func matchListItem(trimmed string) (Line, bool) {
	loc := listMarkerPattern.FindStringSubmatchIndex(trimmed)
	if loc == nil {
		return Line{}, false
	}
	listType := richtext.ListNumber
	if trimmed[loc[2]:loc[3]] == "-" {
		listType = richtext.ListBullet
	}
	return Line{Kind: LineListItem, ListType: listType, Text: trimmed[loc[1]:]}, true
}

// HeadingStyle maps a markdown heading level to a block style. Levels one
// and two collapse to h2, deeper levels to h3.
func HeadingStyle(level int) string {
	if level <= 2 {
		return richtext.StyleH2
	}
	return richtext.StyleH3
}

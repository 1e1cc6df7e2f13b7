package markdown

import (
	"regexp"
	"strings"
)

var titlePattern = regexp.MustCompile(`(?m)^#+ (.+)$`)

// ExtractTitle finds the first heading line in markdown. When found, the
// heading text is returned as the title and the line is removed from the
// body. Otherwise body is the unchanged input and ok is false.
func ExtractTitle(markdown string) (title, body string, ok bool) {
	loc := titlePattern.FindStringSubmatchIndex(markdown)
	if loc == nil {
		return "", markdown, false
	}
	title = strings.TrimSpace(markdown[loc[2]:loc[3]])
	body = strings.TrimSpace(markdown[:loc[0]] + markdown[loc[1]:])
	return title, body, true
}

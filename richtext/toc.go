package richtext

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
)

// TOCItem is one entry of a table of contents.
type TOCItem struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// TableOfContents lists every h2 block with a unique anchor ID. Repeated
// headings receive -1, -2... suffixes in document order.
func TableOfContents(doc Document) []TOCItem {
	seen := map[string]struct{}{}
	var items []TOCItem
	for _, block := range doc {
		if block.Style != StyleH2 || block.ListItem != "" {
			continue
		}
		text := block.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		base := AnchorID(text)
		id := base
		for counter := 1; ; counter++ {
			if _, taken := seen[id]; !taken {
				break
			}
			id = fmt.Sprintf("%s-%d", base, counter)
		}
		seen[id] = struct{}{}
		items = append(items, TOCItem{ID: id, Text: text, Level: 2})
	}
	return items
}

// AnchorID converts heading text into a URL fragment.
func AnchorID(text string) string {
	normalized, err := slug.Normalize(text)
	if err != nil || normalized == "" {
		return "section"
	}
	return normalized
}

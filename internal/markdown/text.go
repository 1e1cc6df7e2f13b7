package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// TextExtractor renders markdown and reads back its visible text. Prompts
// built from editor content use it so the model never sees markup.
type TextExtractor struct {
	parser interfaces.MarkdownParser
}

// NewTextExtractor wraps parser. A nil parser falls back to goldmark with
// safe mode enabled.
func NewTextExtractor(parser interfaces.MarkdownParser) *TextExtractor {
	if parser == nil {
		parser = NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})
	}
	return &TextExtractor{parser: parser}
}

// PlainText returns the text of markdown with whitespace collapsed. Block
// elements are separated by blank lines.
func (e *TextExtractor) PlainText(markdown string) (string, error) {
	rendered, err := e.parser.Parse([]byte(markdown))
	if err != nil {
		return "", err
	}
	return HTMLText(rendered)
}

// HTMLText extracts visible text from an HTML fragment.
func HTMLText(fragment []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("markdown text: %w", err)
	}
	doc.Find("script, style").Remove()

	var parts []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, blockquote, pre, td").Each(func(_ int, s *goquery.Selection) {
		if s.Find("p").Length() > 0 {
			return
		}
		if text := collapseSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return collapseSpace(doc.Text()), nil
	}
	return strings.Join(parts, "\n\n"), nil
}

func collapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/goliatone/go-sitecms/richtext"
)

var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// Converter turns the constrained markdown dialect produced by the writing
// assistant into rich-text documents. It is safe for concurrent use.
type Converter struct {
	logger interfaces.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithConverterLogger sets the logger used for debug diagnostics.
func WithConverterLogger(logger interfaces.Logger) ConverterOption {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConverter builds a converter.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

var defaultConverter = NewConverter()

// Convert converts markdown with a default converter.
func Convert(markdown string) richtext.Document {
	return defaultConverter.Convert(markdown)
}

// Convert never fails: malformed syntax degrades to literal text and empty
// input yields an empty document.
func (c *Converter) Convert(markdown string) richtext.Document {
	b := &documentBuilder{logger: c.logger, doc: richtext.Document{}}

	source := imagePattern.ReplaceAllString(markdown, "")
	for _, raw := range strings.Split(source, "\n") {
		line := ClassifyLine(raw)
		switch line.Kind {
		case LineBlank, LineIgnored:
			b.flushParagraph()
		case LineHeading:
			b.flushParagraph()
			b.heading(line)
		case LineListItem:
			b.flushParagraph()
			b.listItem(line)
		default:
			b.paragraph = append(b.paragraph, line.Text)
		}
	}
	b.flushParagraph()

	c.logger.Debug("markdown.convert.completed", "blocks", len(b.doc))
	return b.doc
}

type documentBuilder struct {
	logger    interfaces.Logger
	doc       richtext.Document
	paragraph []string
}

func (b *documentBuilder) flushParagraph() {
	if len(b.paragraph) == 0 {
		return
	}
	text := strings.TrimSpace(strings.Join(b.paragraph, " "))
	b.paragraph = b.paragraph[:0]
	if text == "" {
		return
	}
	spans, defs := ParseInline(text, 0)
	b.append(richtext.Block{
		Style:    richtext.StyleNormal,
		MarkDefs: defs,
		Children: spans,
	})
}

// heading emits a heading block. Headings do not keep link definitions, so
// link marks are removed from their spans and only the link text survives.
func (b *documentBuilder) heading(line Line) {
	spans, defs := ParseInline(line.Text, 0)
	if len(defs) > 0 {
		spans = stripMarks(spans, defs)
		b.logger.Debug("markdown.convert.heading_link_dropped", "links", len(defs), "heading", line.Text)
	}
	b.append(richtext.Block{
		Style:    HeadingStyle(line.Level),
		Children: spans,
	})
}

func (b *documentBuilder) listItem(line Line) {
	spans, defs := ParseInline(line.Text, 0)
	b.append(richtext.Block{
		Style:    richtext.StyleNormal,
		ListItem: line.ListType,
		Level:    1,
		MarkDefs: defs,
		Children: spans,
	})
}

func (b *documentBuilder) append(block richtext.Block) {
	block.Type = richtext.TypeBlock
	block.Key = richtext.BlockKey(len(b.doc))
	if block.MarkDefs == nil {
		block.MarkDefs = []richtext.MarkDef{}
	}
	b.doc = append(b.doc, block)
}

func stripMarks(spans []richtext.Span, defs []richtext.MarkDef) []richtext.Span {
	drop := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		drop[def.Key] = struct{}{}
	}
	out := make([]richtext.Span, len(spans))
	for i, span := range spans {
		marks := make([]string, 0, len(span.Marks))
		for _, mark := range span.Marks {
			if _, ok := drop[mark]; !ok {
				marks = append(marks, mark)
			}
		}
		span.Marks = marks
		out[i] = span
	}
	return out
}

package richtext

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	TypeBlock = "block"
	TypeSpan  = "span"
)

// Block styles.
const (
	StyleNormal = "normal"
	StyleH2     = "h2"
	StyleH3     = "h3"
)

// List item kinds.
const (
	ListBullet = "bullet"
	ListNumber = "number"
)

const (
	// MarkStrong is the built-in decorator applied to bold runs.
	MarkStrong = "strong"
	// MarkDefLink is the mark definition type used for hyperlinks.
	MarkDefLink = "link"
)

// Kind distinguishes the block variants carried by Block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindListItem
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list_item"
	default:
		return "paragraph"
	}
}

// Span is a run of text sharing the same marks.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// MarkDef holds block-scoped metadata referenced by span marks.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// Block is one structural unit of rich content. Paragraphs, headings and
// list items share the same shape; Kind reports which variant a block is.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key"`
	Style    string    `json:"style"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	MarkDefs []MarkDef `json:"markDefs"`
	Children []Span    `json:"children"`
}

// Document is an ordered list of blocks.
type Document []Block

// NewSpan builds a span, normalising nil marks to an empty set.
func NewSpan(key, text string, marks ...string) Span {
	if marks == nil {
		marks = []string{}
	}
	return Span{Type: TypeSpan, Key: key, Text: text, Marks: marks}
}

// NewLink builds a link mark definition.
func NewLink(key, href string) MarkDef {
	return MarkDef{Key: key, Type: MarkDefLink, Href: href}
}

// SpanKey returns the key assigned to the span at index within a block.
func SpanKey(index int) string {
	return fmt.Sprintf("span-%d", index)
}

// BlockKey returns the key assigned to the block at index within a document.
func BlockKey(index int) string {
	return fmt.Sprintf("block-%d", index)
}

// LinkKey returns the mark key for the link definition at index within a block.
func LinkKey(index int) string {
	return fmt.Sprintf("link-%d", index)
}

// Kind reports the variant represented by the block.
func (b Block) Kind() Kind {
	switch {
	case b.ListItem != "":
		return KindListItem
	case b.Style == StyleH2 || b.Style == StyleH3:
		return KindHeading
	default:
		return KindParagraph
	}
}

// Text concatenates the text of every span in the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, span := range b.Children {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// MarkDef looks up a mark definition by key.
func (b Block) MarkDef(key string) (MarkDef, bool) {
	for _, def := range b.MarkDefs {
		if def.Key == key {
			return def, true
		}
	}
	return MarkDef{}, false
}

// PlainText joins the visible text of all blocks with blank lines.
func (d Document) PlainText() string {
	parts := make([]string, 0, len(d))
	for _, block := range d {
		if text := block.Text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Links returns the href of every link definition in document order.
func (d Document) Links() []string {
	var out []string
	for _, block := range d {
		for _, def := range block.MarkDefs {
			if def.Type == MarkDefLink {
				out = append(out, def.Href)
			}
		}
	}
	return out
}

// Value stores the document as JSON.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("richtext: encode document: %w", err)
	}
	return string(raw), nil
}

// Scan decodes a JSON document read from storage.
func (d *Document) Scan(src any) error {
	if d == nil {
		return errors.New("richtext: scan into nil document")
	}
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Document{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("richtext: cannot scan %T into document", src)
	}
	if len(raw) == 0 {
		*d = Document{}
		return nil
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("richtext: decode document: %w", err)
	}
	*d = out
	return nil
}

package interfaces

import (
	"time"

	"github.com/goliatone/go-sitecms/richtext"
)

// MarkdownParser renders Markdown into HTML for previews and text
// extraction.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering, keeping option names readable
// for configuration files and flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// RichTextConverter turns Markdown into a stored rich-text document.
type RichTextConverter interface {
	Convert(markdown string) richtext.Document
}

// Draft is a Markdown file discovered on disk together with its
// frontmatter.
type Draft struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	LastModified time.Time
	Checksum     []byte
}

// FrontMatter models the metadata block at the top of a draft.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Excerpt     string         `yaml:"excerpt" json:"excerpt"`
	Status      string         `yaml:"status" json:"status"`
	Keywords    []string       `yaml:"keywords" json:"keywords"`
	Date        time.Time      `yaml:"date" json:"date"`
	Draft       bool           `yaml:"draft" json:"draft"`
	MetaTitle   string         `yaml:"meta_title" json:"meta_title"`
	Description string         `yaml:"meta_description" json:"meta_description"`
	NoIndex     bool           `yaml:"noindex" json:"noindex"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
}

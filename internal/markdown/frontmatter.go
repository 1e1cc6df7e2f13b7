package markdown

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// ParseFrontMatter splits source into its metadata block and Markdown body.
// Files without frontmatter return an empty FrontMatter and the full body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta interfaces.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Slug = strings.TrimSpace(meta.Slug)
	meta.Status = strings.ToLower(strings.TrimSpace(meta.Status))
	return meta, body, nil
}

// BuildDraft assembles a Draft from a file path, its raw content and the
// modification time.
func BuildDraft(path string, source []byte, modified time.Time) (*interfaces.Draft, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sum := sha256.Sum256(source)
	return &interfaces.Draft{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
		Checksum:     sum[:],
	}, nil
}

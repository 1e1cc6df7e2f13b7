package posts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitecms/richtext"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Sources record how a post was created.
const (
	SourceManual   = "manual"
	SourceAI       = "ai"
	SourceMarkdown = "markdown"
)

// Post is a blog article with a rich-text body.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID              uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Title           string            `bun:"title,notnull" json:"title"`
	Slug            string            `bun:"slug,notnull,unique" json:"slug"`
	Excerpt         string            `bun:"excerpt" json:"excerpt,omitempty"`
	Body            richtext.Document `bun:"body,type:jsonb" json:"body"`
	Status          string            `bun:"status,notnull,default:'draft'" json:"status"`
	Source          string            `bun:"source,notnull,default:'manual'" json:"source"`
	PublishedAt     *time.Time        `bun:"published_at,nullzero" json:"published_at,omitempty"`
	ImageURL        string            `bun:"image_url" json:"image_url,omitempty"`
	ImageAlt        string            `bun:"image_alt" json:"image_alt,omitempty"`
	ImagePrompt     string            `bun:"image_prompt" json:"image_prompt,omitempty"`
	MetaTitle       string            `bun:"meta_title" json:"meta_title,omitempty"`
	MetaDescription string            `bun:"meta_description" json:"meta_description,omitempty"`
	NoIndex         bool              `bun:"noindex,notnull,default:false" json:"noindex"`
	Checksum        string            `bun:"checksum" json:"checksum,omitempty"`
	CreatedAt       time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Published reports whether the post is publicly visible.
func (p *Post) Published() bool {
	return p != nil && p.Status == StatusPublished
}

// SortTime is the timestamp used to order posts newest first.
func (p *Post) SortTime() time.Time {
	if p.PublishedAt != nil && !p.PublishedAt.IsZero() {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// Image describes a featured image attached to a post.
type Image struct {
	URL           string `json:"url"`
	AltText       string `json:"alt_text,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// SEO holds search metadata for a post.
type SEO struct {
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	NoIndex         bool   `json:"noindex,omitempty"`
}

// CreatePostRequest captures the input for Service.Create. An empty Slug is
// derived from Title.
type CreatePostRequest struct {
	Title       string
	Slug        string
	Excerpt     string
	Body        richtext.Document
	Status      string
	Source      string
	PublishedAt *time.Time
	Image       *Image
	SEO         SEO
	Checksum    string
}

// UpdatePostRequest replaces the editable fields of an existing post.
type UpdatePostRequest struct {
	ID       uuid.UUID
	Title    string
	Excerpt  string
	Body     richtext.Document
	Image    *Image
	SEO      SEO
	Checksum string
}

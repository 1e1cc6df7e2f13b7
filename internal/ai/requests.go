package ai

import (
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/richtext"
)

const (
	defaultTopicCount = 5
	maxTopicCount     = 20
	defaultPostStyle  = "professional"

	excerptContentLimit = 2000
	seoContentLimit     = 3000

	DefaultImageSize    = "1024x1024"
	DefaultImageQuality = "standard"
	FeaturedImageSize   = "1792x1024"
)

var (
	imageQualities = []any{"standard", "hd"}
	imageSizes     = []any{"1024x1024", "1792x1024", "1024x1792"}
	imageStyles    = []any{
		ImageStylePhotographic, ImageStyleDigitalArt, ImageStyleMinimalist,
		ImageStyleAbstract, ImageStyleIllustration, ImageStyleNatural,
	}
)

// Topic is a suggested blog post.
type Topic struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// TopicsRequest asks for topic suggestions.
type TopicsRequest struct {
	Profile        *site.Profile    `json:"businessProfile,omitempty"`
	Brief          *site.BrandBrief `json:"-"`
	Services       []string         `json:"services,omitempty"`
	ExistingTopics []string         `json:"existingTopics,omitempty"`
	FocusTopics    []string         `json:"focusTopics,omitempty"`
	ExcludeTopics  []string         `json:"excludeTopics,omitempty"`
	Count          int              `json:"count,omitempty"`
}

func (r TopicsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Count, validation.Min(0), validation.Max(maxTopicCount)),
	)
}

// BlogPostRequest asks for a complete post.
type BlogPostRequest struct {
	Topic           string           `json:"topic"`
	Keywords        []string         `json:"keywords,omitempty"`
	Style           string           `json:"style,omitempty"`
	WordCount       string           `json:"wordCount,omitempty"`
	Profile         *site.Profile    `json:"businessProfile,omitempty"`
	Brief           *site.BrandBrief `json:"-"`
	GenerateImage   *bool            `json:"generateImage,omitempty"`
	ImageStyle      string           `json:"imageStyle,omitempty"`
	ImageQuality    string           `json:"imageQuality,omitempty"`
	RelatedArticles []RelatedArticle `json:"relatedArticles,omitempty"`
}

func (r BlogPostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Topic, validation.By(notBlank("topic is required"))),
		validation.Field(&r.WordCount, validation.In(site.WordCountShort, site.WordCountMedium, site.WordCountLong)),
		validation.Field(&r.ImageStyle, validation.In(imageStyles...)),
		validation.Field(&r.ImageQuality, validation.In(imageQualities...)),
	)
}

// SEOMeta is the generated search metadata of a page.
type SEOMeta struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// BlogPost is a generated post ready to be stored.
type BlogPost struct {
	Title    string            `json:"title"`
	Markdown string            `json:"-"`
	Body     richtext.Document `json:"body"`
	Excerpt  string            `json:"excerpt"`
	SEO      SEOMeta           `json:"seo"`
	Image    *ImageResult      `json:"imageAsset"`
}

// DraftRequest maps the generated post onto a draft stored under slug.
func (p *BlogPost) DraftRequest(slug string) posts.CreatePostRequest {
	req := posts.CreatePostRequest{
		Title:   p.Title,
		Slug:    slug,
		Excerpt: p.Excerpt,
		Body:    p.Body,
		Status:  posts.StatusDraft,
		Source:  posts.SourceAI,
		SEO: posts.SEO{
			MetaTitle:       p.SEO.MetaTitle,
			MetaDescription: p.SEO.MetaDescription,
		},
	}
	if p.Image != nil {
		req.Image = &posts.Image{
			URL:           p.Image.URL,
			AltText:       "Featured image for " + p.Title,
			RevisedPrompt: p.Image.RevisedPrompt,
		}
	}
	return req
}

// ExcerptRequest asks for a teaser of an existing post. Content is either
// a markdown string or a stored rich-text document.
type ExcerptRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content,omitempty"`
}

func (r ExcerptRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" && !hasContent(r.Content) {
		return validation.Errors{"title": validation.NewError("validation_required", "title or content is required")}
	}
	return nil
}

// SEORequest asks for metadata of any page.
type SEORequest struct {
	Content   json.RawMessage `json:"content"`
	PageTitle string          `json:"pageTitle,omitempty"`
	PageType  string          `json:"pageType,omitempty"`
}

func (r SEORequest) Validate() error {
	if !hasContent(r.Content) {
		return validation.Errors{"content": validation.NewError("validation_required", "content is required")}
	}
	return nil
}

// ImagePromptRequest asks for a standalone image.
type ImagePromptRequest struct {
	Prompt  string `json:"prompt"`
	Style   string `json:"style,omitempty"`
	Size    string `json:"size,omitempty"`
	Quality string `json:"quality,omitempty"`
}

func (r ImagePromptRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Prompt, validation.By(notBlank("prompt is required"))),
		validation.Field(&r.Style, validation.In(imageStyles...)),
		validation.Field(&r.Size, validation.In(imageSizes...)),
		validation.Field(&r.Quality, validation.In(imageQualities...)),
	)
}

// AltTextRequest asks for an accessibility description of a hosted image.
type AltTextRequest struct {
	ImageURL string `json:"imageUrl"`
}

func (r AltTextRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ImageURL, validation.Required.Error("image URL is required"), is.URL),
	)
}

// PromptContent turns request content into prompt text. Strings are used
// as-is; documents and other JSON values are sent in their JSON form,
// truncated to limit.
func PromptContent(raw json.RawMessage, limit int) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return Truncate(strings.TrimSpace(string(raw)), limit)
}

func hasContent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	switch trimmed {
	case "", "null", `""`, "[]", "{}", "false", "0":
		return false
	}
	return true
}

func notBlank(message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", message)
		}
		return nil
	}
}

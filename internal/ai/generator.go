package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	topicsTemperature  = 0.8
	writerTemperature  = 0.7
	summaryTemperature = 0.5
	shortMaxTokens     = 100
	seoMaxTokens       = 200
)

// Generator produces marketing content through a Completer.
type Generator struct {
	completer   Completer
	converter   interfaces.RichTextConverter
	logger      interfaces.Logger
	visionModel string
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithConverter overrides the markdown to rich-text converter.
func WithConverter(converter interfaces.RichTextConverter) GeneratorOption {
	return func(g *Generator) {
		if converter != nil {
			g.converter = converter
		}
	}
}

// WithVisionModel sets the model used for image analysis.
func WithVisionModel(model string) GeneratorOption {
	return func(g *Generator) {
		if model = strings.TrimSpace(model); model != "" {
			g.visionModel = model
		}
	}
}

func WithLogger(logger interfaces.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func NewGenerator(completer Completer, opts ...GeneratorOption) *Generator {
	g := &Generator{
		completer:   completer,
		logger:      logging.NoOp(),
		visionModel: DefaultVisionModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.converter == nil {
		g.converter = markdown.NewConverter(markdown.WithConverterLogger(g.logger))
	}
	return g
}

// GenerateTopics asks for topic suggestions. The provider may answer with
// {"topics": [...]} or with a bare array.
func (g *Generator) GenerateTopics(ctx context.Context, req TopicsRequest) ([]Topic, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	count := req.Count
	if count <= 0 {
		count = defaultTopicCount
	}
	in := TopicContextInput{
		Brief:          req.Brief,
		Services:       req.Services,
		FocusTopics:    req.FocusTopics,
		ExcludeTopics:  req.ExcludeTopics,
		ExistingTopics: req.ExistingTopics,
	}
	if req.Profile != nil {
		in.CompanyName = req.Profile.CompanyName
		in.Description = req.Profile.Description
	}

	text, err := g.complete(ctx, CompletionRequest{
		System:      topicsSystemPrompt,
		User:        TopicsUserPrompt(count, TopicContext(in)),
		Temperature: temperature(topicsTemperature),
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}
	topics, err := parseTopics(text)
	if err != nil {
		return nil, err
	}
	g.logger.Info("ai.topics.generated", "count", len(topics))
	return topics, nil
}

// GenerateBlogPost writes a full post, converts it to rich text and adds an
// excerpt, SEO metadata and optionally a featured image. Image failures are
// logged and leave Image nil.
func (g *Generator) GenerateBlogPost(ctx context.Context, req BlogPostRequest) (*BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	style := req.Style
	if style == "" {
		style = defaultPostStyle
	}
	in := BlogPostContextInput{
		Brief:           req.Brief,
		Keywords:        req.Keywords,
		RelatedArticles: req.RelatedArticles,
	}
	if req.Profile != nil {
		in.CompanyName = req.Profile.CompanyName
	}

	source, err := g.complete(ctx, CompletionRequest{
		System:      BlogPostSystemPrompt(style, WordRange(req.WordCount), VoiceInstructions(req.Brief)),
		User:        BlogPostUserPrompt(req.Topic, BlogPostContext(in)),
		Temperature: temperature(writerTemperature),
	})
	if err != nil {
		return nil, err
	}

	title, body, ok := markdown.ExtractTitle(source)
	if !ok {
		title = req.Topic
	}
	post := &BlogPost{
		Title:    title,
		Markdown: body,
		Body:     g.converter.Convert(body),
	}

	summarySource := Truncate(source, summarySourceChars)
	excerpt, err := g.completer.Complete(ctx, CompletionRequest{
		System:      summarySystemPrompt,
		User:        summarySource,
		Temperature: temperature(summaryTemperature),
	})
	if err != nil {
		return nil, fmt.Errorf("ai: excerpt: %w", err)
	}
	post.Excerpt = strings.TrimSpace(excerpt)

	seoText, err := g.completer.Complete(ctx, CompletionRequest{
		System:      postSEOSystemPrompt,
		User:        summarySource,
		Temperature: temperature(summaryTemperature),
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: seo: %w", err)
	}
	if post.SEO, err = parseSEO(seoText); err != nil {
		return nil, err
	}

	if g.wantsImage(req) {
		image, err := g.completer.GenerateImage(ctx, ImageRequest{
			Prompt:  ImagePrompt(title, firstNonEmpty(req.ImageStyle, briefImageStyle(req), ImageStylePhotographic)),
			Size:    FeaturedImageSize,
			Quality: firstNonEmpty(req.ImageQuality, briefImageQuality(req), DefaultImageQuality),
		})
		if err != nil {
			g.logger.Warn("ai.blog_post.image_failed", "error", err, "title", title)
		} else {
			post.Image = image
		}
	}

	g.logger.Info("ai.blog_post.generated",
		"title", title,
		"blocks", len(post.Body),
		"image", post.Image != nil,
	)
	return post, nil
}

// GenerateExcerpt writes a teaser for an existing post.
func (g *Generator) GenerateExcerpt(ctx context.Context, req ExcerptRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	content := ""
	if hasContent(req.Content) {
		content = PromptContent(req.Content, excerptContentLimit)
	}
	text, err := g.complete(ctx, CompletionRequest{
		User:      ExcerptPrompt(strings.TrimSpace(req.Title), content),
		MaxTokens: shortMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateSEOMeta writes meta title and description for a page.
func (g *Generator) GenerateSEOMeta(ctx context.Context, req SEORequest) (*SEOMeta, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	text, err := g.complete(ctx, CompletionRequest{
		User:      SEOPrompt(req.PageType, req.PageTitle, PromptContent(req.Content, seoContentLimit)),
		MaxTokens: seoMaxTokens,
		JSON:      true,
	})
	if err != nil {
		return nil, err
	}
	meta, err := parseSEO(text)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// GenerateImage creates a standalone image from a styled prompt.
func (g *Generator) GenerateImage(ctx context.Context, req ImagePromptRequest) (*ImageResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	image, err := g.completer.GenerateImage(ctx, ImageRequest{
		Prompt:  StyledImagePrompt(strings.TrimSpace(req.Prompt), req.Style),
		Size:    firstNonEmpty(req.Size, DefaultImageSize),
		Quality: firstNonEmpty(req.Quality, DefaultImageQuality),
	})
	if err != nil {
		return nil, err
	}
	if image == nil || image.URL == "" {
		return nil, ErrNoImage
	}
	g.logger.Info("ai.image.generated", "style", req.Style)
	return image, nil
}

// GenerateAltText describes a hosted image for screen readers.
func (g *Generator) GenerateAltText(ctx context.Context, req AltTextRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	text, err := g.completer.Complete(ctx, CompletionRequest{
		User:      altTextPrompt,
		ImageURL:  req.ImageURL,
		MaxTokens: shortMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (g *Generator) complete(ctx context.Context, req CompletionRequest) (string, error) {
	text, err := g.completer.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (g *Generator) wantsImage(req BlogPostRequest) bool {
	if req.GenerateImage != nil {
		return *req.GenerateImage
	}
	return req.Brief == nil || req.Brief.ImagesEnabled()
}

func parseTopics(text string) ([]Topic, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") {
		var topics []Topic
		if err := json.Unmarshal([]byte(trimmed), &topics); err != nil {
			return nil, fmt.Errorf("ai: decode topics: %w", err)
		}
		return topics, nil
	}
	var wrapped struct {
		Topics []Topic `json:"topics"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapped); err != nil {
		return nil, fmt.Errorf("ai: decode topics: %w", err)
	}
	if wrapped.Topics == nil {
		return []Topic{}, nil
	}
	return wrapped.Topics, nil
}

func parseSEO(text string) (SEOMeta, error) {
	var meta SEOMeta
	if strings.TrimSpace(text) == "" {
		return meta, nil
	}
	if err := json.Unmarshal([]byte(text), &meta); err != nil {
		return meta, fmt.Errorf("ai: decode seo metadata: %w", err)
	}
	return meta, nil
}

func briefImageStyle(req BlogPostRequest) string {
	if req.Brief == nil {
		return ""
	}
	return req.Brief.AIImageStyle
}

func briefImageQuality(req BlogPostRequest) string {
	if req.Brief == nil {
		return ""
	}
	return req.Brief.AIImageQuality
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

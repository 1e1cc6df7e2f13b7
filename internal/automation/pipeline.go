// Package automation runs the scheduled blog generation pipeline.
package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-sitecms/internal/ai"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	recentPostLimit  = 10
	defaultPostStyle = "professional"

	ReasonDisabled = "AI content automation is not enabled"
)

var ErrNoTopic = errors.New("automation: no topic generated")

// ContentGenerator is the slice of the AI generator the pipeline needs.
type ContentGenerator interface {
	GenerateTopics(ctx context.Context, req ai.TopicsRequest) ([]ai.Topic, error)
	GenerateBlogPost(ctx context.Context, req ai.BlogPostRequest) (*ai.BlogPost, error)
}

// RunResult reports what a pipeline run did.
type RunResult struct {
	Skipped   bool
	Reason    string
	Topic     *ai.Topic
	Post      *posts.Post
	Published bool
	Notified  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithNotifier(notifier notify.Notifier) Option {
	return func(p *Pipeline) {
		if notifier != nil {
			p.notifier = notifier
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Pipeline picks a topic, writes a post and stores it.
type Pipeline struct {
	posts     posts.Service
	site      site.Service
	generator ContentGenerator
	notifier  notify.Notifier
	logger    interfaces.Logger
}

func NewPipeline(postSvc posts.Service, siteSvc site.Service, generator ContentGenerator, opts ...Option) *Pipeline {
	p := &Pipeline{
		posts:     postSvc,
		site:      siteSvc,
		generator: generator,
		notifier:  notify.NoopNotifier{},
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one automation cycle. A disabled profile yields a skipped
// result rather than an error. Notification failures are logged only.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	profile, err := p.site.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("automation: load profile: %w", err)
	}
	settings := profile.Automation
	if !settings.Enabled {
		p.logger.Info("automation.run.skipped", "reason", ReasonDisabled)
		return &RunResult{Skipped: true, Reason: ReasonDisabled}, nil
	}

	brief, err := p.site.BrandBrief(ctx)
	if err != nil {
		return nil, fmt.Errorf("automation: load brand brief: %w", err)
	}
	recent, err := p.posts.ListRecent(ctx, recentPostLimit)
	if err != nil {
		return nil, fmt.Errorf("automation: list recent posts: %w", err)
	}
	offerings, err := p.site.Offerings(ctx)
	if err != nil {
		return nil, fmt.Errorf("automation: list services: %w", err)
	}

	existing := make([]string, 0, len(recent))
	related := make([]ai.RelatedArticle, 0, len(recent))
	for _, post := range recent {
		existing = append(existing, post.Title)
		related = append(related, ai.RelatedArticle{Title: post.Title, Slug: post.Slug})
	}
	services := make([]string, 0, len(offerings))
	for _, offering := range offerings {
		services = append(services, offering.Title)
	}

	topics, err := p.generator.GenerateTopics(ctx, ai.TopicsRequest{
		Profile:        profile,
		Brief:          brief,
		Services:       services,
		ExistingTopics: existing,
		FocusTopics:    settings.FocusTopics,
		ExcludeTopics:  settings.ExcludeTopics,
		Count:          1,
	})
	if err != nil {
		return nil, fmt.Errorf("automation: generate topic: %w", err)
	}
	if len(topics) == 0 || strings.TrimSpace(topics[0].Title) == "" {
		return nil, ErrNoTopic
	}
	topic := topics[0]

	wantImage := settings.WantsImages()
	generated, err := p.generator.GenerateBlogPost(ctx, ai.BlogPostRequest{
		Topic:           topic.Title,
		Keywords:        topic.Keywords,
		Style:           firstNonEmpty(settings.ContentStyle, defaultPostStyle),
		WordCount:       settings.TargetWordCount(),
		Profile:         profile,
		Brief:           brief,
		GenerateImage:   &wantImage,
		RelatedArticles: related,
	})
	if err != nil {
		return nil, fmt.Errorf("automation: generate post: %w", err)
	}

	slug, err := p.posts.UniqueSlug(ctx, generated.Title)
	if err != nil {
		return nil, fmt.Errorf("automation: slug: %w", err)
	}
	post, err := p.posts.Create(ctx, generated.DraftRequest(slug))
	if err != nil {
		return nil, fmt.Errorf("automation: create post: %w", err)
	}

	result := &RunResult{Topic: &topic, Post: post}
	if settings.AutoPublish {
		published, err := p.posts.Publish(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("automation: publish post: %w", err)
		}
		result.Post = published
		result.Published = true
	}

	if to := firstNonEmpty(settings.NotificationEmail, profile.ContactEmail); to != "" {
		err := p.notifier.PostCreated(ctx, notify.PostCreated{
			To:        to,
			PostID:    result.Post.ID,
			Title:     result.Post.Title,
			Slug:      result.Post.Slug,
			Published: result.Published,
			Words:     len(strings.Fields(result.Post.Body.PlainText())),
		})
		if err != nil {
			p.logger.Warn("automation.notify.failed", "error", err, "post_id", result.Post.ID)
		} else {
			result.Notified = true
		}
	}

	p.logger.Info("automation.run.completed",
		"post_id", result.Post.ID,
		"slug", result.Post.Slug,
		"published", result.Published,
		"notified", result.Notified,
	)
	return result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

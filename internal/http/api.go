package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-sitecms/internal/ai"
	"github.com/goliatone/go-sitecms/internal/automation"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/internal/seo"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Generator is the AI writing surface used by the /api/ai routes.
type Generator interface {
	GenerateTopics(ctx context.Context, req ai.TopicsRequest) ([]ai.Topic, error)
	GenerateBlogPost(ctx context.Context, req ai.BlogPostRequest) (*ai.BlogPost, error)
	GenerateExcerpt(ctx context.Context, req ai.ExcerptRequest) (string, error)
	GenerateSEOMeta(ctx context.Context, req ai.SEORequest) (*ai.SEOMeta, error)
	GenerateImage(ctx context.Context, req ai.ImagePromptRequest) (*ai.ImageResult, error)
	GenerateAltText(ctx context.Context, req ai.AltTextRequest) (string, error)
	AnalyzeImages(ctx context.Context, req ai.AnalyzeImagesRequest) ([]ai.AnalyzedImage, error)
}

// AutomationRunner runs one scheduled generation.
type AutomationRunner interface {
	Run(ctx context.Context) (*automation.RunResult, error)
}

// API registers the site endpoints.
type API struct {
	basePath    string
	allowOrigin string
	aiEnabled   bool
	cronSecret  string

	generator  Generator
	automation AutomationRunner
	contact    ContactSubmitter
	markdown   *markdown.Service
	posts      posts.Service
	site       site.Service
	seo        *seo.Builder
	logger     interfaces.Logger
	now        func() time.Time
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		allowOrigin: "*",
		seo:         seo.NewBuilder(""),
		logger:      logging.NoOp(),
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// NewContainerAPI wires every service the container exposes.
func NewContainerAPI(container *di.Container, opts ...Option) *API {
	if container == nil {
		return NewAPI(opts...)
	}
	base := []Option{
		WithConfig(container.Config),
		WithPostService(container.PostService()),
		WithSiteService(container.SiteService()),
		WithLogger(logging.HTTPLogger(container.LoggerProvider())),
	}
	if svc := container.MarkdownService(); svc != nil {
		base = append(base, WithMarkdownService(svc))
	}
	if generator := container.Generator(); generator != nil {
		base = append(base, WithGenerator(generator))
	}
	if pipeline := container.Pipeline(); pipeline != nil {
		base = append(base, WithAutomation(pipeline))
	}
	if svc := container.ContactService(); svc != nil {
		base = append(base, WithContactService(svc))
	}
	return NewAPI(append(base, opts...)...)
}

// WithConfig applies the HTTP, feature and automation settings.
func WithConfig(cfg runtimeconfig.Config) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		api.basePath = strings.TrimSpace(cfg.HTTP.BasePath)
		if origin := strings.TrimSpace(cfg.HTTP.AllowOrigin); origin != "" {
			api.allowOrigin = origin
		}
		api.aiEnabled = cfg.Features.AI
		api.cronSecret = cfg.Automation.CronSecret
		api.seo = seo.NewBuilder(cfg.SiteURL)
	}
}

// WithBasePath overrides the mount prefix.
func WithBasePath(path string) Option {
	return func(api *API) {
		if api != nil {
			api.basePath = strings.TrimSpace(path)
		}
	}
}

// WithAIEnabled toggles the AI routes.
func WithAIEnabled(enabled bool) Option {
	return func(api *API) {
		if api != nil {
			api.aiEnabled = enabled
		}
	}
}

// WithCronSecret sets the bearer token expected by the cron route.
func WithCronSecret(secret string) Option {
	return func(api *API) {
		if api != nil {
			api.cronSecret = secret
		}
	}
}

func WithGenerator(generator Generator) Option {
	return func(api *API) {
		if api != nil {
			api.generator = generator
		}
	}
}

func WithAutomation(runner AutomationRunner) Option {
	return func(api *API) {
		if api != nil {
			api.automation = runner
		}
	}
}

func WithMarkdownService(svc *markdown.Service) Option {
	return func(api *API) {
		if api != nil {
			api.markdown = svc
		}
	}
}

func WithPostService(svc posts.Service) Option {
	return func(api *API) {
		if api != nil {
			api.posts = svc
		}
	}
}

func WithSiteService(svc site.Service) Option {
	return func(api *API) {
		if api != nil {
			api.site = svc
		}
	}
}

// WithSiteURL sets the absolute URL used in JSON-LD and the sitemap.
func WithSiteURL(siteURL string) Option {
	return func(api *API) {
		if api != nil {
			api.seo = seo.NewBuilder(siteURL)
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// WithClock overrides the time source used for sitemap dates.
func WithClock(now func() time.Time) Option {
	return func(api *API) {
		if api != nil && now != nil {
			api.now = now
		}
	}
}

// Register attaches the endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerAIRoutes(mux, base)
	api.registerMarkdownRoutes(mux, base)
	api.registerCronRoutes(mux, base)
	api.registerContactRoutes(mux, base)
	api.registerPostRoutes(mux, base)
	api.registerSitemapRoutes(mux, base)

	return nil
}

package di

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitecms/internal/ai"
	"github.com/goliatone/go-sitecms/internal/ai/openai"
	"github.com/goliatone/go-sitecms/internal/automation"
	"github.com/goliatone/go-sitecms/internal/contact"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/logging/console"
	"github.com/goliatone/go-sitecms/internal/logging/gologger"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Container wires module dependencies. Without a bun database every
// repository is kept in memory.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
	httpClient     *http.Client

	postRepo     posts.PostRepository
	settingsRepo site.SettingsRepository
	offeringRepo site.OfferingRepository

	completer       ai.Completer
	notifier        notify.Notifier
	contactNotifier notify.ContactNotifier
	sheetAppender   contact.RowAppender

	postSvc     posts.Service
	siteSvc     site.Service
	markdownSvc *markdown.Service
	generator   *ai.Generator
	pipeline    *automation.Pipeline
	contactSvc  *contact.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches repositories to the given database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithHTTPClient sets the client used for outbound notification calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithCompleter replaces the OpenAI backed completer.
func WithCompleter(completer ai.Completer) Option {
	return func(c *Container) {
		c.completer = completer
	}
}

// WithNotifier replaces the Postmark notifier.
func WithNotifier(notifier notify.Notifier) Option {
	return func(c *Container) {
		c.notifier = notifier
	}
}

// WithContactNotifier replaces the Postmark contact form mailer.
func WithContactNotifier(notifier notify.ContactNotifier) Option {
	return func(c *Container) {
		c.contactNotifier = notifier
	}
}

// WithSheetAppender replaces the Google Sheets row appender.
func WithSheetAppender(appender contact.RowAppender) Option {
	return func(c *Container) {
		c.sheetAppender = appender
	}
}

// WithPostService overrides the default post service binding.
func WithPostService(svc posts.Service) Option {
	return func(c *Container) {
		c.postSvc = svc
	}
}

// WithSiteService overrides the default site service binding.
func WithSiteService(svc site.Service) Option {
	return func(c *Container) {
		c.siteSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		postRepo:     posts.NewMemoryPostRepository(),
		settingsRepo: site.NewMemorySettingsRepository(),
		offeringRepo: site.NewMemoryOfferingRepository(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	if c.postSvc == nil {
		c.postSvc = posts.NewService(c.postRepo,
			posts.WithLogger(logging.PostsLogger(c.loggerProvider)),
			posts.WithSchemaValidation(true),
		)
	}
	if c.siteSvc == nil {
		c.siteSvc = site.NewService(c.settingsRepo, c.offeringRepo,
			site.WithLogger(logging.SiteLogger(c.loggerProvider)),
		)
	}
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	if err := c.configureAI(); err != nil {
		return nil, err
	}
	c.configureNotifications()
	c.configureAutomation()
	if err := c.configureContact(); err != nil {
		return nil, err
	}

	c.logger.Info("container.configured",
		"storage", c.storageLabel(),
		"cache", c.cacheService != nil,
		"ai", c.generator != nil,
		"automation", c.pipeline != nil,
		"contact_email", c.contactNotifier != nil,
		"contact_sheets", c.sheetAppender != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider == nil {
		switch {
		case !c.Config.Features.Logger:
			c.loggerProvider = noopProvider{}
		case strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "gologger"):
			provider, err := gologger.NewProvider(gologger.Config{
				Level:     c.Config.Logging.Level,
				Format:    c.Config.Logging.Format,
				AddSource: c.Config.Logging.AddSource,
				Focus:     c.Config.Logging.Focus,
			})
			if err != nil {
				return err
			}
			c.loggerProvider = provider
		default:
			level, err := console.ParseLevel(c.Config.Logging.Level)
			if err != nil {
				return err
			}
			c.loggerProvider = console.NewProvider(console.Options{Writer: os.Stderr, MinLevel: level})
		}
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, logging.RootModule)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	if c.cacheService != nil {
		c.postRepo = posts.NewBunPostRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.settingsRepo = site.NewBunSettingsRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.postRepo = posts.NewBunPostRepository(c.bunDB)
		c.settingsRepo = site.NewBunSettingsRepository(c.bunDB)
	}
	c.offeringRepo = site.NewBunOfferingRepository(c.bunDB)
}

func (c *Container) configureMarkdown() error {
	if !c.Config.Features.Markdown {
		return nil
	}
	mdCfg := c.Config.Markdown
	svc, err := markdown.NewService(markdown.Config{
		DraftsDir: mdCfg.DraftsDir,
		Pattern:   mdCfg.Pattern,
		Recursive: mdCfg.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: mdCfg.Parser.Extensions,
			HardWraps:  mdCfg.Parser.HardWraps,
			SafeMode:   mdCfg.Parser.SafeMode,
		},
	},
		markdown.WithPostService(c.postSvc),
		markdown.WithServiceLogger(logging.MarkdownLogger(c.loggerProvider)),
	)
	if err != nil {
		return fmt.Errorf("di: markdown service: %w", err)
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureAI() error {
	if !c.Config.Features.AI {
		return nil
	}
	if c.completer == nil {
		if strings.TrimSpace(c.Config.AI.APIKey) == "" {
			c.logger.Warn("ai.completer.unconfigured", "reason", "missing api key")
			return nil
		}
		client, err := openai.New(openai.Config{
			APIKey:     c.Config.AI.APIKey,
			Model:      c.Config.AI.Model,
			ImageModel: c.Config.AI.ImageModel,
			Timeout:    c.Config.AI.Timeout,
			BaseURL:    c.Config.AI.BaseURL,
		})
		if err != nil {
			return fmt.Errorf("di: openai client: %w", err)
		}
		c.completer = client
	}

	genOpts := []ai.GeneratorOption{
		ai.WithLogger(logging.AILogger(c.loggerProvider)),
		ai.WithVisionModel(c.Config.AI.VisionModel),
	}
	if c.markdownSvc != nil {
		genOpts = append(genOpts, ai.WithConverter(c.markdownSvc))
	}
	c.generator = ai.NewGenerator(c.completer, genOpts...)
	return nil
}

// configureNotifications builds one Postmark notifier for the automation
// and contact flows. Without a token automation notices are dropped and
// contact emails are skipped.
func (c *Container) configureNotifications() {
	cfg := c.Config.Notifications
	if strings.TrimSpace(cfg.PostmarkToken) == "" {
		if c.notifier == nil {
			c.notifier = notify.NoopNotifier{}
		}
		return
	}
	if c.notifier != nil && c.contactNotifier != nil {
		return
	}
	postmark := notify.NewPostmarkNotifier(notify.PostmarkConfig{
		ServerToken: cfg.PostmarkToken,
		From:        cfg.FromEmail,
		FormsFrom:   cfg.FormsFromEmail,
		StudioURL:   cfg.StudioURL,
		HTTPClient:  c.httpClient,
	})
	if c.notifier == nil {
		c.notifier = postmark
	}
	if c.contactNotifier == nil {
		c.contactNotifier = postmark
	}
}

func (c *Container) configureAutomation() {
	if c.generator == nil || !c.Config.Features.Automation {
		return
	}
	c.pipeline = automation.NewPipeline(c.postSvc, c.siteSvc, c.generator,
		automation.WithNotifier(c.notifier),
		automation.WithLogger(logging.AutomationLogger(c.loggerProvider)),
	)
}

func (c *Container) configureContact() error {
	cfg := c.Config.Contact
	if c.sheetAppender == nil && cfg.SheetsReady() {
		appender, err := contact.NewSheetsAppender(context.Background(), contact.SheetsConfig{
			ClientEmail: cfg.SheetsClientEmail,
			PrivateKey:  cfg.SheetsPrivateKey,
		})
		if err != nil {
			return fmt.Errorf("di: contact sheets: %w", err)
		}
		c.sheetAppender = appender
	}

	opts := []contact.Option{contact.WithLogger(logging.ContactLogger(c.loggerProvider))}
	if c.contactNotifier != nil {
		opts = append(opts, contact.WithNotifier(c.contactNotifier))
	}
	if c.sheetAppender != nil {
		opts = append(opts, contact.WithSheets(c.sheetAppender, cfg.SheetID))
	}
	c.contactSvc = contact.NewService(c.siteSvc, opts...)
	return nil
}

func (c *Container) storageLabel() string {
	if c.bunDB == nil {
		return "memory"
	}
	return c.bunDB.Dialect().Name().String()
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB returns the database when one was supplied.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// PostService returns the configured post service.
func (c *Container) PostService() posts.Service {
	return c.postSvc
}

// SiteService returns the configured site service.
func (c *Container) SiteService() site.Service {
	return c.siteSvc
}

// MarkdownService returns the markdown service, nil when the feature is off.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// Generator returns the AI generator, nil when AI is disabled or no
// provider key is configured.
func (c *Container) Generator() *ai.Generator {
	return c.generator
}

// Pipeline returns the automation pipeline when automation is enabled.
func (c *Container) Pipeline() *automation.Pipeline {
	return c.pipeline
}

// ContactService returns the contact form service.
func (c *Container) ContactService() *contact.Service {
	return c.contactSvc
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

// Package sitecms is the content backend of a small-business marketing
// site: posts stored as rich text, site settings, AI assisted writing and
// scheduled blog automation.
package sitecms

import (
	"github.com/goliatone/go-sitecms/internal/ai"
	"github.com/goliatone/go-sitecms/internal/automation"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// PostService exports the post service contract.
type PostService = posts.Service

// SiteService exports the site settings service contract.
type SiteService = site.Service

// MarkdownService exports the markdown service.
type MarkdownService = *markdown.Service

// Generator exports the AI content generator.
type Generator = *ai.Generator

// Pipeline exports the automation pipeline.
type Pipeline = *automation.Pipeline

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config
}

func (m *Module) Posts() PostService {
	return m.container.PostService()
}

func (m *Module) Site() SiteService {
	return m.container.SiteService()
}

// Markdown returns the markdown service, nil when the feature is off.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Generator returns the AI generator, nil unless AI is enabled and
// a provider key is configured.
func (m *Module) Generator() Generator {
	return m.container.Generator()
}

// Automation returns the automation pipeline when enabled.
func (m *Module) Automation() Pipeline {
	return m.container.Pipeline()
}

// LoggerProvider returns the provider every module logger comes from.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}

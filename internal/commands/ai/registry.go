package aicmd

import (
	"errors"

	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterAICommands.
type HandlerSet struct {
	GenerateBlogPost *GenerateBlogPostHandler
}

// Dependencies are the services the AI handlers call.
type Dependencies struct {
	Generator BlogPostGenerator
	Site      SiteReader
	Drafts    DraftStore
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	generateHandlerOpts []commands.HandlerOption[GenerateBlogPostCommand]
}

// WithGenerateHandlerOptions forwards options to the GenerateBlogPostHandler.
func WithGenerateHandlerOptions(opts ...commands.HandlerOption[GenerateBlogPostCommand]) Option {
	return func(cfg *options) {
		cfg.generateHandlerOpts = append(cfg.generateHandlerOpts, opts...)
	}
}

// RegisterAICommands builds the AI handlers and registers them with reg
// when it is not nil.
func RegisterAICommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if deps.Generator == nil {
		return nil, errors.New("ai command registration: generator is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "ai")
	generate := NewGenerateBlogPostHandler(deps.Generator, deps.Site, deps.Drafts, logger, gates, cfg.generateHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(generate); err != nil {
			return nil, err
		}
	}
	return &HandlerSet{GenerateBlogPost: generate}, nil
}

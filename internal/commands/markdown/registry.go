package markdowncmd

import (
	"errors"

	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterMarkdownCommands.
type HandlerSet struct {
	Import *ImportDraftsHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts []commands.HandlerOption[ImportDraftsCommand]
}

// WithImportHandlerOptions forwards options to the ImportDraftsHandler.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportDraftsCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// RegisterMarkdownCommands builds the markdown handlers and registers them
// with reg when it is not nil.
func RegisterMarkdownCommands(reg CommandRegistry, service DraftImporter, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("markdown command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "markdown")
	importHandler := NewImportDraftsHandler(service, logger, gates, cfg.importHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(importHandler); err != nil {
			return nil, err
		}
	}
	return &HandlerSet{Import: importHandler}, nil
}

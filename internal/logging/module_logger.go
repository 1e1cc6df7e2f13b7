package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	RootModule       = "sitecms"
	PostsModule      = "sitecms.posts"
	MarkdownModule   = "sitecms.markdown"
	AIModule         = "sitecms.ai"
	AutomationModule = "sitecms.automation"
	SiteModule       = "sitecms.site"
	HTTPModule       = "sitecms.http"
	CommandsModule   = "sitecms.commands"
	ContactModule    = "sitecms.contact"
)

const (
	fieldDraftPath   = "draft_path"
	fieldPostSlug    = "slug"
	fieldDraftAction = "import_action"
)

// ModuleLogger returns the provider's logger for module tagged with a
// "module" field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = RootModule
	}

	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, PostsModule)
}

func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, MarkdownModule)
}

func AILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, AIModule)
}

func AutomationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, AutomationModule)
}

func SiteLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, SiteModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, HTTPModule)
}

func ContactLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ContactModule)
}

// WithDraftContext tags logger with the draft file, target slug and import
// action. Blank values are skipped.
func WithDraftContext(logger interfaces.Logger, path, slug, action string) interfaces.Logger {
	fields := map[string]any{}
	for key, value := range map[string]string{
		fieldDraftPath:   path,
		fieldPostSlug:    slug,
		fieldDraftAction: action,
	} {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			fields[key] = trimmed
		}
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }

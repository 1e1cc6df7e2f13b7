package commands

import (
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	aicmd "github.com/goliatone/go-sitecms/internal/commands/ai"
	automationcmd "github.com/goliatone/go-sitecms/internal/commands/automation"
	markdowncmd "github.com/goliatone/go-sitecms/internal/commands/markdown"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription

	Markdown   *markdowncmd.HandlerSet
	AI         *aicmd.HandlerSet
	Automation *automationcmd.HandlerSet
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher/cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	// Markdown commands.
	if service := container.MarkdownService(); service != nil && cfg.Features.Markdown {
		gates := markdowncmd.FeatureGates{
			MarkdownEnabled: func() bool { return cfg.Features.Markdown },
		}
		set, err := markdowncmd.RegisterMarkdownCommands(nil, service, provider, gates)
		if err != nil {
			errs = errors.Join(errs, err)
		} else {
			result.Markdown = set
			register(set.Import)
		}
	}

	// AI commands.
	if generator := container.Generator(); generator != nil {
		gates := aicmd.FeatureGates{
			AIEnabled: func() bool { return cfg.Features.AI },
		}
		set, err := aicmd.RegisterAICommands(nil, aicmd.Dependencies{
			Generator: generator,
			Site:      container.SiteService(),
			Drafts:    container.PostService(),
		}, provider, gates)
		if err != nil {
			errs = errors.Join(errs, err)
		} else {
			result.AI = set
			register(set.GenerateBlogPost)
		}
	}

	// Automation commands.
	if pipeline := container.Pipeline(); pipeline != nil {
		gates := automationcmd.FeatureGates{
			AIEnabled:         func() bool { return cfg.Features.AI },
			AutomationEnabled: func() bool { return cfg.Features.Automation },
		}
		set, err := automationcmd.RegisterAutomationCommands(nil, pipeline, provider, gates,
			automationcmd.WithCronExpression(cfg.Automation.Schedule),
		)
		if err != nil {
			errs = errors.Join(errs, err)
		} else {
			result.Automation = set
			register(set.Run)
		}
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}

	return result, errs
}

// Dispatcher subscribes handlers to the process wide go-command dispatcher.
type Dispatcher struct {
	runnerOpts []runner.Option
}

var _ CommandDispatcher = (*Dispatcher)(nil)

// NewDispatcher applies runnerOpts, such as retries, to every subscription.
func NewDispatcher(runnerOpts ...runner.Option) *Dispatcher {
	return &Dispatcher{runnerOpts: runnerOpts}
}

// RegisterCommand subscribes the known sitecms handlers.
func (d *Dispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case command.Commander[markdowncmd.ImportDraftsCommand]:
		return dispatcher.SubscribeCommand(h, d.runnerOpts...), nil
	case command.Commander[aicmd.GenerateBlogPostCommand]:
		return dispatcher.SubscribeCommand(h, d.runnerOpts...), nil
	case command.Commander[automationcmd.RunAutomationCommand]:
		return dispatcher.SubscribeCommand(h, d.runnerOpts...), nil
	}
	return nil, fmt.Errorf("commands: unsupported handler %T", handler)
}

package automationcmd

import (
	"errors"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// A run makes several model calls plus an image generation.
const automationTimeout = 5 * time.Minute

// DefaultCronExpression runs automation daily at 09:00.
const DefaultCronExpression = "0 9 * * *"

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterAutomationCommands.
type HandlerSet struct {
	Run *RunAutomationHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	runHandlerOpts []commands.HandlerOption[RunAutomationCommand]
	cronExpression string
}

// WithCronExpression overrides DefaultCronExpression.
func WithCronExpression(expression string) Option {
	return func(cfg *options) {
		cfg.cronExpression = strings.TrimSpace(expression)
	}
}

// WithRunHandlerOptions forwards options to the RunAutomationHandler.
func WithRunHandlerOptions(opts ...commands.HandlerOption[RunAutomationCommand]) Option {
	return func(cfg *options) {
		cfg.runHandlerOpts = append(cfg.runHandlerOpts, opts...)
	}
}

// RegisterAutomationCommands builds the automation handler and registers
// it with reg when it is not nil.
func RegisterAutomationCommands(reg CommandRegistry, runner Runner, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if runner == nil {
		return nil, errors.New("automation command registration: runner is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "automation")
	run := NewRunAutomationHandler(runner, logger, gates, cfg.runHandlerOpts...)
	if cfg.cronExpression != "" {
		run.cronConfig.Expression = cfg.cronExpression
	}

	if reg != nil {
		if err := reg.RegisterCommand(run); err != nil {
			return nil, err
		}
	}
	return &HandlerSet{Run: run}, nil
}

// RegisterAutomationCron schedules handler on reg using the handler's
// cron options. An empty cfg expression keeps the handler's expression.
func RegisterAutomationCron(reg CronRegistrar, handler *RunAutomationHandler, cfg command.HandlerConfig) error {
	if reg == nil || handler == nil {
		return nil
	}
	if cfg.Expression == "" {
		cfg.Expression = handler.CronOptions().Expression
	}
	return reg(cfg, handler.CronHandler())
}

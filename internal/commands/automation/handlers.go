package automationcmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/automation"
	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const runOperation = "automation.run"

var (
	_ command.Commander[RunAutomationCommand] = (*RunAutomationHandler)(nil)
	_ command.CronCommand                     = (*RunAutomationHandler)(nil)
)

// Runner executes one automation cycle.
type Runner interface {
	Run(ctx context.Context) (*automation.RunResult, error)
}

// RunAutomationHandler runs the automation pipeline through the shared
// command handler.
type RunAutomationHandler struct {
	runner     Runner
	logger     interfaces.Logger
	gates      FeatureGates
	opts       []commands.HandlerOption[RunAutomationCommand]
	cronConfig command.HandlerConfig
}

func NewRunAutomationHandler(runner Runner, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[RunAutomationCommand]) *RunAutomationHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &RunAutomationHandler{
		runner:     runner,
		logger:     logger,
		gates:      gates,
		opts:       opts,
		cronConfig: command.HandlerConfig{Expression: DefaultCronExpression},
	}
}

// CronHandler satisfies command.CronCommand.
func (h *RunAutomationHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), RunAutomationCommand{Trigger: TriggerCron})
	}
}

// CronOptions satisfies command.CronCommand.
func (h *RunAutomationHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// Execute satisfies command.Commander[RunAutomationCommand].
func (h *RunAutomationHandler) Execute(ctx context.Context, msg RunAutomationCommand) error {
	_, err := h.Run(ctx, msg)
	return err
}

// Run executes the command and returns the pipeline outcome.
func (h *RunAutomationHandler) Run(ctx context.Context, msg RunAutomationCommand) (*automation.RunResult, error) {
	var result *automation.RunResult
	exec := func(ctx context.Context, msg RunAutomationCommand) error {
		if !h.gates.enabled() {
			return commands.ErrFeatureDisabled
		}
		var err error
		result, err = h.runner.Run(ctx)
		if err != nil {
			return err
		}
		fields := map[string]any{"skipped": result.Skipped}
		if result.Post != nil {
			fields["post_id"] = result.Post.ID
			fields["published"] = result.Published
		}
		logging.WithFields(h.logger, fields).Info("automation.command.run.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RunAutomationCommand]{
		commands.WithLogger[RunAutomationCommand](h.logger),
		commands.WithOperation[RunAutomationCommand](runOperation),
		commands.WithTimeout[RunAutomationCommand](automationTimeout),
		commands.WithMessageFields(func(msg RunAutomationCommand) map[string]any {
			return map[string]any{"trigger": msg.trigger()}
		}),
	}
	handlerOpts = append(handlerOpts, h.opts...)

	if err := commands.NewHandler(exec, handlerOpts...).Execute(ctx, msg); err != nil {
		return nil, err
	}
	return result, nil
}

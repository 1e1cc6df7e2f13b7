package markdowncmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const importOperation = "markdown.import_drafts"

var _ command.Commander[ImportDraftsCommand] = (*ImportDraftsHandler)(nil)

// DraftImporter is the slice of markdown.Service the handler needs.
type DraftImporter interface {
	ImportDrafts(ctx context.Context, opts markdown.ImportOptions) (*markdown.ImportResult, error)
	ImportDirectory(ctx context.Context, dir string, opts markdown.ImportOptions) (*markdown.ImportResult, error)
}

// ImportDraftsHandler runs draft imports through the shared command
// handler.
type ImportDraftsHandler struct {
	service DraftImporter
	logger  interfaces.Logger
	gates   FeatureGates
	opts    []commands.HandlerOption[ImportDraftsCommand]
}

// NewImportDraftsHandler creates a handler bound to the supplied importer.
func NewImportDraftsHandler(service DraftImporter, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDraftsCommand]) *ImportDraftsHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &ImportDraftsHandler{
		service: service,
		logger:  logger,
		gates:   gates,
		opts:    opts,
	}
}

// Execute satisfies command.Commander[ImportDraftsCommand].
func (h *ImportDraftsHandler) Execute(ctx context.Context, msg ImportDraftsCommand) error {
	_, err := h.Run(ctx, msg)
	return err
}

// Run executes the command and returns the import summary.
func (h *ImportDraftsHandler) Run(ctx context.Context, msg ImportDraftsCommand) (*markdown.ImportResult, error) {
	var result *markdown.ImportResult
	exec := func(ctx context.Context, msg ImportDraftsCommand) error {
		if !h.gates.markdownEnabled() {
			return commands.ErrFeatureDisabled
		}
		opts := markdown.ImportOptions{DryRun: msg.DryRun, Publish: msg.Publish}

		var err error
		if dir := strings.TrimSpace(msg.Directory); dir != "" {
			result, err = h.service.ImportDirectory(ctx, dir, opts)
		} else {
			result, err = h.service.ImportDrafts(ctx, opts)
		}
		if err != nil {
			return err
		}
		logging.WithFields(h.logger, map[string]any{
			"created_count": len(result.Created),
			"updated_count": len(result.Updated),
			"skipped_count": len(result.Skipped),
			"error_count":   len(result.Errors),
			"dry_run":       msg.DryRun,
		}).Info("markdown.command.import_drafts.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDraftsCommand]{
		commands.WithLogger[ImportDraftsCommand](h.logger),
		commands.WithOperation[ImportDraftsCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDraftsCommand) map[string]any {
			fields := map[string]any{"dry_run": msg.DryRun}
			if msg.Directory != "" {
				fields["directory"] = msg.Directory
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, h.opts...)

	if err := commands.NewHandler(exec, handlerOpts...).Execute(ctx, msg); err != nil {
		return nil, err
	}
	return result, nil
}

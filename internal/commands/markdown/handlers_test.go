package markdowncmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

type importCall struct {
	directory string
	options   markdown.ImportOptions
}

type stubImporter struct {
	calls  []importCall
	result *markdown.ImportResult
	err    error
}

func (s *stubImporter) ImportDrafts(_ context.Context, opts markdown.ImportOptions) (*markdown.ImportResult, error) {
	return s.record("", opts)
}

func (s *stubImporter) ImportDirectory(_ context.Context, dir string, opts markdown.ImportOptions) (*markdown.ImportResult, error) {
	return s.record(dir, opts)
}

func (s *stubImporter) record(dir string, opts markdown.ImportOptions) (*markdown.ImportResult, error) {
	s.calls = append(s.calls, importCall{directory: dir, options: opts})
	if s.err != nil {
		return nil, s.err
	}
	if s.result == nil {
		return &markdown.ImportResult{}, nil
	}
	return s.result, nil
}

type captureLogger struct {
	fields       []map[string]any
	infoMessages []string
}

var _ interfaces.Logger = (*captureLogger)(nil)

func (c *captureLogger) Trace(string, ...any) {}
func (c *captureLogger) Debug(string, ...any) {}
func (c *captureLogger) Info(msg string, _ ...any) {
	c.infoMessages = append(c.infoMessages, msg)
}
func (c *captureLogger) Warn(string, ...any)  {}
func (c *captureLogger) Error(string, ...any) {}
func (c *captureLogger) Fatal(string, ...any) {}

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	c.fields = append(c.fields, copied)
	return c
}

func (c *captureLogger) WithContext(context.Context) interfaces.Logger {
	return c
}

func (c *captureLogger) sawInfo(msg string) bool {
	for _, m := range c.infoMessages {
		if m == msg {
			return true
		}
	}
	return false
}

func TestImportDraftsHandlerUsesConfiguredDirectory(t *testing.T) {
	service := &stubImporter{result: &markdown.ImportResult{
		Created: []uuid.UUID{uuid.New()},
		Skipped: []uuid.UUID{uuid.New(), uuid.New()},
	}}
	logger := &captureLogger{}
	handler := NewImportDraftsHandler(service, logger, FeatureGates{})

	result, err := handler.Run(context.Background(), ImportDraftsCommand{Publish: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Created) != 1 || len(result.Skipped) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(service.calls) != 1 || service.calls[0].directory != "" || !service.calls[0].options.Publish {
		t.Fatalf("unexpected service calls %+v", service.calls)
	}
	if !logger.sawInfo("markdown.command.import_drafts.completed") {
		t.Fatalf("expected completion log, got %v", logger.infoMessages)
	}

	var counted bool
	for _, fields := range logger.fields {
		if fields["created_count"] == 1 && fields["skipped_count"] == 2 {
			counted = true
		}
	}
	if !counted {
		t.Fatalf("expected count fields to be logged, got %+v", logger.fields)
	}
}

func TestImportDraftsHandlerDirectoryOverride(t *testing.T) {
	service := &stubImporter{}
	handler := NewImportDraftsHandler(service, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), ImportDraftsCommand{Directory: " ./drafts ", DryRun: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(service.calls) != 1 || service.calls[0].directory != "./drafts" || !service.calls[0].options.DryRun {
		t.Fatalf("unexpected service calls %+v", service.calls)
	}
}

func TestImportDraftsHandlerFeatureDisabled(t *testing.T) {
	service := &stubImporter{}
	handler := NewImportDraftsHandler(service, nil, FeatureGates{MarkdownEnabled: func() bool { return false }})

	err := handler.Execute(context.Background(), ImportDraftsCommand{})
	if !errors.Is(err, commands.ErrFeatureDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if len(service.calls) != 0 {
		t.Fatalf("expected service not to be called")
	}
}

func TestImportDraftsHandlerValidation(t *testing.T) {
	service := &stubImporter{}
	handler := NewImportDraftsHandler(service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), ImportDraftsCommand{Directory: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.calls) != 0 {
		t.Fatalf("expected service not to be called")
	}
}

func TestImportDraftsHandlerWrapsServiceError(t *testing.T) {
	boom := errors.New("disk on fire")
	handler := NewImportDraftsHandler(&stubImporter{err: boom}, nil, FeatureGates{})

	result, err := handler.Run(context.Background(), ImportDraftsCommand{})
	if result != nil {
		t.Fatalf("expected no result on failure")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped service error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

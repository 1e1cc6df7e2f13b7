package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, fields)
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, AIModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger.WithContext(context.Background()).Info("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = AutomationLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != AutomationModule {
		t.Fatalf("expected %s to be requested, got %v", AutomationModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != AutomationModule {
		t.Fatalf("expected module field, got %v", rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ModuleLogger(provider, "  ")
	if len(provider.requested) != 1 || provider.requested[0] != RootModule {
		t.Fatalf("expected root module, got %v", provider.requested)
	}
}

func TestWithDraftContextSkipsBlankValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithDraftContext(rec, "drafts/hello.md", " ", "create")
	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldDraftPath] != "drafts/hello.md" || got[fieldDraftAction] != "create" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got[fieldPostSlug]; ok {
		t.Fatalf("expected blank slug to be skipped")
	}
}

func TestContextWithFieldsMerges(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2})
	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["b"] != 2 {
		t.Fatalf("expected merged fields, got %v", fields)
	}
	fields["a"] = 99
	if ContextFields(ctx)["a"] != 1 {
		t.Fatalf("expected a copy of context fields")
	}
}

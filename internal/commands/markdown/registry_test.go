package markdowncmd

import (
	"testing"

	"github.com/goliatone/go-sitecms/internal/commands"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterMarkdownCommandsRegistersHandlers(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterMarkdownCommands(reg, &stubImporter{}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register markdown commands: %v", err)
	}
	if set == nil || set.Import == nil {
		t.Fatalf("expected import handler, got %#v", set)
	}
	if len(reg.handlers) != 1 || reg.handlers[0] != set.Import {
		t.Fatalf("expected import handler registered, got %#v", reg.handlers)
	}
}

func TestRegisterMarkdownCommandsHandlerOptionsApplied(t *testing.T) {
	applied := false
	set, err := RegisterMarkdownCommands(nil, &stubImporter{}, nil, FeatureGates{},
		WithImportHandlerOptions(func(*commands.Handler[ImportDraftsCommand]) {
			applied = true
		}),
	)
	if err != nil {
		t.Fatalf("register markdown commands: %v", err)
	}
	if err := set.Import.Execute(t.Context(), ImportDraftsCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !applied {
		t.Fatal("expected import handler options applied")
	}
}

func TestRegisterMarkdownCommandsNilServiceError(t *testing.T) {
	if _, err := RegisterMarkdownCommands(nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for nil service")
	}
}

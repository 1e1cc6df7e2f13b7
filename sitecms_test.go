package sitecms_test

import (
	"context"
	"errors"
	"testing"

	sitecms "github.com/goliatone/go-sitecms"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/internal/posts"
)

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := sitecms.OpenDatabase(sitecms.StorageConfig{Driver: "oracle", DSN: "x"})
	if !errors.Is(err, sitecms.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestModuleWithSQLiteStorage(t *testing.T) {
	ctx := context.Background()

	db, err := sitecms.OpenDatabase(sitecms.StorageConfig{Driver: "sqlite", DSN: "file:sitecms_root_test?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := sitecms.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := sitecms.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema should be repeatable: %v", err)
	}

	cfg := sitecms.DefaultConfig()
	cfg.Cache.Enabled = false

	module, err := sitecms.New(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if module.Markdown() == nil {
		t.Fatal("expected markdown service")
	}
	if module.Generator() != nil || module.Automation() != nil {
		t.Fatal("expected ai to stay off by default")
	}

	created, err := module.Posts().Create(ctx, posts.CreatePostRequest{
		Title: "Stored Post",
		Body:  module.Markdown().Convert("Hello **there**."),
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	loaded, err := module.Posts().GetBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if loaded.Title != "Stored Post" || loaded.Body.PlainText() != "Hello there." {
		t.Fatalf("unexpected stored post: %+v", loaded)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := sitecms.DefaultConfig()
	cfg.Features.Automation = true
	if _, err := sitecms.New(cfg); !errors.Is(err, sitecms.ErrAutomationRequiresAI) {
		t.Fatalf("expected ErrAutomationRequiresAI, got %v", err)
	}
}

package posts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/richtext"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func sampleBody() richtext.Document {
	return richtext.Document{
		{
			Type:     richtext.TypeBlock,
			Key:      "block-0",
			Style:    richtext.StyleNormal,
			MarkDefs: []richtext.MarkDef{richtext.NewLink("link-0", "https://example.com")},
			Children: []richtext.Span{
				richtext.NewSpan("span-0", "Visit "),
				richtext.NewSpan("span-1", "example", "link-0"),
			},
		},
	}
}

func TestServiceCreateDerivesUniqueSlugs(t *testing.T) {
	ctx := context.Background()
	svc := posts.NewService(posts.NewMemoryPostRepository())

	first, err := svc.Create(ctx, posts.CreatePostRequest{Title: "Hello World", Body: sampleBody()})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, posts.CreatePostRequest{Title: "Hello World"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	third, err := svc.Create(ctx, posts.CreatePostRequest{Title: "Hello World"})
	if err != nil {
		t.Fatalf("create third: %v", err)
	}

	if first.Slug != "hello-world" {
		t.Fatalf("expected hello-world, got %q", first.Slug)
	}
	if second.Slug != "hello-world-1" || third.Slug != "hello-world-2" {
		t.Fatalf("unexpected suffixes: %q %q", second.Slug, third.Slug)
	}
	if first.Status != posts.StatusDraft || first.Source != posts.SourceManual {
		t.Fatalf("unexpected defaults: status=%q source=%q", first.Status, first.Source)
	}
	if second.Body == nil {
		t.Fatalf("expected empty body to be normalized to an empty document")
	}
}

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := posts.NewService(posts.NewMemoryPostRepository())

	if _, err := svc.Create(ctx, posts.CreatePostRequest{Title: "  "}); !errors.Is(err, posts.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.Create(ctx, posts.CreatePostRequest{Title: "x", Status: "archived"}); !errors.Is(err, posts.ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}

	broken := sampleBody()
	broken[0].MarkDefs = []richtext.MarkDef{}
	if _, err := svc.Create(ctx, posts.CreatePostRequest{Title: "Broken", Body: broken}); !errors.Is(err, richtext.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}

	if _, err := svc.Create(ctx, posts.CreatePostRequest{Title: "One", Slug: "taken"}); err != nil {
		t.Fatalf("create with slug: %v", err)
	}
	if _, err := svc.Create(ctx, posts.CreatePostRequest{Title: "Two", Slug: "taken"}); !errors.Is(err, posts.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestServicePublishStampsTimestampOnce(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := posts.NewService(posts.NewMemoryPostRepository(), posts.WithClock(fixedClock(created)))

	post, err := svc.Create(ctx, posts.CreatePostRequest{Title: "Launch Notes"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.PublishedAt != nil {
		t.Fatalf("draft should not carry a publish timestamp")
	}

	published, err := svc.Publish(ctx, post.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !published.Published() || published.PublishedAt == nil || !published.PublishedAt.Equal(created) {
		t.Fatalf("unexpected publish result: %+v", published)
	}

	again, err := svc.Publish(ctx, post.ID)
	if err != nil {
		t.Fatalf("publish again: %v", err)
	}
	if !again.PublishedAt.Equal(created) {
		t.Fatalf("expected publish timestamp to be preserved")
	}
}

func TestServiceListRecentOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := posts.NewMemoryPostRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		svc := posts.NewService(repo, posts.WithClock(fixedClock(ts)))
		if _, err := svc.Create(ctx, posts.CreatePostRequest{Title: title, Status: posts.StatusPublished}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	svc := posts.NewService(repo)
	recent, err := svc.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(recent))
	}
	if recent[0].Title != "Newest" || recent[1].Title != "Middle" {
		t.Fatalf("unexpected order: %q, %q", recent[0].Title, recent[1].Title)
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	fixedID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	svc := posts.NewService(posts.NewMemoryPostRepository(), posts.WithIDGenerator(func() uuid.UUID { return fixedID }))

	post, err := svc.Create(ctx, posts.CreatePostRequest{Title: "Draft"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.ID != fixedID {
		t.Fatalf("expected generated id %s, got %s", fixedID, post.ID)
	}

	updated, err := svc.Update(ctx, posts.UpdatePostRequest{
		ID:      post.ID,
		Title:   "Final",
		Excerpt: " Short summary ",
		Body:    sampleBody(),
		Image:   &posts.Image{URL: "https://img.example.com/a.png", AltText: "Final"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Final" || updated.Excerpt != "Short summary" || updated.ImageURL == "" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Slug != "draft" {
		t.Fatalf("expected slug to be kept, got %q", updated.Slug)
	}

	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var notFound *posts.NotFoundError
	if _, err := svc.Get(ctx, post.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSlugifyFallsBack(t *testing.T) {
	if got := posts.Slugify("!!!"); got != "post" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
}

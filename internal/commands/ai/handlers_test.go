package aicmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitecms/internal/ai"
	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/site"
)

type stubGenerator struct {
	requests []ai.BlogPostRequest
	post     *ai.BlogPost
	err      error
}

func (s *stubGenerator) GenerateBlogPost(_ context.Context, req ai.BlogPostRequest) (*ai.BlogPost, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

type stubSite struct {
	profile *site.Profile
	brief   *site.BrandBrief
}

func (s stubSite) Profile(context.Context) (*site.Profile, error)       { return s.profile, nil }
func (s stubSite) BrandBrief(context.Context) (*site.BrandBrief, error) { return s.brief, nil }

func enabled() FeatureGates {
	return FeatureGates{AIEnabled: func() bool { return true }}
}

func generatedPost() *ai.BlogPost {
	return &ai.BlogPost{
		Title:   "Cutting Energy Bills",
		Body:    markdown.Convert("Insulate the loft first."),
		Excerpt: "Small changes that pay back.",
		SEO:     ai.SEOMeta{MetaTitle: "Energy Bills", MetaDescription: "How to cut them."},
		Image:   &ai.ImageResult{URL: "https://img.test/a.png"},
	}
}

func TestGenerateBlogPostHandlerPassesSiteContext(t *testing.T) {
	gen := &stubGenerator{post: generatedPost()}
	siteSvc := stubSite{
		profile: &site.Profile{CompanyName: "Acme Heating"},
		brief:   &site.BrandBrief{ToneOfVoice: []string{"warm"}},
	}
	handler := NewGenerateBlogPostHandler(gen, siteSvc, nil, nil, enabled())

	result, err := handler.Run(context.Background(), GenerateBlogPostCommand{Topic: "energy bills", WordCount: site.WordCountShort})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Post.Title != "Cutting Energy Bills" || result.Draft != nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(gen.requests) != 1 {
		t.Fatalf("expected one generator call, got %d", len(gen.requests))
	}
	req := gen.requests[0]
	if req.Topic != "energy bills" || req.WordCount != site.WordCountShort {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Profile == nil || req.Profile.CompanyName != "Acme Heating" || req.Brief == nil {
		t.Fatalf("expected profile and brief on request, got %+v", req)
	}
}

func TestGenerateBlogPostHandlerSavesDraft(t *testing.T) {
	ctx := context.Background()
	postSvc := posts.NewService(posts.NewMemoryPostRepository())
	handler := NewGenerateBlogPostHandler(&stubGenerator{post: generatedPost()}, nil, postSvc, nil, enabled())

	result, err := handler.Run(ctx, GenerateBlogPostCommand{Topic: "energy bills", SaveDraft: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Draft == nil {
		t.Fatal("expected draft to be saved")
	}
	stored, err := postSvc.GetBySlug(ctx, result.Draft.Slug)
	if err != nil {
		t.Fatalf("get saved draft: %v", err)
	}
	if stored.Status != posts.StatusDraft || stored.Source != posts.SourceAI {
		t.Fatalf("expected ai draft, got status=%q source=%q", stored.Status, stored.Source)
	}
	if stored.ImageAlt != "Featured image for Cutting Energy Bills" || stored.MetaTitle != "Energy Bills" {
		t.Fatalf("unexpected stored post %+v", stored)
	}
}

func TestGenerateBlogPostHandlerSaveDraftNeedsStore(t *testing.T) {
	gen := &stubGenerator{post: generatedPost()}
	handler := NewGenerateBlogPostHandler(gen, nil, nil, nil, enabled())

	_, err := handler.Run(context.Background(), GenerateBlogPostCommand{Topic: "energy bills", SaveDraft: true})
	if !errors.Is(err, ErrDraftStoreRequired) {
		t.Fatalf("expected ErrDraftStoreRequired, got %v", err)
	}
	if len(gen.requests) != 0 {
		t.Fatal("expected generator not to be called")
	}
}

func TestGenerateBlogPostHandlerDisabled(t *testing.T) {
	gen := &stubGenerator{post: generatedPost()}
	handler := NewGenerateBlogPostHandler(gen, nil, nil, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), GenerateBlogPostCommand{Topic: "x"}); !errors.Is(err, commands.ErrFeatureDisabled) {
		t.Fatalf("expected feature disabled, got %v", err)
	}
	if len(gen.requests) != 0 {
		t.Fatal("expected generator not to be called")
	}
}

func TestGenerateBlogPostHandlerValidation(t *testing.T) {
	handler := NewGenerateBlogPostHandler(&stubGenerator{}, nil, nil, nil, enabled())

	cases := []GenerateBlogPostCommand{
		{Topic: "  "},
		{Topic: "ok", WordCount: "epic"},
		{Topic: "ok", ImageQuality: "ultra"},
	}
	for _, msg := range cases {
		err := handler.Execute(context.Background(), msg)
		if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Fatalf("%+v: expected validation error, got %v", msg, err)
		}
	}
}

func TestGenerateBlogPostHandlerGeneratorError(t *testing.T) {
	boom := errors.New("upstream down")
	handler := NewGenerateBlogPostHandler(&stubGenerator{err: boom}, nil, nil, nil, enabled())

	result, err := handler.Run(context.Background(), GenerateBlogPostCommand{Topic: "x"})
	if result != nil || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterAICommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterAICommands(reg, Dependencies{Generator: &stubGenerator{}}, nil, enabled())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.handlers) != 1 || reg.handlers[0] != set.GenerateBlogPost {
		t.Fatalf("expected generate handler registered, got %#v", reg.handlers)
	}

	if _, err := RegisterAICommands(nil, Dependencies{}, nil, enabled()); err == nil {
		t.Fatal("expected error without generator")
	}
}

package ai_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitecms/internal/ai"
)

// visionCompleter answers by image URL and is safe for concurrent use.
type visionCompleter struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]error
	requests  []ai.CompletionRequest
}

func (v *visionCompleter) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.requests = append(v.requests, req)
	if err := v.failures[req.ImageURL]; err != nil {
		return "", err
	}
	return v.responses[req.ImageURL], nil
}

func (v *visionCompleter) GenerateImage(context.Context, ai.ImageRequest) (*ai.ImageResult, error) {
	return nil, errors.New("not supported")
}

func TestAnalyzeImages(t *testing.T) {
	stub := &visionCompleter{
		responses: map[string]string{
			"https://img.test/team.jpg":   "```json\n{\"description\":\"Team at work\",\"bestUse\":[\"team\",\"about\"],\"subjectType\":\"people\",\"quality\":\"good\",\"orientation\":\"landscape\"}\n```",
			"https://img.test/logo.png":   `{"description":"Logo","bestUse":["hero"],"subjectType":"logo","quality":"excellent","orientation":"square"}`,
			"https://img.test/broken.jpg": "not json",
		},
		failures: map[string]error{"https://img.test/down.jpg": errors.New("upstream timeout")},
	}
	gen := ai.NewGenerator(stub)

	images := []ai.ImageRef{
		{ID: "a", URL: "https://img.test/team.jpg"},
		{ID: "b", URL: "https://img.test/logo.png"},
		{ID: "c", URL: "https://img.test/broken.jpg"},
		{ID: "d", URL: "https://img.test/down.jpg"},
		{ID: "e"},
	}
	got, err := gen.AnalyzeImages(context.Background(), ai.AnalyzeImagesRequest{Images: images})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(got) != len(images) {
		t.Fatalf("expected %d results, got %d", len(images), len(got))
	}
	for i, image := range images {
		if got[i].ID != image.ID {
			t.Fatalf("result %d: expected id %q, got %q", i, image.ID, got[i].ID)
		}
	}
	if got[0].Analysis.SubjectType != "people" || len(got[0].Analysis.BestUse) != 2 {
		t.Fatalf("expected fenced JSON to be parsed, got %+v", got[0].Analysis)
	}
	if got[1].Analysis.Orientation != "square" {
		t.Fatalf("unexpected logo analysis %+v", got[1].Analysis)
	}
	for _, i := range []int{2, 3, 4} {
		if got[i].Analysis.Description != "Image analysis failed" || got[i].Analysis.BestUse[0] != "general" {
			t.Fatalf("result %d: expected fallback analysis, got %+v", i, got[i].Analysis)
		}
	}

	if len(stub.requests) != 4 {
		t.Fatalf("expected one completion per image with a URL, got %d", len(stub.requests))
	}
	for _, req := range stub.requests {
		if req.Model != ai.DefaultVisionModel || req.ImageDetail != ai.ImageDetailLow || req.MaxTokens != 300 {
			t.Fatalf("unexpected vision request %+v", req)
		}
	}
}

func TestAnalyzeImagesRequiresImages(t *testing.T) {
	gen := ai.NewGenerator(&visionCompleter{}, ai.WithVisionModel("gpt-4o-mini"))
	_, err := gen.AnalyzeImages(context.Background(), ai.AnalyzeImagesRequest{})
	var verrs validation.Errors
	if !errors.As(err, &verrs) || verrs["images"] == nil {
		t.Fatalf("expected images validation error, got %v", err)
	}
}

func TestAnalyzeImagesUsesConfiguredVisionModel(t *testing.T) {
	stub := &visionCompleter{responses: map[string]string{"https://img.test/x.jpg": `{"description":"x"}`}}
	gen := ai.NewGenerator(stub, ai.WithVisionModel("gpt-4.1"))
	if _, err := gen.AnalyzeImages(context.Background(), ai.AnalyzeImagesRequest{Images: []ai.ImageRef{{URL: "https://img.test/x.jpg"}}}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stub.requests[0].Model != "gpt-4.1" {
		t.Fatalf("expected configured vision model, got %q", stub.requests[0].Model)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		`  {"a":1}  `:             `{"a":1}`,
	}
	for input, want := range cases {
		if got := ai.StripCodeFence(input); got != want {
			t.Fatalf("%q: expected %q, got %q", input, want, got)
		}
	}
}

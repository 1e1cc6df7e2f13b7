package ai

import (
	"context"
	"errors"
)

var (
	ErrEmptyCompletion = errors.New("ai: completion returned no content")
	ErrNoImage         = errors.New("ai: image generation returned no image")
)

// Completer is the contract implemented by completion providers.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error)
}

// ImageDetailLow asks the provider for a low resolution image pass.
const ImageDetailLow = "low"

// CompletionRequest is a single chat completion. System is optional; when
// ImageURL is set the user message carries the image alongside User. Model
// overrides the provider default.
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	ImageURL    string
	ImageDetail string
	Temperature *float64
	MaxTokens   int
	JSON        bool
}

// ImageRequest asks the provider for one generated image.
type ImageRequest struct {
	Prompt  string
	Size    string
	Quality string
}

// ImageResult is the hosted image returned by the provider.
type ImageResult struct {
	URL           string `json:"imageUrl"`
	RevisedPrompt string `json:"revisedPrompt,omitempty"`
}

func temperature(value float64) *float64 {
	return &value
}

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"
)

const (
	analysisMaxTokens   = 300
	analysisConcurrency = 4
	DefaultVisionModel  = "gpt-4o"
)

const imageAnalysisPrompt = `Analyze this business image and provide:
1. Brief description (1 sentence)
2. Best website use (hero, team, about, services, testimonial, blog, etc.)
3. Subject type (people, product, office, exterior, logo, screenshot, etc.)
4. Quality assessment (excellent, good, fair, poor)
5. Orientation (landscape, portrait, square)

Respond in JSON format only:
{
  "description": "...",
  "bestUse": ["hero", "about"],
  "subjectType": "...",
  "quality": "...",
  "orientation": "..."
}`

// ImageRef identifies an uploaded image to analyse.
type ImageRef struct {
	ID               string `json:"_id,omitempty"`
	URL              string `json:"url"`
	OriginalFilename string `json:"originalFilename,omitempty"`
}

// ImageAnalysis classifies an image for placement on the site.
type ImageAnalysis struct {
	Description string   `json:"description"`
	BestUse     []string `json:"bestUse"`
	SubjectType string   `json:"subjectType"`
	Quality     string   `json:"quality"`
	Orientation string   `json:"orientation"`
}

// AnalyzedImage is an ImageRef with its analysis attached.
type AnalyzedImage struct {
	ImageRef
	Analysis ImageAnalysis `json:"analysis"`
}

// AnalyzeImagesRequest lists the images to analyse.
type AnalyzeImagesRequest struct {
	Images []ImageRef `json:"images"`
}

func (r AnalyzeImagesRequest) Validate() error {
	if len(r.Images) == 0 {
		return validation.Errors{"images": validation.NewError("validation_required", "no images provided")}
	}
	return nil
}

// FailedImageAnalysis is reported for images the model could not classify.
func FailedImageAnalysis() ImageAnalysis {
	return ImageAnalysis{
		Description: "Image analysis failed",
		BestUse:     []string{"general"},
		SubjectType: "unknown",
		Quality:     "unknown",
		Orientation: "unknown",
	}
}

// AnalyzeImages runs one vision completion per image. A failed image gets
// FailedImageAnalysis; only an invalid request or a cancelled context fails
// the whole call. Results keep the request order.
func (g *Generator) AnalyzeImages(ctx context.Context, req AnalyzeImagesRequest) ([]AnalyzedImage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	out := make([]AnalyzedImage, len(req.Images))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(analysisConcurrency)
	for i, image := range req.Images {
		group.Go(func() error {
			analysis, err := g.analyzeImage(groupCtx, image)
			if err != nil {
				g.logger.Warn("ai.image_analysis.failed", "image_id", image.ID, "error", err)
				analysis = FailedImageAnalysis()
			}
			out[i] = AnalyzedImage{ImageRef: image, Analysis: analysis}
			return nil
		})
	}
	_ = group.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.logger.Info("ai.image_analysis.completed", "count", len(out))
	return out, nil
}

func (g *Generator) analyzeImage(ctx context.Context, image ImageRef) (ImageAnalysis, error) {
	if strings.TrimSpace(image.URL) == "" {
		return ImageAnalysis{}, fmt.Errorf("ai: image %q has no url", image.ID)
	}
	text, err := g.complete(ctx, CompletionRequest{
		Model:       g.visionModel,
		User:        imageAnalysisPrompt,
		ImageURL:    image.URL,
		ImageDetail: ImageDetailLow,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return ImageAnalysis{}, err
	}
	var analysis ImageAnalysis
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &analysis); err != nil {
		return ImageAnalysis{}, fmt.Errorf("ai: decode image analysis: %w", err)
	}
	return analysis, nil
}

// StripCodeFence removes a surrounding ``` or ```json fence from a model
// response.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "json")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

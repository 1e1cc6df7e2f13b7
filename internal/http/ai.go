package http

import (
	"net/http"

	"github.com/goliatone/go-sitecms/internal/ai"
	"github.com/goliatone/go-sitecms/internal/site"
)

const (
	msgAIDisabled      = "AI features are not enabled"
	msgAIUnconfigured  = "OpenAI API key not configured"
	corsAllowedMethods = "POST, OPTIONS"
	corsAllowedHeaders = "Content-Type"
)

type aiRoute struct {
	name    string
	failure string
	handle  func(w http.ResponseWriter, r *http.Request) (any, error)
}

type imageResponse struct {
	Success       bool   `json:"success"`
	ImageURL      string `json:"imageUrl"`
	RevisedPrompt string `json:"revisedPrompt,omitempty"`
}

func (api *API) registerAIRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	routes := []aiRoute{
		{name: "generate-topics", failure: "Failed to generate topics", handle: api.generateTopics},
		{name: "generate-blog-post", failure: "Failed to generate blog post", handle: api.generateBlogPost},
		{name: "generate-excerpt", failure: "Failed to generate excerpt", handle: api.generateExcerpt},
		{name: "generate-seo-meta", failure: "Failed to generate SEO metadata", handle: api.generateSEOMeta},
		{name: "generate-image", failure: "Failed to generate image", handle: api.generateImage},
		{name: "generate-alt-text", failure: "Failed to generate alt text", handle: api.generateAltText},
		{name: "analyze-images", failure: "Failed to analyze images", handle: api.analyzeImages},
	}
	for _, route := range routes {
		path := joinPath(base, "api/ai/"+route.name)
		mux.HandleFunc("POST "+path, api.serveAI(route))
		mux.HandleFunc("OPTIONS "+path, api.handlePreflight)
	}
}

func (api *API) writeCORS(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", api.allowOrigin)
	header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
	header.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
}

func (api *API) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	api.writeCORS(w)
	writeJSON(w, http.StatusOK, struct{}{})
}

func (api *API) serveAI(route aiRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.writeCORS(w)
		if !api.aiEnabled {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: msgAIDisabled})
			return
		}
		if api.generator == nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgAIUnconfigured})
			return
		}

		payload, err := route.handle(w, r)
		if err != nil {
			if message, ok := clientMessage(err); ok {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
				return
			}
			api.logger.Error("http.ai.failed", "route", route.name, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: route.failure, Details: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

func (api *API) generateTopics(w http.ResponseWriter, r *http.Request) (any, error) {
	var req ai.TopicsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, invalidBody(err)
	}
	if err := api.fillSiteContext(r, &req.Profile, &req.Brief); err != nil {
		return nil, err
	}
	topics, err := api.generator.GenerateTopics(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return map[string]any{"topics": topics}, nil
}

func (api *API) generateBlogPost(w http.ResponseWriter, r *http.Request) (any, error) {
	var req ai.BlogPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, invalidBody(err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := api.fillSiteContext(r, &req.Profile, &req.Brief); err != nil {
		return nil, err
	}
	return api.generator.GenerateBlogPost(r.Context(), req)
}

func (api *API) generateExcerpt(w http.ResponseWriter, r *http.Request) (any, error) {
	var req ai.ExcerptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, invalidBody(err)
	}
	excerpt, err := api.generator.GenerateExcerpt(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return map[string]string{"excerpt": excerpt}, nil
}

func (api *API) generateSEOMeta(w http.ResponseWriter, r *http.Request) (any, error) {
	var req ai.SEORequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, invalidBody(err)
	}
	return api.generator.GenerateSEOMeta(r.Context(), req)
}

func (api *API) generateImage(w http.ResponseWriter, r *http.Request) (any, error) {
	var req ai.ImagePromptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, invalidBody(err)
	}
	image, err := api.generator.GenerateImage(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return imageResponse{Success: true, ImageURL: image.URL, RevisedPrompt: image.RevisedPrompt}, nil
}

func (api *API) generateAltText(w http.ResponseWriter, r *http.Request) (any, error) {
	var req ai.AltTextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, invalidBody(err)
	}
	altText, err := api.generator.GenerateAltText(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return map[string]string{"altText": altText}, nil
}

type analyzeImagesResponse struct {
	Success        bool               `json:"success"`
	AnalyzedImages []ai.AnalyzedImage `json:"analyzedImages"`
	Count          int                `json:"count"`
}

func (api *API) analyzeImages(w http.ResponseWriter, r *http.Request) (any, error) {
	var req ai.AnalyzeImagesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, invalidBody(err)
	}
	analyzed, err := api.generator.AnalyzeImages(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return analyzeImagesResponse{Success: true, AnalyzedImages: analyzed, Count: len(analyzed)}, nil
}

// fillSiteContext loads the stored profile and brand brief when the caller
// did not send them.
func (api *API) fillSiteContext(r *http.Request, profile **site.Profile, brief **site.BrandBrief) error {
	if api.site == nil {
		return nil
	}
	ctx := r.Context()
	if *profile == nil {
		loaded, err := api.site.Profile(ctx)
		if err != nil {
			return err
		}
		*profile = loaded
	}
	if *brief == nil {
		loaded, err := api.site.BrandBrief(ctx)
		if err != nil {
			return err
		}
		*brief = loaded
	}
	return nil
}

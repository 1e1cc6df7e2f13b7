package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitecms/internal/automation"
)

type cronResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
	Details string    `json:"details,omitempty"`
	Post    *cronPost `json:"post,omitempty"`
}

type cronPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	Notified  bool      `json:"notified"`
}

func (api *API) registerCronRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST "+joinPath(base, "api/cron/generate-blog"), api.handleCronGenerateBlog)
}

func (api *API) authorizedCron(r *http.Request) bool {
	secret := strings.TrimSpace(api.cronSecret)
	if secret == "" {
		return false
	}
	expected := "Bearer " + secret
	got := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}

func (api *API) handleCronGenerateBlog(w http.ResponseWriter, r *http.Request) {
	if !api.authorizedCron(r) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}
	if !api.aiEnabled {
		writeJSON(w, http.StatusOK, cronResponse{Error: msgAIDisabled})
		return
	}
	if api.automation == nil {
		writeJSON(w, http.StatusOK, cronResponse{Message: automation.ReasonDisabled})
		return
	}

	result, err := api.automation.Run(r.Context())
	if err != nil {
		api.logger.Error("http.cron.generate_blog.failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, cronResponse{
			Error:   "Failed to generate blog post",
			Details: err.Error(),
		})
		return
	}
	if result == nil || result.Skipped || result.Post == nil {
		message := automation.ReasonDisabled
		if result != nil && result.Reason != "" {
			message = result.Reason
		}
		writeJSON(w, http.StatusOK, cronResponse{Message: message})
		return
	}

	api.logger.Info("http.cron.generate_blog.completed", "slug", result.Post.Slug, "published", result.Published)
	writeJSON(w, http.StatusOK, cronResponse{
		Success: true,
		Post: &cronPost{
			ID:        result.Post.ID,
			Title:     result.Post.Title,
			Slug:      result.Post.Slug,
			Published: result.Published,
			Notified:  result.Notified,
		},
	})
}

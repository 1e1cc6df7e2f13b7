package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-sitecms/internal/contact"
)

// ContactSubmitter delivers contact form submissions.
type ContactSubmitter interface {
	Submit(ctx context.Context, sub *contact.Submission) (*contact.Result, error)
}

type messageResponse struct {
	Message string `json:"message"`
}

func WithContactService(svc ContactSubmitter) Option {
	return func(api *API) {
		if api != nil {
			api.contact = svc
		}
	}
}

func (api *API) registerContactRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST "+joinPath(base, "api/contact"), api.handleContact)
}

// handleContact accepts an arbitrary JSON object from the public site.
// A failed email still answers 200 so the visitor is not asked to resend.
func (api *API) handleContact(w http.ResponseWriter, r *http.Request) {
	if api.contact == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to submit form"})
		return
	}

	var data []byte
	if r.Body != nil {
		defer r.Body.Close()
		read, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
			return
		}
		data = read
	}

	sub, err := contact.ParseSubmission(data)
	switch {
	case errors.Is(err, contact.ErrNoData):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No data provided"})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	result, err := api.contact.Submit(r.Context(), sub)
	if err != nil {
		api.logger.Error("http.contact.failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to submit form"})
		return
	}
	if result != nil && result.EmailFailed {
		writeJSON(w, http.StatusOK, messageResponse{Message: "Form submitted but email failed to send"})
		return
	}
	api.logger.Info("http.contact.submitted", "fields", len(sub.Fields), "emailed", result != nil && result.Emailed)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Form submitted successfully"})
}

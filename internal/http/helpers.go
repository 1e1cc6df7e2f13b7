package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	if baseClean == "/" {
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// badRequest marks errors caused by the caller's payload.
type badRequest struct {
	message string
}

func (e *badRequest) Error() string { return e.message }

func invalidBody(err error) error {
	if errors.Is(err, io.EOF) {
		return &badRequest{message: "Request body is required"}
	}
	return &badRequest{message: "Invalid request body"}
}

// clientMessage returns the message shown for errors the caller can fix.
func clientMessage(err error) (string, bool) {
	var bad *badRequest
	if errors.As(err, &bad) {
		return bad.message, true
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fieldErr := fields[key]
			if fieldErr == nil {
				continue
			}
			var verr validation.Error
			if errors.As(fieldErr, &verr) && verr.Code() == "validation_required" {
				return sentence(verr.Error()), true
			}
			return key + ": " + fieldErr.Error(), true
		}
		return "Invalid request", true
	}

	var verr validation.Error
	if errors.As(err, &verr) {
		return sentence(verr.Error()), true
	}
	return "", false
}

func sentence(message string) string {
	r, size := utf8.DecodeRuneInString(message)
	if r == utf8.RuneError {
		return message
	}
	return string(unicode.ToUpper(r)) + message[size:]
}

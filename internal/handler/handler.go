// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/birthdayapi/birthdayapi/internal/handler/dto"
)

// Messages for responses that are not tied to a validation rule.
const (
	msgResourceNotFound = "Resource not found"
	msgInternalError    = "Internal server error"
	msgUserNotFound     = "user not found"
	msgBodyTooLarge     = "request body too large"
)

// NotFound handles unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgResourceNotFound)
}

// MethodNotAllowed handles a known path requested with an unsupported
// method. It answers 404 like any unmatched route.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgResourceNotFound)
}

// InternalError writes the generic 500 body.
func InternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, msgInternalError)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Debug("response_encode_failed", "error", err)
	}
}

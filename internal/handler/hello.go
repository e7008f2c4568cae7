package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/birthdayapi/birthdayapi/internal/handler/dto"
	"github.com/birthdayapi/birthdayapi/internal/service"
)

// BirthdayService is the subset of service.BirthdayService used by HelloHandler.
type BirthdayService interface {
	SaveDateOfBirth(ctx context.Context, username string, body []byte) error
	GetGreeting(ctx context.Context, username string) (*service.Greeting, error)
}

// HelloHandler handles the /hello/{username} routes.
type HelloHandler struct {
	svc    BirthdayService
	logger *slog.Logger
}

// NewHelloHandler creates a new HelloHandler.
func NewHelloHandler(svc BirthdayService, logger *slog.Logger) *HelloHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HelloHandler{
		svc:    svc,
		logger: logger,
	}
}

// Put handles PUT /hello/{username}.
func (h *HelloHandler) Put(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		// A truncated body is malformed JSON; username still takes precedence.
		body = nil
	}

	if err := h.svc.SaveDateOfBirth(r.Context(), username, body); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("birthday_saved", "username", username)
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /hello/{username}.
func (h *HelloHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	greeting, err := h.svc.GetGreeting(r.Context(), username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GreetingResponse{Message: greeting.Message})
}

func (h *HelloHandler) handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	default:
		h.logger.Error("internal_error", "error", err)
		InternalError(w)
	}
}

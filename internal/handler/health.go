package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	environment string
	store       HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for store to skip the readiness dependency check.
func NewHealthHandler(environment string, store HealthChecker) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		store:       store,
	}
}

// HealthResponse is the liveness response.
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// ReadinessResponse is the readiness response.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health is the liveness endpoint. It never touches storage.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "UP",
		Environment: h.environment,
	})
}

// Readyz is a readiness probe endpoint.
// It pings the store and returns 200 only if it answers.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			checks["storage"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["storage"] = "ok"
		}
	} else {
		checks["storage"] = "not configured"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, ReadinessResponse{
		Status: status,
		Checks: checks,
	})
}

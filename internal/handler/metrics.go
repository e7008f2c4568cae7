package handler

import (
	"net/http"

	"github.com/birthdayapi/birthdayapi/internal/metrics"
)

// MetricsHandler exposes metrics in Prometheus text format.
type MetricsHandler struct {
	exposer metrics.Exposer
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(exposer metrics.Exposer) *MetricsHandler {
	return &MetricsHandler{exposer: exposer}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.exposer == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	h.exposer.WritePrometheus(w)
}

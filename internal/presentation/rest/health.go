package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler provides HTTP health check endpoints for the decision service.
type HealthHandler struct {
	logger    *slog.Logger
	startTime time.Time
	service   string
	checks    map[string]ReadinessCheck
	metrics   http.Handler
}

// NewHealthHandler creates a new health check handler. metrics may be nil.
func NewHealthHandler(service string, checks map[string]ReadinessCheck, metrics http.Handler, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		service:   service,
		checks:    checks,
		metrics:   metrics,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health and metrics endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readyz handles readiness probe requests. Every check must pass.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	code := http.StatusOK
	statusText := "ready"
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			code = http.StatusServiceUnavailable
			statusText = "not_ready"
			continue
		}
		results[name] = "ok"
	}

	h.writeJSON(w, code, ReadinessResponse{
		Status:  statusText,
		Service: h.service,
		Checks:  results,
	})
}

func (h *HealthHandler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write health response", slog.String("error", err.Error()))
	}
}

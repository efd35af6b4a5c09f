// Package http provides the HTTP surface of the summarization service:
// health and metrics endpoints plus logging, recovery, timeout and input
// validation middleware. Summarization routes live in the summary subpackage.
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Provider  string                 `json:"provider"`  // Completion provider in use
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// Check reports the status of one dependency.
type Check func(ctx context.Context) CheckStatus

// Breaker is the circuit breaker view used by BreakerCheck.
type Breaker interface {
	Name() string
	IsOpen() bool
}

// BreakerCheck reports an open circuit as degraded. The service keeps
// answering (fallbacks, cached failures) so an open circuit is not a failure.
func BreakerCheck(b Breaker) Check {
	return func(context.Context) CheckStatus {
		if b.IsOpen() {
			return CheckStatus{
				Status:  "degraded",
				Message: "circuit breaker open",
				Details: map[string]any{"circuit": b.Name()},
			}
		}
		return CheckStatus{Status: "healthy", Details: map[string]any{"circuit": b.Name()}}
	}
}

// HealthHandler handles health check endpoint requests.
type HealthHandler struct {
	Version  string
	Provider string
	Checks   map[string]Check
}

// ServeHTTP runs every check and returns the aggregated status.
// Returns 200 OK when no check is unhealthy, or 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus, len(h.Checks))
	status := "healthy"
	for name, check := range h.Checks {
		cs := check(ctx)
		checks[name] = cs
		switch {
		case cs.Status == "unhealthy":
			status = "unhealthy"
		case cs.Status == "degraded" && status == "healthy":
			status = "degraded"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Provider:  h.Provider,
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}

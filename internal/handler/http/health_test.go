package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBreaker struct {
	name string
	open bool
}

func (b fakeBreaker) Name() string { return b.name }
func (b fakeBreaker) IsOpen() bool { return b.open }

func staticCheck(status string) Check {
	return func(context.Context) CheckStatus { return CheckStatus{Status: status} }
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		checks         map[string]Check
		expectedStatus int
		expectedHealth string
	}{
		{
			name:           "no checks",
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
		},
		{
			name: "all healthy",
			checks: map[string]Check{
				"article_fetch": BreakerCheck(fakeBreaker{name: "article-fetch"}),
			},
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
		},
		{
			name: "open circuit degrades",
			checks: map[string]Check{
				"article_fetch": BreakerCheck(fakeBreaker{name: "article-fetch", open: true}),
				"other":         staticCheck("healthy"),
			},
			expectedStatus: http.StatusOK,
			expectedHealth: "degraded",
		},
		{
			name: "unhealthy wins over degraded",
			checks: map[string]Check{
				"a": staticCheck("degraded"),
				"b": staticCheck("unhealthy"),
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &HealthHandler{Version: "test-version", Provider: "local", Checks: tt.checks}

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

			var response HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.Equal(t, "test-version", response.Version)
			assert.Equal(t, "local", response.Provider)
			assert.NotEmpty(t, response.Timestamp)
			assert.Len(t, response.Checks, len(tt.checks))
		})
	}
}

func TestBreakerCheck(t *testing.T) {
	cs := BreakerCheck(fakeBreaker{name: "gemini-api", open: true})(context.Background())
	assert.Equal(t, "degraded", cs.Status)
	assert.Equal(t, "circuit breaker open", cs.Message)
	assert.Equal(t, "gemini-api", cs.Details["circuit"])

	cs = BreakerCheck(fakeBreaker{name: "gemini-api"})(context.Background())
	assert.Equal(t, "healthy", cs.Status)
}

func TestLiveHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}

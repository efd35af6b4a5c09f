package completion_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytldr/internal/domain/entity"
	"ytldr/internal/infra/completion"
	"ytldr/internal/resilience/retry"
)

const claudeMessageResponse = `{
	"id": "msg_01",
	"type": "message",
	"role": "assistant",
	"model": "claude-sonnet-4-5-20250929",
	"content": [{"type": "text", "text": "• Short summary"}],
	"stop_reason": "end_turn",
	"stop_sequence": null,
	"usage": {"input_tokens": 12, "output_tokens": 4}
}`

func TestClaude_Complete(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(claudeMessageResponse))
	}))
	defer server.Close()

	svc := completion.NewClaude(completion.Config{
		Provider: completion.ProviderClaude,
		APIKey:   "sk-ant-test",
		BaseURL:  server.URL,
	}, completion.WithMetricsRecorder(newMockRecorder()))

	out, err := svc.Complete(context.Background(), entity.CompletionRequest{
		Instruction:     "Summarize.",
		Content:         "Content:\nhello",
		Temperature:     0.1,
		MaxOutputTokens: 300,
	})

	require.NoError(t, err)
	assert.Equal(t, "• Short summary", out)
	assert.Equal(t, "claude", svc.Name())
	assert.Equal(t, "claude-sonnet-4-5-20250929", body["model"])
	assert.EqualValues(t, 300, body["max_tokens"])
	assert.InDelta(t, 0.1, body["temperature"], 1e-9)
}

func TestClaude_ServerErrorIsRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "overloaded"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(claudeMessageResponse))
	}))
	defer server.Close()

	svc := completion.NewClaude(completion.Config{
		Provider: completion.ProviderClaude,
		APIKey:   "sk-ant-test",
		BaseURL:  server.URL,
	}, fastRetry(3), completion.WithMetricsRecorder(newMockRecorder()))

	out, err := svc.Complete(context.Background(), entity.CompletionRequest{Content: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "• Short summary", out)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestClaude_ClientErrorIsNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "invalid_request_error", "message": "bad"}}`))
	}))
	defer server.Close()

	svc := completion.NewClaude(completion.Config{
		Provider: completion.ProviderClaude,
		APIKey:   "sk-ant-test",
		BaseURL:  server.URL,
	}, fastRetry(3), completion.WithMetricsRecorder(newMockRecorder()))

	_, err := svc.Complete(context.Background(), entity.CompletionRequest{Content: "hello"})

	var httpErr *retry.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, int32(1), attempts.Load())
}

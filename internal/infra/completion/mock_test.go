package completion_test

import (
	"context"
	"sync"
	"time"

	"ytldr/internal/domain/entity"
	"ytldr/internal/infra/completion"
	"ytldr/internal/resilience/retry"
)

// fastRetry keeps retry behaviour but removes the waiting.
func fastRetry(attempts int) completion.Option {
	return completion.WithRetryConfig(retry.Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
	})
}

type mockRecorder struct {
	mu          sync.Mutex
	requests    map[string]int
	lengths     []int
	circuitOpen int
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{requests: map[string]int{}}
}

func (m *mockRecorder) RecordRequest(provider, status string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[provider+"/"+status]++
}

func (m *mockRecorder) RecordOutputLength(_ string, length int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lengths = append(m.lengths, length)
}

func (m *mockRecorder) RecordCircuitOpen(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.circuitOpen++
}

func (m *mockRecorder) count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[key]
}

type stubService struct {
	name  string
	out   string
	err   error
	calls int
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Complete(context.Context, entity.CompletionRequest) (string, error) {
	s.calls++
	return s.out, s.err
}

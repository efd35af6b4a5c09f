package summarize_test

import (
	"context"
	"strings"
	"sync"

	"ytldr/internal/domain/entity"
)

// mockCompletion records every request and answers through respond.
type mockCompletion struct {
	mu       sync.Mutex
	requests []entity.CompletionRequest
	respond  func(req entity.CompletionRequest) (string, error)
}

func (m *mockCompletion) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.respond == nil {
		return "summary", nil
	}
	return m.respond(req)
}

func (m *mockCompletion) Name() string { return "mock" }

func (m *mockCompletion) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockCompletion) snapshot() []entity.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.CompletionRequest(nil), m.requests...)
}

func isSectionRequest(req entity.CompletionRequest) bool {
	return strings.HasPrefix(req.Instruction, "Summarize this section")
}

type mockExtractor struct {
	text  string
	err   error
	calls int
	gotCT entity.ContentType
}

func (m *mockExtractor) Extract(ctx context.Context, unit entity.ContentUnit, ct entity.ContentType) (string, error) {
	m.calls++
	m.gotCT = ct
	return m.text, m.err
}

type mockMetadata struct {
	page *entity.PageMetadata
	err  error
	urls []string
}

func (m *mockMetadata) FetchMetadata(ctx context.Context, url string) (*entity.PageMetadata, error) {
	m.urls = append(m.urls, url)
	return m.page, m.err
}

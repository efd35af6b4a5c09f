// Package summary exposes the summarization engine over HTTP.
package summary

import (
	"context"
	"net/http"

	"ytldr/internal/domain/entity"
	"ytldr/internal/usecase/summarize"
)

// Service is the engine surface the handlers need.
type Service interface {
	Summarize(ctx context.Context, in entity.SummarizeInput) (*entity.SummaryResult, error)
	SummarizeForensic(ctx context.Context, in entity.SummarizeInput) (*entity.ForensicResult, error)
	SupportedTypes() []entity.ContentType
	Options() summarize.OptionSet
}

// Limiter admits or rejects a summarization request before any work starts.
type Limiter interface {
	Allow() error
}

// Register registers the summarization routes with the given mux.
// A nil limiter admits every request.
func Register(mux *http.ServeMux, svc Service, limiter Limiter) {
	mux.Handle("POST /summaries", SummarizeHandler{Svc: svc, Limiter: limiter})
	mux.Handle("POST /summaries/forensic", ForensicHandler{Svc: svc, Limiter: limiter})
	mux.Handle("GET /summaries/options", OptionsHandler{Svc: svc})
}

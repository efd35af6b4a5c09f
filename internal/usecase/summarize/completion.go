// Package summarize orchestrates the summarization pipeline: type detection,
// extraction, chunking, prompt assembly and single-pass or map-reduce
// completion, plus the one-shot forensic mode.
package summarize

import (
	"context"

	"ytldr/internal/domain/entity"
)

// CompletionService turns one prompt into free-form text.
// Implementations own the provider envelope, retries and timeouts.
type CompletionService interface {
	Complete(ctx context.Context, req entity.CompletionRequest) (string, error)
}

// CompletionFunc adapts a function to CompletionService.
type CompletionFunc func(ctx context.Context, req entity.CompletionRequest) (string, error)

// Complete implements CompletionService.
func (f CompletionFunc) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	return f(ctx, req)
}

// Named is implemented by services that report a provider name.
type Named interface {
	Name() string
}

// Extractor turns a content unit into plain text for the given type.
type Extractor interface {
	Extract(ctx context.Context, unit entity.ContentUnit, ct entity.ContentType) (string, error)
}

// MetadataFetcher loads page metadata for the forensic report header.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, url string) (*entity.PageMetadata, error)
}

func providerName(svc CompletionService) string {
	if n, ok := svc.(Named); ok {
		return n.Name()
	}
	return ""
}

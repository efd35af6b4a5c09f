package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"ytldr/internal/domain/entity"
	"ytldr/internal/observability/logging"
	"ytldr/internal/observability/metrics"
	"ytldr/internal/observability/tracing"
	"ytldr/internal/usecase/prompt"
)

// maxMapConcurrency caps the map-phase fan-out.
const maxMapConcurrency = 16

// Hierarchical summarizes chunks in one pass or with map-reduce.
//
// One chunk is summarized with a single call embedding the full instruction.
// Several chunks are each summarized with a short per-section prompt (map),
// and the ordered summaries are then combined into one final call (reduce).
// Any failed call aborts the whole operation; no partial result is returned.
type Hierarchical struct {
	// MapConcurrency bounds concurrent map calls. Values below 2 map
	// sequentially, which is the reference behaviour.
	MapConcurrency int
	// Temperature and MaxOutputTokens are forwarded on every request.
	Temperature     float64
	MaxOutputTokens int
}

// Summarize runs the pipeline over chunks. ct selects the content-type clause
// of the instruction. Cancellation is observed between calls.
func (h *Hierarchical) Summarize(
	ctx context.Context,
	chunks []entity.Chunk,
	opts entity.SummaryOptions,
	ct entity.ContentType,
	svc CompletionService,
) (*entity.SummaryResult, error) {
	if len(chunks) == 0 {
		return nil, entity.NewInvalidInput("content", "produced no chunks")
	}
	if svc == nil {
		return nil, fmt.Errorf("summarize: completion service is nil")
	}

	start := time.Now()
	opts = opts.WithDefaults()
	instruction := prompt.Build(opts, ct)
	provider := providerName(svc)

	ctx, span := tracing.GetTracer().Start(ctx, "summarize.hierarchical")
	defer span.End()
	span.SetAttributes(
		attribute.Int("chunks", len(chunks)),
		attribute.String("content_type", string(ct)),
	)

	var (
		text string
		err  error
	)
	if len(chunks) == 1 {
		text, err = h.call(ctx, svc, provider, entity.StageSingle, -1, prompt.Single(instruction, chunks[0].Text))
	} else {
		text, err = h.mapReduce(ctx, chunks, instruction, svc, provider)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.RecordChunksProcessed(len(chunks))

	return &entity.SummaryResult{
		SummaryText: text,
		Metadata: entity.SummaryMetadata{
			ContentType:      ct,
			OriginalLength:   chunks[len(chunks)-1].EndOffset,
			ChunksProcessed:  len(chunks),
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			OptionsUsed:      opts,
			Provider:         provider,
		},
	}, nil
}

func (h *Hierarchical) mapReduce(
	ctx context.Context,
	chunks []entity.Chunk,
	instruction string,
	svc CompletionService,
	provider string,
) (string, error) {
	summaries, err := h.mapChunks(ctx, chunks, svc, provider)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("summarize canceled before reduce: %w", err)
	}
	return h.call(ctx, svc, provider, entity.StageReduce, -1, prompt.Combine(instruction, summaries))
}

// mapChunks summarizes every chunk. Results are stored by chunk index, so
// the returned slice is in chunk order whatever order the calls finish in.
func (h *Hierarchical) mapChunks(
	ctx context.Context,
	chunks []entity.Chunk,
	svc CompletionService,
	provider string,
) ([]entity.ChunkSummary, error) {
	total := len(chunks)
	summaries := make([]entity.ChunkSummary, total)

	limit := min(h.MapConcurrency, maxMapConcurrency)
	if limit < 2 {
		for i, c := range chunks {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("summarize canceled before chunk %d: %w", i, err)
			}
			text, err := h.call(ctx, svc, provider, entity.StageMap, i, prompt.Section(i, total, c.Text))
			if err != nil {
				return nil, err
			}
			summaries[i] = entity.ChunkSummary{ChunkIndex: i, Text: text}
		}
		return summaries, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("summarize canceled before chunk %d: %w", i, err)
			}
			text, err := h.call(gctx, svc, provider, entity.StageMap, i, prompt.Section(i, total, c.Text))
			if err != nil {
				return err
			}
			summaries[i] = entity.ChunkSummary{ChunkIndex: i, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// call issues one completion request and wraps failures.
func (h *Hierarchical) call(
	ctx context.Context,
	svc CompletionService,
	provider, stage string,
	chunkIndex int,
	req entity.CompletionRequest,
) (string, error) {
	req.Temperature = h.Temperature
	req.MaxOutputTokens = h.MaxOutputTokens

	logger := logging.FromContext(ctx)
	start := time.Now()
	text, err := svc.Complete(ctx, req)
	duration := time.Since(start)
	metrics.RecordCompletionStage(stage, err == nil, duration)

	if err != nil {
		logger.ErrorContext(ctx, "Completion call failed",
			slog.String("stage", stage),
			slog.Int("chunk_index", chunkIndex),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", &entity.CompletionServiceError{
			Provider:   provider,
			Stage:      stage,
			ChunkIndex: chunkIndex,
			Err:        err,
		}
	}

	logger.DebugContext(ctx, "Completion call finished",
		slog.String("stage", stage),
		slog.Int("chunk_index", chunkIndex),
		slog.Int("prompt_length", len(req.Instruction)+len(req.Content)),
		slog.Duration("duration", duration))
	return text, nil
}

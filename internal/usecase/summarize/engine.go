package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"ytldr/internal/domain/entity"
	"ytldr/internal/observability/logging"
	"ytldr/internal/observability/metrics"
	"ytldr/internal/observability/requestid"
	"ytldr/internal/observability/tracing"
	"ytldr/internal/usecase/chunk"
	"ytldr/internal/usecase/detect"
	"ytldr/internal/usecase/forensic"
	"ytldr/internal/usecase/prompt"
	"ytldr/internal/utils/text"
)

// Config tunes the engine. Zero sizes, ratio, concurrency and token limits
// take the values of DefaultConfig; zero overlap and temperatures are kept.
type Config struct {
	MaxChunkSize        int
	OverlapSize         int
	BoundaryRatio       float64
	MapConcurrency      int
	MinContentLength    int
	Temperature         float64
	ForensicTemperature float64
	MaxOutputTokens     int
	// Model names the model in the forensic report footer.
	Model string
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		MaxChunkSize:        chunk.DefaultMaxChunkSize,
		OverlapSize:         chunk.DefaultOverlapSize,
		BoundaryRatio:       chunk.DefaultBoundaryRatio,
		MapConcurrency:      1,
		MinContentLength:    entity.DefaultMinContentLength,
		Temperature:         0.3,
		ForensicTemperature: 0.1,
		MaxOutputTokens:     2048,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxChunkSize == 0 {
		c.MaxChunkSize = d.MaxChunkSize
	}
	if c.BoundaryRatio == 0 {
		c.BoundaryRatio = d.BoundaryRatio
	}
	if c.MapConcurrency == 0 {
		c.MapConcurrency = d.MapConcurrency
	}
	if c.MinContentLength == 0 {
		c.MinContentLength = d.MinContentLength
	}
	if c.MaxOutputTokens == 0 {
		c.MaxOutputTokens = d.MaxOutputTokens
	}
	return c
}

// OptionSet lists the accepted summary option values.
type OptionSet struct {
	Lengths []entity.Length `json:"lengths"`
	Formats []entity.Format `json:"formats"`
	Focuses []entity.Focus  `json:"focuses"`
}

// Engine is the caller-facing summarization facade.
type Engine struct {
	svc       CompletionService
	extractor Extractor
	metadata  MetadataFetcher
	tokens    text.TokenCounter
	chunker   chunk.Chunker
	hier      Hierarchical
	cfg       Config
	now       func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithExtractor sets the extractor used before chunking. Without one the
// content text is used as is.
func WithExtractor(x Extractor) Option {
	return func(e *Engine) { e.extractor = x }
}

// WithMetadataFetcher enables the forensic report's site header.
func WithMetadataFetcher(f MetadataFetcher) Option {
	return func(e *Engine) { e.metadata = f }
}

// WithTokenCounter sets the counter behind ContentStats.EstimatedTokens.
func WithTokenCounter(c text.TokenCounter) Option {
	return func(e *Engine) { e.tokens = c }
}

// WithClock overrides the clock used for the forensic report timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds an Engine around svc.
func NewEngine(svc CompletionService, cfg Config, opts ...Option) (*Engine, error) {
	if svc == nil {
		return nil, errors.New("summarize: completion service is required")
	}
	cfg = cfg.withDefaults()

	e := &Engine{
		svc:    svc,
		tokens: text.HeuristicCounter{},
		chunker: chunk.Chunker{
			MaxChunkSize:  cfg.MaxChunkSize,
			OverlapSize:   cfg.OverlapSize,
			BoundaryRatio: cfg.BoundaryRatio,
		},
		hier: Hierarchical{
			MapConcurrency:  cfg.MapConcurrency,
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		cfg: cfg,
		now: time.Now,
	}
	if err := e.chunker.Validate(); err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SupportedTypes returns the content types a caller may request explicitly.
func (e *Engine) SupportedTypes() []entity.ContentType {
	return slices.Clone(entity.SupportedContentTypes)
}

// Options returns the accepted length, format and focus values.
func (e *Engine) Options() OptionSet {
	return OptionSet{
		Lengths: slices.Clone(entity.Lengths),
		Formats: slices.Clone(entity.Formats),
		Focuses: slices.Clone(entity.Focuses),
	}
}

// IsForensic reports whether in asks for forensic mode.
func IsForensic(in entity.SummarizeInput) bool {
	return in.Forensic || in.Options.Focus == entity.FocusForensic
}

// Summarize validates, classifies, extracts, chunks and summarizes in.
// Forensic requests are delegated to SummarizeForensic and reported as a
// single processed chunk. On error the result is nil.
func (e *Engine) Summarize(ctx context.Context, in entity.SummarizeInput) (*entity.SummaryResult, error) {
	if IsForensic(in) {
		fr, err := e.SummarizeForensic(ctx, in)
		if err != nil {
			return nil, err
		}
		return &entity.SummaryResult{
			SummaryText: fr.SummaryText,
			Metadata: entity.SummaryMetadata{
				ContentType:      fr.Metadata.ContentType,
				OriginalLength:   fr.Metadata.OriginalLength,
				ChunksProcessed:  1,
				ProcessingTimeMs: fr.Metadata.ProcessingTimeMs,
				OptionsUsed:      in.Options.WithDefaults(),
				Provider:         fr.Metadata.Provider,
			},
		}, nil
	}

	ctx, logger := e.requestLogger(ctx)

	if err := entity.ValidateInput(in, e.cfg.MinContentLength); err != nil {
		logger.WarnContext(ctx, "Rejected summarization input", slog.Any("error", err))
		return nil, err
	}

	start := time.Now()
	ctx, span := tracing.GetTracer().Start(ctx, "summarize.engine")
	defer span.End()

	ct := e.resolveType(in)
	body, err := e.extract(ctx, in.Content, ct)
	if err != nil {
		metrics.RecordSummarization("standard", string(ct), false, time.Since(start))
		return nil, err
	}

	chunks := e.chunker.Split(body)
	logger.InfoContext(ctx, "Starting summarization",
		slog.String("content_type", string(ct)),
		slog.Int("original_length", text.CountRunes(body)),
		slog.Int("chunks", len(chunks)))

	result, err := e.hier.Summarize(ctx, chunks, in.Options, ct, e.svc)
	duration := time.Since(start)
	metrics.RecordSummarization("standard", string(ct), err == nil, duration)
	if err != nil {
		logger.ErrorContext(ctx, "Summarization failed",
			slog.String("content_type", string(ct)),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return nil, err
	}

	result.Metadata.ProcessingTimeMs = duration.Milliseconds()
	result.Metadata.Stats = detect.Analyze(body, e.tokens)

	logger.InfoContext(ctx, "Summarization completed",
		slog.String("content_type", string(ct)),
		slog.Int("chunks_processed", result.Metadata.ChunksProcessed),
		slog.Int("summary_length", text.CountRunes(result.SummaryText)),
		slog.Duration("duration", duration))

	return result, nil
}

// SummarizeForensic issues one forensic completion call over the extracted
// text, parses the four report sections and renders the report. Missing
// sections are logged, not returned as errors.
func (e *Engine) SummarizeForensic(ctx context.Context, in entity.SummarizeInput) (*entity.ForensicResult, error) {
	ctx, logger := e.requestLogger(ctx)

	if err := entity.ValidateInput(in, e.cfg.MinContentLength); err != nil {
		logger.WarnContext(ctx, "Rejected forensic input", slog.Any("error", err))
		return nil, err
	}

	start := time.Now()
	ctx, span := tracing.GetTracer().Start(ctx, "summarize.forensic")
	defer span.End()

	ct := e.resolveType(in)
	body, err := e.extract(ctx, in.Content, ct)
	if err != nil {
		metrics.RecordSummarization("forensic", string(ct), false, time.Since(start))
		return nil, err
	}
	subtype := detect.ForensicSubtype(body, ct)

	var pageURL string
	if entity.IsWebURL(in.Content.SourceRef) {
		pageURL = in.Content.SourceRef
	}
	page := e.fetchMetadata(ctx, in, pageURL)

	req := prompt.Forensic(body, pageURL, subtype)
	req.Temperature = e.cfg.ForensicTemperature
	req.MaxOutputTokens = e.cfg.MaxOutputTokens

	provider := providerName(e.svc)
	logger.InfoContext(ctx, "Starting forensic analysis",
		slog.String("content_type", string(ct)),
		slog.String("subtype", string(subtype)),
		slog.Int("original_length", text.CountRunes(body)))

	callStart := time.Now()
	raw, err := e.svc.Complete(ctx, req)
	metrics.RecordCompletionStage(entity.StageForensic, err == nil, time.Since(callStart))
	if err != nil {
		metrics.RecordSummarization("forensic", string(ct), false, time.Since(start))
		logger.ErrorContext(ctx, "Forensic analysis failed", slog.Any("error", err))
		return nil, &entity.CompletionServiceError{
			Provider:   provider,
			Stage:      entity.StageForensic,
			ChunkIndex: -1,
			Err:        err,
		}
	}

	sections := forensic.Parse(raw)
	missing := forensic.Missing(sections)
	if warning := forensic.Validate(sections); warning != nil {
		logger.WarnContext(ctx, "Forensic response incomplete", slog.Any("warning", warning))
		metrics.RecordForensicMissingSections(missing)
	}

	model := e.cfg.Model
	if model == "" {
		model = provider
	}
	duration := time.Since(start)
	metrics.RecordSummarization("forensic", string(ct), true, duration)

	return &entity.ForensicResult{
		SummaryText: forensic.Format(sections, page, model, e.now()),
		Sections:    sections,
		Metadata: entity.ForensicMetadata{
			ContentType:      ct,
			DetectedSubtype:  subtype,
			OriginalLength:   text.CountRunes(body),
			ProcessingTimeMs: duration.Milliseconds(),
			MissingSections:  missing,
			Page:             page,
			Provider:         provider,
		},
	}, nil
}

func (e *Engine) resolveType(in entity.SummarizeInput) entity.ContentType {
	if in.Type != "" && in.Type != entity.ContentTypeAuto {
		return in.Type
	}
	if in.Content.SourceType != "" && in.Content.SourceType != entity.ContentTypeAuto {
		return in.Content.SourceType
	}
	return detect.DetectUnit(in.Content)
}

func (e *Engine) extract(ctx context.Context, unit entity.ContentUnit, ct entity.ContentType) (string, error) {
	body := unit.Body()
	if e.extractor != nil {
		extracted, err := e.extractor.Extract(ctx, unit, ct)
		if err != nil {
			return "", fmt.Errorf("extract %s content: %w", ct, err)
		}
		body = extracted
	}
	n := len([]rune(strings.TrimSpace(body)))
	if n == 0 {
		return "", entity.NewInvalidInput("content", "has no extractable text")
	}
	// Raw payloads are only length-checked here, once they have become text.
	if n < e.cfg.MinContentLength {
		return "", entity.NewInvalidInput("content",
			fmt.Sprintf("is too short (%d < %d characters)", n, e.cfg.MinContentLength))
	}
	return body, nil
}

// fetchMetadata is best effort; failures only drop the report header.
func (e *Engine) fetchMetadata(ctx context.Context, in entity.SummarizeInput, pageURL string) *entity.PageMetadata {
	if !in.IncludeMetadata || pageURL == "" || e.metadata == nil {
		return nil
	}
	page, err := e.metadata.FetchMetadata(ctx, pageURL)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "Page metadata unavailable",
			slog.String("url", pageURL),
			slog.Any("error", err))
		return nil
	}
	return page
}

// requestLogger returns a context carrying a logger tagged with the request ID,
// generating one when the caller did not supply it.
func (e *Engine) requestLogger(ctx context.Context) (context.Context, *slog.Logger) {
	ctx, _ = requestid.Ensure(ctx)
	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))
	return logging.WithLogger(ctx, logger), logger
}

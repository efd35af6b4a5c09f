package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"google.golang.org/api/googleapi"

	"ytldr/internal/domain/entity"
	"ytldr/internal/resilience/circuitbreaker"
)

// Sampling settings sent with every Gemini request.
const (
	geminiTopK = 40
	geminiTopP = 0.95
)

// Gemini implements the completion service using Google's Gemini API.
type Gemini struct {
	model  llms.Model
	config Config
	caller *caller
}

// NewGemini creates a Gemini adapter backed by the langchaingo Google AI client.
func NewGemini(ctx context.Context, cfg Config, opts ...Option) (*Gemini, error) {
	cfg = cfg.WithDefaults()
	if cfg.BaseURL != "" {
		return nil, fmt.Errorf("gemini provider does not support a custom base URL")
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewGeminiWithModel(model, cfg, opts...), nil
}

// NewGeminiWithModel wraps an existing langchaingo model.
func NewGeminiWithModel(model llms.Model, cfg Config, opts ...Option) *Gemini {
	cfg = cfg.WithDefaults()

	slog.Info("Initialized Gemini completion service",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &Gemini{
		model:  model,
		config: cfg,
		caller: newCaller(ProviderGemini, circuitbreaker.ProviderConfig("gemini-api"), cfg.Timeout, opts),
	}
}

// Name implements summarize.Named.
func (g *Gemini) Name() string { return ProviderGemini }

// Breaker returns the adapter's circuit breaker.
func (g *Gemini) Breaker() *circuitbreaker.CircuitBreaker { return g.caller.Breaker() }

// Complete sends the joined prompt as a single user turn.
func (g *Gemini) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	return g.caller.do(ctx, func(ctx context.Context) (string, error) {
		return g.doComplete(ctx, req)
	})
}

func (g *Gemini) doComplete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, req.Prompt(),
		llms.WithModel(g.config.Model),
		llms.WithTemperature(req.Temperature),
		llms.WithMaxTokens(maxTokens(req.MaxOutputTokens, g.config.MaxTokens)),
		llms.WithTopK(geminiTopK),
		llms.WithTopP(geminiTopP),
	)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("gemini api error: %w", statusError(apiErr.Code, apiErr.Message))
		}
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	return out, nil
}

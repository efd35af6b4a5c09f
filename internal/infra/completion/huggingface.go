package completion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"

	"ytldr/internal/domain/entity"
	"ytldr/internal/resilience/circuitbreaker"
)

const huggingFaceBaseURL = "https://api-inference.huggingface.co"

// Generation bounds sent to the summarization model.
const (
	hfMaxLength = 200
	hfMinLength = 50
)

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// HuggingFace implements the completion service with the Hugging Face
// inference API and a summarization model such as bart-large-cnn.
// The model ignores instructions, so the output is always one bullet.
type HuggingFace struct {
	client *resty.Client
	config Config
	caller *caller
}

// NewHuggingFace creates a Hugging Face adapter. An empty APIKey uses the
// anonymous free tier.
func NewHuggingFace(cfg Config, opts ...Option) *HuggingFace {
	cfg = cfg.WithDefaults()
	if cfg.BaseURL == "" {
		cfg.BaseURL = huggingFaceBaseURL
	}
	c := newCaller(ProviderHuggingFace, circuitbreaker.ProviderConfig("huggingface-api"), cfg.Timeout, opts)

	client := resty.NewWithClient(c.httpClient).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	slog.Info("Initialized Hugging Face completion service",
		slog.String("model", cfg.Model),
		slog.Bool("authenticated", cfg.APIKey != ""))

	return &HuggingFace{client: client, config: cfg, caller: c}
}

// Name implements summarize.Named.
func (h *HuggingFace) Name() string { return ProviderHuggingFace }

// Breaker returns the adapter's circuit breaker.
func (h *HuggingFace) Breaker() *circuitbreaker.CircuitBreaker { return h.caller.Breaker() }

// Complete summarizes the joined prompt and returns it as a single bullet.
func (h *HuggingFace) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	return h.caller.do(ctx, func(ctx context.Context) (string, error) {
		return h.doComplete(ctx, req)
	})
}

func (h *HuggingFace) doComplete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	var result []hfSummary
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(hfRequest{
			Inputs: req.Prompt(),
			Parameters: hfParameters{
				MaxLength: hfMaxLength,
				MinLength: hfMinLength,
				DoSample:  false,
			},
		}).
		SetResult(&result).
		SetError(&hfError{}).
		Post("/models/" + h.config.Model)
	if err != nil {
		return "", fmt.Errorf("huggingface api error: %w", err)
	}

	if resp.IsError() {
		msg := resp.Status()
		if e, ok := resp.Error().(*hfError); ok && e.Error != "" {
			msg = e.Error
		}
		return "", fmt.Errorf("huggingface api error: %w", statusError(resp.StatusCode(), msg))
	}

	if len(result) == 0 || strings.TrimSpace(result[0].SummaryText) == "" {
		return "", fmt.Errorf("huggingface api returned unexpected response format: %w", ErrEmptyResponse)
	}
	return "• " + strings.TrimSpace(result[0].SummaryText), nil
}

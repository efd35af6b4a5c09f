package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ytldr/internal/domain/entity"
	"ytldr/internal/resilience/circuitbreaker"
)

// Claude implements the completion service using Anthropic's Claude API.
// It includes circuit breaker and retry logic for improved reliability.
type Claude struct {
	client anthropic.Client
	config Config
	caller *caller
}

// NewClaude creates a Claude adapter. The SDK's own retries are disabled so
// the adapter's retry policy is the only one in effect.
func NewClaude(cfg Config, opts ...Option) *Claude {
	cfg = cfg.WithDefaults()
	c := newCaller(ProviderClaude, circuitbreaker.ProviderConfig("claude-api"), cfg.Timeout, opts)

	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(c.httpClient),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}

	slog.Info("Initialized Claude completion service",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &Claude{
		client: anthropic.NewClient(clientOpts...),
		config: cfg,
		caller: c,
	}
}

// Name implements summarize.Named.
func (c *Claude) Name() string { return ProviderClaude }

// Breaker returns the adapter's circuit breaker.
func (c *Claude) Breaker() *circuitbreaker.CircuitBreaker { return c.caller.Breaker() }

// Complete sends the prompt as a single user message.
func (c *Claude) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	return c.caller.do(ctx, func(ctx context.Context) (string, error) {
		return c.doComplete(ctx, req)
	})
}

func (c *Claude) doComplete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(maxTokens(req.MaxOutputTokens, c.config.MaxTokens)),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt())),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("claude api error: %w", statusError(apiErr.StatusCode, apiErr.Error()))
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("claude api returned no text blocks: %w", ErrEmptyResponse)
	}
	return b.String(), nil
}

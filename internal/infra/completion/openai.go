package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"ytldr/internal/domain/entity"
	"ytldr/internal/resilience/circuitbreaker"
)

// OpenAI implements the completion service using the OpenAI chat API.
type OpenAI struct {
	client *openai.Client
	config Config
	caller *caller
}

// NewOpenAI creates an OpenAI adapter. BaseURL, when set, must include the
// API version path (for example "http://host/v1").
func NewOpenAI(cfg Config, opts ...Option) *OpenAI {
	cfg = cfg.WithDefaults()
	c := newCaller(ProviderOpenAI, circuitbreaker.ProviderConfig("openai-api"), cfg.Timeout, opts)

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = c.httpClient

	slog.Info("Initialized OpenAI completion service",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		caller: c,
	}
}

// Name implements summarize.Named.
func (o *OpenAI) Name() string { return ProviderOpenAI }

// Breaker returns the adapter's circuit breaker.
func (o *OpenAI) Breaker() *circuitbreaker.CircuitBreaker { return o.caller.Breaker() }

// Complete sends the instruction as a system message and the content as a user message.
func (o *OpenAI) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	return o.caller.do(ctx, func(ctx context.Context) (string, error) {
		return o.doComplete(ctx, req)
	})
}

func (o *OpenAI) doComplete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		Messages:    messages(req),
		Temperature: float32(req.Temperature),
		MaxTokens:   maxTokens(req.MaxOutputTokens, o.config.MaxTokens),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai api error: %w", statusError(apiErr.HTTPStatusCode, apiErr.Message))
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", fmt.Errorf("openai api error: %w", statusError(reqErr.HTTPStatusCode, reqErr.Error()))
		}
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned no choices: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func messages(req entity.CompletionRequest) []openai.ChatCompletionMessage {
	if req.Instruction == "" || req.Content == "" {
		return []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: req.Prompt()}}
	}
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.Instruction},
		{Role: openai.ChatMessageRoleUser, Content: req.Content},
	}
}

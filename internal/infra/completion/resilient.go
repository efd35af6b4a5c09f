package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"ytldr/internal/observability/logging"
	"ytldr/internal/resilience/circuitbreaker"
	"ytldr/internal/resilience/retry"
	"ytldr/internal/utils/text"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("provider returned empty response")

// Option customizes a provider adapter.
type Option func(*caller)

// WithRetryConfig overrides the retry policy (default retry.CompletionConfig).
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *caller) { c.retryConfig = cfg }
}

// WithCircuitBreaker overrides the provider's circuit breaker settings.
func WithCircuitBreaker(cfg circuitbreaker.Config) Option {
	return func(c *caller) { c.breaker = circuitbreaker.New(cfg) }
}

// WithMetricsRecorder overrides the Prometheus recorder.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(c *caller) { c.metrics = m }
}

// WithHTTPClient sets the HTTP client used by HTTP-based adapters.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *caller) { c.httpClient = hc }
}

// caller runs provider calls through timeout, retry and circuit breaker.
type caller struct {
	provider    string
	breaker     *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
	timeout     time.Duration
	metrics     MetricsRecorder
	httpClient  *http.Client
}

func newCaller(provider string, cb circuitbreaker.Config, timeout time.Duration, opts []Option) *caller {
	c := &caller{
		provider:    provider,
		breaker:     circuitbreaker.New(cb),
		retryConfig: retry.CompletionConfig(),
		timeout:     timeout,
		metrics:     NewPrometheusMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

// do executes fn with the caller's reliability policy.
func (c *caller) do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result string
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		out, err := circuitbreaker.Run(c.breaker, func() (string, error) {
			return c.once(ctx, fn)
		})
		if err != nil {
			if circuitbreaker.Rejected(err) {
				c.metrics.RecordCircuitOpen(c.provider)
				logging.FromContext(ctx).Warn("completion circuit breaker open, request rejected",
					slog.String("service", c.breaker.Name()),
					slog.String("state", c.breaker.State().String()))
				return fmt.Errorf("%s api unavailable: circuit breaker open", c.provider)
			}
			return err
		}
		result = out
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("%s completion failed: %w", c.provider, retryErr)
	}
	return result, nil
}

// once performs a single attempt with logging and metrics.
func (c *caller) once(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	logger := logging.FromContext(ctx).With(
		slog.String("provider", c.provider),
		slog.String("call_id", uuid.New().String()))

	start := time.Now()
	out, err := fn(ctx)
	duration := time.Since(start)

	if err == nil && out == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		c.metrics.RecordRequest(c.provider, "failure", duration)
		logger.ErrorContext(ctx, "Completion request failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", err
	}

	length := text.CountRunes(out)
	c.metrics.RecordRequest(c.provider, "success", duration)
	c.metrics.RecordOutputLength(c.provider, length)
	logger.InfoContext(ctx, "Completion request finished",
		slog.Int("output_length", length),
		slog.Duration("duration", duration))
	return out, nil
}

// statusError converts an HTTP status into a retry-classifiable error.
func statusError(code int, msg string) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &retry.HTTPError{StatusCode: code, Message: msg}
}

// Breaker exposes the circuit breaker for health reporting.
func (c *caller) Breaker() *circuitbreaker.CircuitBreaker { return c.breaker }

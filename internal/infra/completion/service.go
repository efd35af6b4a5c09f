package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"ytldr/internal/domain/entity"
	"ytldr/internal/observability/logging"
	"ytldr/internal/resilience/circuitbreaker"
)

// Service is a named completion service.
type Service interface {
	Complete(ctx context.Context, req entity.CompletionRequest) (string, error)
	Name() string
}

// New builds the adapter selected by cfg.Provider. The Hugging Face adapter
// falls back to the local extractive service when the API fails.
func New(ctx context.Context, cfg Config, opts ...Option) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid completion config: %w", err)
	}

	switch cfg.Provider {
	case ProviderGemini:
		return NewGemini(ctx, cfg, opts...)
	case ProviderClaude:
		return NewClaude(cfg, opts...), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg, opts...), nil
	case ProviderHuggingFace:
		return NewFallback(NewHuggingFace(cfg, opts...), NewLocal()), nil
	default:
		return NewLocal(), nil
	}
}

// Fallback tries Primary and answers with Secondary when Primary fails.
// Context cancellation is never masked.
type Fallback struct {
	Primary   Service
	Secondary Service
}

// NewFallback creates a Fallback.
func NewFallback(primary, secondary Service) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

// Name reports the primary provider.
func (f *Fallback) Name() string { return f.Primary.Name() }

// BreakerOf returns the circuit breaker guarding svc, or nil when svc makes
// no remote calls.
func BreakerOf(svc Service) *circuitbreaker.CircuitBreaker {
	switch s := svc.(type) {
	case *Fallback:
		return BreakerOf(s.Primary)
	case interface {
		Breaker() *circuitbreaker.CircuitBreaker
	}:
		return s.Breaker()
	}
	return nil
}

// Complete implements Service.
func (f *Fallback) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	out, err := f.Primary.Complete(ctx, req)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	logging.FromContext(ctx).WarnContext(ctx, "Primary completion service failed, using fallback",
		slog.String("primary", f.Primary.Name()),
		slog.String("fallback", f.Secondary.Name()),
		slog.String("error", err.Error()))
	return f.Secondary.Complete(ctx, req)
}

// DefaultMinInterval is the minimum spacing between guarded operations.
const DefaultMinInterval = time.Second

// ErrTooSoon is returned by Guard when an operation starts less than the
// minimum interval after the previous one.
var ErrTooSoon = errors.New("operation requested too soon after the previous one")

// Guard rejects operations that arrive closer together than an interval.
// It is applied per summarization request at the outer surfaces, not per
// completion call, so a map-reduce run is never throttled by its own calls.
type Guard struct {
	limiter *rate.Limiter
}

// NewGuard creates a Guard. A non-positive interval uses DefaultMinInterval.
func NewGuard(interval time.Duration) *Guard {
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	return &Guard{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Allow reports ErrTooSoon when the interval has not elapsed.
func (g *Guard) Allow() error {
	if !g.limiter.Allow() {
		return ErrTooSoon
	}
	return nil
}

// AllowAt is Allow with an explicit clock reading.
func (g *Guard) AllowAt(t time.Time) error {
	if !g.limiter.AllowN(t, 1) {
		return ErrTooSoon
	}
	return nil
}

// Package circuitbreaker wraps github.com/sony/gobreaker for completion
// providers and article fetches.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"ytldr/internal/observability/metrics"
)

// Config holds the settings of one breaker.
type Config struct {
	// Name labels logs and the circuit_breaker_state gauge.
	Name string

	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval after which closed-state counts are cleared.
	Interval time.Duration

	// Timeout spent open before probing again.
	Timeout time.Duration

	// FailureThreshold is the failure ratio (0..1) that trips the breaker.
	FailureThreshold float64

	// MinRequests before the ratio is considered.
	MinRequests uint32
}

// ProviderConfig returns the breaker settings for a completion provider.
// Hugging Face cold-starts models on the free tier, so its breaker needs
// more evidence before tripping and probes again sooner.
func ProviderConfig(name string) Config {
	cfg := Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
	if name == "huggingface-api" {
		cfg.Interval = 60 * time.Second
		cfg.Timeout = 30 * time.Second
		cfg.FailureThreshold = 0.7
		cfg.MinRequests = 10
	}
	return cfg
}

// ArticleFetchConfig returns the settings for page downloads. Sites fail for
// site-specific reasons, so the breaker trips only when nearly everything fails.
func ArticleFetchConfig() Config {
	return Config{
		Name:             "article-fetch",
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          5 * time.Minute,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// CircuitBreaker is a named gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a breaker and publishes its initial closed state.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordCircuitState(name, int(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	metrics.RecordCircuitState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Run calls fn through the breaker. An open breaker returns
// gobreaker.ErrOpenState without calling fn.
func Run[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.breaker.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

// Rejected reports whether err came from the breaker refusing the call
// rather than from the call itself.
func Rejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether calls are currently being rejected outright.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

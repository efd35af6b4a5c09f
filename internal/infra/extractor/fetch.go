// Package extractor turns content units into plain text before chunking.
// It fetches web pages with SSRF protection, extracts readable article text,
// strips inline HTML, reads PDF payloads, and loads page metadata for the
// forensic report header.
package extractor

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"ytldr/internal/resilience/circuitbreaker"
	"ytldr/internal/resilience/retry"
)

// Page is a fetched HTTP response body.
type Page struct {
	// URL is the final URL after redirects.
	URL         *url.URL
	ContentType string
	Body        []byte
}

// Fetcher downloads pages with URL validation, size limiting, redirect
// validation, retry and a circuit breaker.
// Thread safety: Fetcher is safe for concurrent use.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewFetcher creates a Fetcher.
func NewFetcher(config Config) *Fetcher {
	f := &Fetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ArticleFetchConfig()),
		retryConfig:    retry.ExtractionConfig(),
		config:         config,
	}

	dialer := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
	if config.DenyPrivateIPs {
		dialer.Control = denyPrivateDial
	}

	f.client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := ValidateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return f
}

// WithRetryConfig replaces the retry policy and returns f.
func (f *Fetcher) WithRetryConfig(cfg retry.Config) *Fetcher {
	f.retryConfig = cfg
	return f
}

// Breaker exposes the circuit breaker for health reporting.
func (f *Fetcher) Breaker() *circuitbreaker.CircuitBreaker {
	return f.circuitBreaker
}

// Fetch downloads rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if err := ValidateURL(rawURL, f.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	var page *Page
	err := retry.WithBackoff(ctx, f.retryConfig, func() error {
		p, err := circuitbreaker.Run(f.circuitBreaker, func() (*Page, error) {
			return f.doFetch(ctx, rawURL)
		})
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (f *Fetcher) doFetch(ctx context.Context, rawURL string) (*Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			ErrBodyTooLarge, len(body), f.config.MaxBodySize)
	}

	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}

	slog.DebugContext(ctx, "fetched page",
		slog.String("url", final.String()),
		slog.Int("bytes", len(body)))

	return &Page{URL: final, ContentType: resp.Header.Get("Content-Type"), Body: body}, nil
}

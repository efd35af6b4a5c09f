package extractor

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds settings for fetching and extracting remote content.
type Config struct {
	// Timeout bounds a single page fetch.
	// Env: EXTRACT_TIMEOUT (default 10s)
	Timeout time.Duration

	// MaxBodySize caps the bytes read from a response.
	// Env: EXTRACT_MAX_BODY_SIZE (default 10MB, range 1KB-100MB)
	MaxBodySize int64

	// MaxRedirects caps the redirect chain. Every hop is SSRF-validated.
	// Env: EXTRACT_MAX_REDIRECTS (default 5, range 0-10)
	MaxRedirects int

	// DenyPrivateIPs blocks URLs resolving to private networks.
	// Env: EXTRACT_DENY_PRIVATE_IPS (default true)
	DenyPrivateIPs bool

	// UserAgent identifies the fetcher to remote sites.
	// Env: EXTRACT_USER_AGENT
	UserAgent string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "ytldrBot/1.0",
	}
}

// Validate checks all fields for validity.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}

// LoadConfigFromEnv loads Config from EXTRACT_* variables on top of the defaults.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if val := os.Getenv("EXTRACT_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid EXTRACT_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("EXTRACT_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid EXTRACT_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if val := os.Getenv("EXTRACT_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid EXTRACT_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	if val := os.Getenv("EXTRACT_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if val := os.Getenv("EXTRACT_USER_AGENT"); val != "" {
		cfg.UserAgent = val
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Package completion provides completion service adapters for the summarization
// pipeline. It includes Gemini, Claude, OpenAI and Hugging Face clients wrapped
// in retry and circuit breaker logic, a local extractive fallback, and a
// minimum-interval guard for the outer surfaces.
package completion

import (
	"fmt"
	"time"
)

// Provider names accepted by New.
const (
	ProviderGemini      = "gemini"
	ProviderClaude      = "claude"
	ProviderOpenAI      = "openai"
	ProviderHuggingFace = "huggingface"
	ProviderLocal       = "local"
)

// Providers lists every provider New can build.
var Providers = []string{ProviderGemini, ProviderClaude, ProviderOpenAI, ProviderHuggingFace, ProviderLocal}

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 2048
)

var defaultModels = map[string]string{
	ProviderGemini:      "gemini-1.5-flash-latest",
	ProviderClaude:      "claude-sonnet-4-5-20250929",
	ProviderOpenAI:      "gpt-4o-mini",
	ProviderHuggingFace: "facebook/bart-large-cnn",
	ProviderLocal:       "extractive",
}

// Config holds the settings for one completion provider.
type Config struct {
	// Provider selects the adapter: gemini, claude, openai, huggingface or local.
	Provider string

	// APIKey authenticates against the provider. Hugging Face and local accept "".
	APIKey string

	// Model overrides the provider's default model.
	Model string

	// BaseURL overrides the provider endpoint. Empty uses the public API.
	BaseURL string

	// Timeout bounds a single call including retries.
	Timeout time.Duration

	// MaxTokens is used when a request does not set MaxOutputTokens.
	MaxTokens int
}

// DefaultModel returns the model used when Config.Model is empty.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// WithDefaults fills zero-valued fields.
func (c Config) WithDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel(c.Provider)
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	return c
}

// Validate checks that the provider is known and has the credentials it needs.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderClaude, ProviderOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("%s provider requires an API key", c.Provider)
		}
	case ProviderHuggingFace, ProviderLocal:
	default:
		return fmt.Errorf("unknown completion provider %q (want one of %v)", c.Provider, Providers)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", c.MaxTokens)
	}
	return nil
}

func maxTokens(requested, fallback int) int {
	if requested > 0 {
		return requested
	}
	return fallback
}

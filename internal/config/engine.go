// Package config loads the summarization engine settings from the
// environment, optionally layered over a YAML file.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"ytldr/internal/domain/entity"
	"ytldr/internal/infra/completion"
	"ytldr/internal/usecase/chunk"
	"ytldr/internal/usecase/summarize"
	pkgconfig "ytldr/pkg/config"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML file.
const ConfigFileEnv = "SUMMARIZER_CONFIG_FILE"

// maxMapConcurrency caps parallel map-phase calls.
const maxMapConcurrency = 16

// EngineConfig holds the engine tuning and the completion provider settings.
type EngineConfig struct {
	// Provider selects the completion adapter. Default: gemini
	Provider string `yaml:"provider"`
	// Model overrides the provider default model.
	Model string `yaml:"model"`
	// BaseURL overrides the provider endpoint (tests, proxies).
	BaseURL string `yaml:"base_url"`

	MaxChunkSize     int     `yaml:"max_chunk_size"`
	OverlapSize      int     `yaml:"overlap_size"`
	BoundaryRatio    float64 `yaml:"boundary_ratio"`
	MapConcurrency   int     `yaml:"map_concurrency"`
	MinContentLength int     `yaml:"min_content_length"`

	Temperature         float64 `yaml:"temperature"`
	ForensicTemperature float64 `yaml:"forensic_temperature"`
	MaxOutputTokens     int     `yaml:"max_output_tokens"`

	// Timeout bounds a single completion call including retries. Default: 60s
	Timeout time.Duration `yaml:"timeout"`
	// MinInterval is the minimum spacing between accepted summarization
	// requests. Zero disables the guard. Default: 1s
	MinInterval time.Duration `yaml:"min_interval"`

	// API keys are read from the environment only.
	GeminiAPIKey      string `yaml:"-"`
	AnthropicAPIKey   string `yaml:"-"`
	OpenAIAPIKey      string `yaml:"-"`
	HuggingFaceAPIKey string `yaml:"-"`
}

// DefaultEngineConfig returns the built-in defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Provider:            completion.ProviderGemini,
		MaxChunkSize:        chunk.DefaultMaxChunkSize,
		OverlapSize:         chunk.DefaultOverlapSize,
		BoundaryRatio:       chunk.DefaultBoundaryRatio,
		MapConcurrency:      1,
		MinContentLength:    entity.DefaultMinContentLength,
		Temperature:         0.3,
		ForensicTemperature: 0.1,
		MaxOutputTokens:     2048,
		Timeout:             60 * time.Second,
		MinInterval:         completion.DefaultMinInterval,
	}
}

// LoadEngineConfig loads configuration from environment variables.
// When SUMMARIZER_CONFIG_FILE is set the file is loaded first and the
// environment overrides it.
func LoadEngineConfig() (*EngineConfig, error) {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return LoadEngineConfigFile(path)
	}

	cfg := DefaultEngineConfig()
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}
	return &cfg, nil
}

// LoadEngineConfigFile loads a YAML file over the defaults, then applies
// environment overrides.
// The path parameter is expected to come from a trusted source (command-line argument or environment).
func LoadEngineConfigFile(path string) (*EngineConfig, error) {
	// #nosec G304 -- path is provided by the operator, not request input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}
	return &cfg, nil
}

// applyEnv overrides cfg with any SUMMARIZER_* and provider key variables that are set.
func applyEnv(cfg *EngineConfig) {
	cfg.Provider = pkgconfig.GetEnvString("SUMMARIZER_PROVIDER", cfg.Provider)
	cfg.Model = pkgconfig.GetEnvString("SUMMARIZER_MODEL", cfg.Model)
	cfg.BaseURL = pkgconfig.GetEnvString("SUMMARIZER_BASE_URL", cfg.BaseURL)

	cfg.MaxChunkSize = pkgconfig.GetEnvInt("SUMMARIZER_MAX_CHUNK_SIZE", cfg.MaxChunkSize)
	cfg.OverlapSize = pkgconfig.GetEnvInt("SUMMARIZER_OVERLAP_SIZE", cfg.OverlapSize)
	cfg.BoundaryRatio = pkgconfig.GetEnvFloat("SUMMARIZER_BOUNDARY_RATIO", cfg.BoundaryRatio)
	cfg.MapConcurrency = pkgconfig.GetEnvInt("SUMMARIZER_MAP_CONCURRENCY", cfg.MapConcurrency)
	cfg.MinContentLength = pkgconfig.GetEnvInt("SUMMARIZER_MIN_CONTENT_LENGTH", cfg.MinContentLength)

	cfg.Temperature = pkgconfig.GetEnvFloat("SUMMARIZER_TEMPERATURE", cfg.Temperature)
	cfg.ForensicTemperature = pkgconfig.GetEnvFloat("SUMMARIZER_FORENSIC_TEMPERATURE", cfg.ForensicTemperature)
	cfg.MaxOutputTokens = pkgconfig.GetEnvInt("SUMMARIZER_MAX_OUTPUT_TOKENS", cfg.MaxOutputTokens)

	cfg.Timeout = pkgconfig.GetEnvDuration("SUMMARIZER_TIMEOUT", cfg.Timeout)
	cfg.MinInterval = pkgconfig.GetEnvDuration("SUMMARIZER_MIN_INTERVAL", cfg.MinInterval)

	cfg.GeminiAPIKey = pkgconfig.GetEnvString("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.AnthropicAPIKey = pkgconfig.GetEnvString("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	cfg.OpenAIAPIKey = pkgconfig.GetEnvString("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.HuggingFaceAPIKey = pkgconfig.GetEnvString("HUGGINGFACE_API_KEY", cfg.HuggingFaceAPIKey)
}

// Validate checks configuration correctness.
func (c *EngineConfig) Validate() error {
	if !slices.Contains(completion.Providers, c.Provider) {
		return fmt.Errorf("SUMMARIZER_PROVIDER must be one of %v, got %q", completion.Providers, c.Provider)
	}

	if c.MaxChunkSize <= 0 {
		return fmt.Errorf("SUMMARIZER_MAX_CHUNK_SIZE must be positive")
	}

	if c.OverlapSize < 0 || c.OverlapSize >= c.MaxChunkSize {
		return fmt.Errorf("SUMMARIZER_OVERLAP_SIZE must be between 0 and MAX_CHUNK_SIZE-1")
	}

	if c.BoundaryRatio <= 0 || c.BoundaryRatio >= 1 {
		return fmt.Errorf("SUMMARIZER_BOUNDARY_RATIO must be between 0.0 and 1.0 (exclusive)")
	}

	if err := pkgconfig.ValidateRange(c.MapConcurrency, 1, maxMapConcurrency); err != nil {
		return fmt.Errorf("SUMMARIZER_MAP_CONCURRENCY %w", err)
	}

	if c.MinContentLength < 0 {
		return fmt.Errorf("SUMMARIZER_MIN_CONTENT_LENGTH must not be negative")
	}

	if err := pkgconfig.ValidateRange(c.Temperature, 0, 1); err != nil {
		return fmt.Errorf("SUMMARIZER_TEMPERATURE %w", err)
	}

	if err := pkgconfig.ValidateRange(c.ForensicTemperature, 0, 1); err != nil {
		return fmt.Errorf("SUMMARIZER_FORENSIC_TEMPERATURE %w", err)
	}

	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("SUMMARIZER_MAX_OUTPUT_TOKENS must be positive")
	}

	if err := pkgconfig.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("SUMMARIZER_TIMEOUT: %w", err)
	}

	if err := pkgconfig.ValidateNonNegativeDuration(c.MinInterval); err != nil {
		return fmt.Errorf("SUMMARIZER_MIN_INTERVAL: %w", err)
	}

	if err := c.Completion().Validate(); err != nil {
		return err
	}

	return nil
}

// APIKey returns the key for the selected provider.
func (c *EngineConfig) APIKey() string {
	switch c.Provider {
	case completion.ProviderGemini:
		return c.GeminiAPIKey
	case completion.ProviderClaude:
		return c.AnthropicAPIKey
	case completion.ProviderOpenAI:
		return c.OpenAIAPIKey
	case completion.ProviderHuggingFace:
		return c.HuggingFaceAPIKey
	}
	return ""
}

// Completion returns the provider settings.
func (c *EngineConfig) Completion() completion.Config {
	return completion.Config{
		Provider:  c.Provider,
		APIKey:    c.APIKey(),
		Model:     c.Model,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxOutputTokens,
	}.WithDefaults()
}

// Summarize returns the engine tuning.
func (c *EngineConfig) Summarize() summarize.Config {
	return summarize.Config{
		MaxChunkSize:        c.MaxChunkSize,
		OverlapSize:         c.OverlapSize,
		BoundaryRatio:       c.BoundaryRatio,
		MapConcurrency:      c.MapConcurrency,
		MinContentLength:    c.MinContentLength,
		Temperature:         c.Temperature,
		ForensicTemperature: c.ForensicTemperature,
		MaxOutputTokens:     c.MaxOutputTokens,
		Model:               c.Completion().Model,
	}
}

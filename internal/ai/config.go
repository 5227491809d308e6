package ai

import (
	"fmt"
	"time"

	"github.com/mrz1836/go-commit-coach/internal/env"
)

// Config holds AI provider configuration loaded from environment variables.
type Config struct {
	// Enabled is the master switch for the AI request layer.
	Enabled bool

	// Provider specifies which AI provider to use: "anthropic", "openai", or "google".
	Provider string

	// APIKey is the API key for the selected provider.
	APIKey string

	// Model specifies which model to use (provider-specific defaults apply if empty).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Timeout is the maximum time to wait for AI generation.
	Timeout time.Duration

	// Temperature controls randomness (0.0-2.0).
	Temperature float64

	// CacheEnabled enables prompt-keyed response caching (default: true).
	CacheEnabled bool

	// CacheTTL is the cache time-to-live (default: 1 hour).
	CacheTTL time.Duration

	// CacheMaxSize is the maximum number of cached entries (default: 1000).
	CacheMaxSize int

	// RetryMaxAttempts is the maximum number of retry attempts (default: 3).
	RetryMaxAttempts int

	// RetryInitialDelay is the initial delay between retries (default: 1s).
	RetryInitialDelay time.Duration

	// RetryMaxDelay is the maximum delay between retries (default: 10s).
	RetryMaxDelay time.Duration
}

// sharedAPIKeyEnv is the provider-independent key variable. When set it
// wins over the per-provider variables in providerKeyEnvs.
const sharedAPIKeyEnv = "COMMIT_COACH_AI_API_KEY" //nolint:gosec // env var name, not a credential

// providerKeyEnvs maps each provider to its own key variable, consulted
// when the shared variable is not set.
//
//nolint:gochecknoglobals // fixed lookup table
var providerKeyEnvs = map[string]string{
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderGoogle:    "GEMINI_API_TOKEN",
}

// LoadConfig reads AI configuration from environment variables.
// All settings have sensible defaults; the provider defaults to Google Gemini.
func LoadConfig() *Config {
	cfg := &Config{
		Enabled:     env.GetBool("COMMIT_COACH_AI_ENABLED", true),
		Provider:    env.GetString("COMMIT_COACH_AI_PROVIDER", ProviderGoogle),
		Model:       env.GetString("COMMIT_COACH_AI_MODEL", ""),
		MaxTokens:   env.GetInt("COMMIT_COACH_AI_MAX_TOKENS", 2000),
		Timeout:     env.GetDuration("COMMIT_COACH_AI_TIMEOUT", 30*time.Second),
		Temperature: env.GetFloat("COMMIT_COACH_AI_TEMPERATURE", 0.3),

		// Cache (enabled by default for cost savings)
		CacheEnabled: env.GetBool("COMMIT_COACH_AI_CACHE_ENABLED", true),
		CacheTTL:     env.GetDuration("COMMIT_COACH_AI_CACHE_TTL", 1*time.Hour),
		CacheMaxSize: env.GetInt("COMMIT_COACH_AI_CACHE_MAX_SIZE", 1000),

		// Retry
		RetryMaxAttempts:  env.GetInt("COMMIT_COACH_AI_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: env.GetDuration("COMMIT_COACH_AI_RETRY_INITIAL_DELAY", 1*time.Second),
		RetryMaxDelay:     env.GetDuration("COMMIT_COACH_AI_RETRY_MAX_DELAY", 10*time.Second),
	}

	cfg.ResolveAPIKey()

	// Apply default model if not specified
	if cfg.Model == "" {
		cfg.Model = GetDefaultModel(cfg.Provider)
	}

	return cfg
}

// ResolveAPIKey re-reads the API key for the current provider: the shared
// COMMIT_COACH_AI_API_KEY variable first, then the provider's own key
// variable. Overlays that switch providers after LoadConfig must call this
// again so the key follows the provider instead of the previous one.
func (c *Config) ResolveAPIKey() {
	c.APIKey = env.GetString(sharedAPIKeyEnv, "")
	if c.APIKey != "" {
		return
	}
	if name, ok := providerKeyEnvs[c.Provider]; ok {
		c.APIKey = env.GetString(name, "")
	}
}

// IsEnabled returns true if AI is enabled and properly configured.
func (c *Config) IsEnabled() bool {
	return c.Enabled && c.APIKey != ""
}

// Validate checks that all configuration values are within valid bounds.
// Returns nil if configuration is valid, or an error describing the first invalid value found.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGoogle:
		// Valid provider
	default:
		return ConfigError("provider", fmt.Sprintf("unsupported provider %q", c.Provider))
	}

	// Temperature range of 0.0 to 2.0 is valid for most providers
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return ConfigError("temperature", fmt.Sprintf("%v must be between 0.0 and 2.0", c.Temperature))
	}

	if c.MaxTokens <= 0 {
		return ConfigError("max_tokens", fmt.Sprintf("%d must be positive", c.MaxTokens))
	}

	if c.Timeout <= 0 {
		return ConfigError("timeout", fmt.Sprintf("%v must be positive", c.Timeout))
	}

	if c.CacheEnabled && c.CacheMaxSize <= 0 {
		return ConfigError("cache_max_size", fmt.Sprintf("%d must be positive when cache is enabled", c.CacheMaxSize))
	}

	if c.CacheEnabled && c.CacheTTL <= 0 {
		return ConfigError("cache_ttl", fmt.Sprintf("%v must be positive when cache is enabled", c.CacheTTL))
	}

	if c.RetryMaxAttempts <= 0 {
		return ConfigError("retry_max_attempts", fmt.Sprintf("%d must be positive", c.RetryMaxAttempts))
	}

	if c.RetryInitialDelay <= 0 {
		return ConfigError("retry_initial_delay", fmt.Sprintf("%v must be positive", c.RetryInitialDelay))
	}

	if c.RetryMaxDelay < c.RetryInitialDelay {
		return ConfigError("retry_max_delay", fmt.Sprintf("%v must be >= retry_initial_delay (%v)", c.RetryMaxDelay, c.RetryInitialDelay))
	}

	return nil
}

package ai

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears a variable for the test and restores it afterwards.
// t.Setenv registers the restore; Unsetenv then removes the value, since a
// set-but-empty string variable is not the same as an unset one.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnv(t,
		"COMMIT_COACH_AI_ENABLED",
		"COMMIT_COACH_AI_PROVIDER",
		"COMMIT_COACH_AI_API_KEY",
		"COMMIT_COACH_AI_MODEL",
		"GEMINI_API_TOKEN",
	)

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, ProviderGoogle, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.InEpsilon(t, 0.3, cfg.Temperature, 0.001)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 1000, cfg.CacheMaxSize)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, time.Second, cfg.RetryInitialDelay)
	assert.Equal(t, 10*time.Second, cfg.RetryMaxDelay)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("COMMIT_COACH_AI_ENABLED", "true")
	t.Setenv("COMMIT_COACH_AI_PROVIDER", "anthropic")
	t.Setenv("COMMIT_COACH_AI_API_KEY", "test-key")
	t.Setenv("COMMIT_COACH_AI_MODEL", "claude-sonnet-4-20250514")
	t.Setenv("COMMIT_COACH_AI_MAX_TOKENS", "500")
	t.Setenv("COMMIT_COACH_AI_TIMEOUT", "5s")
	t.Setenv("COMMIT_COACH_AI_TEMPERATURE", "0.7")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model)
	assert.Equal(t, 500, cfg.MaxTokens)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.InEpsilon(t, 0.7, cfg.Temperature, 0.001)
}

func TestLoadConfigProviderKeyFallback(t *testing.T) {
	t.Setenv("COMMIT_COACH_AI_PROVIDER", "google")
	t.Setenv("COMMIT_COACH_AI_API_KEY", "")
	t.Setenv("GEMINI_API_TOKEN", "gemini-token")

	cfg := LoadConfig()

	assert.Equal(t, "gemini-token", cfg.APIKey)
}

func TestResolveAPIKeyFollowsProvider(t *testing.T) {
	unsetEnv(t, "COMMIT_COACH_AI_API_KEY", "GEMINI_API_TOKEN", "ANTHROPIC_API_KEY")
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg := &Config{Provider: ProviderGoogle, APIKey: "gemini-token"}

	// Switching provider must drop the previous provider's key and pick
	// up the new provider's own variable.
	cfg.Provider = ProviderOpenAI
	cfg.ResolveAPIKey()

	assert.Equal(t, "sk-openai", cfg.APIKey)
}

func TestResolveAPIKeySharedVariableWins(t *testing.T) {
	t.Setenv("COMMIT_COACH_AI_API_KEY", "shared-key")
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg := &Config{Provider: ProviderOpenAI}
	cfg.ResolveAPIKey()

	assert.Equal(t, "shared-key", cfg.APIKey)
}

func TestConfigIsEnabled(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		apiKey  string
		want    bool
	}{
		{"enabled with key", true, "key", true},
		{"enabled without key", true, "", false},
		{"disabled with key", false, "key", false},
		{"disabled without key", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Enabled: tt.enabled, APIKey: tt.apiKey}
			assert.Equal(t, tt.want, cfg.IsEnabled())
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Provider:          ProviderGoogle,
			APIKey:            "key",
			MaxTokens:         2000,
			Timeout:           30 * time.Second,
			Temperature:       0.3,
			CacheEnabled:      true,
			CacheTTL:          time.Hour,
			CacheMaxSize:      1000,
			RetryMaxAttempts:  3,
			RetryInitialDelay: time.Second,
			RetryMaxDelay:     10 * time.Second,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Provider = "mystery" }},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"cache enabled with zero size", func(c *Config) { c.CacheMaxSize = 0 }},
		{"cache enabled with zero TTL", func(c *Config) { c.CacheTTL = 0 }},
		{"zero retry attempts", func(c *Config) { c.RetryMaxAttempts = 0 }},
		{"zero initial delay", func(c *Config) { c.RetryInitialDelay = 0 }},
		{"max delay below initial", func(c *Config) { c.RetryMaxDelay = 500 * time.Millisecond }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestConfigValidateCacheDisabledSkipsCacheBounds(t *testing.T) {
	cfg := &Config{
		Provider:          ProviderOpenAI,
		MaxTokens:         100,
		Timeout:           time.Second,
		Temperature:       0,
		CacheEnabled:      false,
		RetryMaxAttempts:  1,
		RetryInitialDelay: time.Millisecond,
		RetryMaxDelay:     time.Millisecond,
	}

	require.NoError(t, cfg.Validate())
}

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mrz1836/go-commit-coach/internal/ai"
	"github.com/mrz1836/go-commit-coach/internal/gh"
)

const (
	// DefaultTokenEnv is the environment variable consulted for the GitHub token.
	DefaultTokenEnv = "GITHUB_TOKEN" //nolint:gosec // env var name, not a credential

	// defaultHistoryDir is the per-user directory holding the history database.
	defaultHistoryDir = ".commit-coach"

	// defaultHistoryDBFile is the history database filename.
	defaultHistoryDBFile = "history.db"
)

// DefaultConfig returns a fully-defaulted configuration, used when no
// config file is present.
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for optional fields
func applyDefaults(config *Config) {
	if config.Version == 0 {
		config.Version = 1
	}

	if config.GitHub.TokenEnv == "" {
		config.GitHub.TokenEnv = DefaultTokenEnv
	}

	if config.GitHub.APIBaseURL == "" {
		config.GitHub.APIBaseURL = gh.DefaultBaseURL
	}

	if config.GitHub.PerPage == 0 {
		config.GitHub.PerPage = gh.DefaultCommitsPerPage
	}

	if config.History.Enabled == nil {
		config.History.Enabled = boolPtr(true)
	}

	if config.History.DBPath == "" {
		config.History.DBPath = defaultHistoryDBPath()
	}
}

// defaultHistoryDBPath places the history database under the user's home
// directory, falling back to the working directory when home is unknown.
func defaultHistoryDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultHistoryDBFile
	}
	return filepath.Join(home, defaultHistoryDir, defaultHistoryDBFile)
}

// Token resolves the GitHub API token from the configured environment variable.
func (c *GitHubConfig) Token() string {
	return os.Getenv(c.TokenEnv)
}

// IsEnabled reports whether analysis history persistence is on.
func (c *HistoryConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Apply overlays the file-based AI settings onto an environment-loaded AI
// config. Unset fields leave the base value untouched.
func (c *AIConfig) Apply(base *ai.Config) {
	if c.Provider != "" && c.Provider != base.Provider {
		base.Provider = c.Provider
		// The environment-derived model and key track the old provider.
		base.Model = ai.GetDefaultModel(c.Provider)
		base.ResolveAPIKey()
	}
	if c.Model != "" {
		base.Model = c.Model
	}
	if c.MaxTokens != 0 {
		base.MaxTokens = c.MaxTokens
	}
	if c.TimeoutSeconds != 0 {
		base.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	if c.Temperature != 0 {
		base.Temperature = c.Temperature
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// Package config loads and validates the commit-coach configuration file.
// Configuration is YAML with environment variables layered on top for
// credentials; the file itself never holds secrets.
package config

// Config represents the complete commit-coach configuration
type Config struct {
	Version int           `yaml:"version"`
	GitHub  GitHubConfig  `yaml:"github,omitempty"`
	AI      AIConfig      `yaml:"ai,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
}

// GitHubConfig defines GitHub API access settings
type GitHubConfig struct {
	// TokenEnv names the environment variable holding the API token.
	// The token itself never lives in the config file.
	TokenEnv string `yaml:"token_env,omitempty"` // Default: GITHUB_TOKEN

	// APIBaseURL overrides the GitHub API endpoint (for GHE setups).
	APIBaseURL string `yaml:"api_base_url,omitempty"` // Default: https://api.github.com

	// Owner is the default account whose repositories are inspected.
	Owner string `yaml:"owner,omitempty"`

	// PerPage is the page size for commit history fetches (1-30).
	PerPage int `yaml:"per_page,omitempty"` // Default: 10
}

// AIConfig overrides AI provider settings from the config file.
// Unset fields fall back to environment-driven defaults.
type AIConfig struct {
	Provider       string  `yaml:"provider,omitempty"` // anthropic, openai, or google
	Model          string  `yaml:"model,omitempty"`
	MaxTokens      int     `yaml:"max_tokens,omitempty"`
	TimeoutSeconds int     `yaml:"timeout_seconds,omitempty"`
	Temperature    float64 `yaml:"temperature,omitempty"`
}

// HistoryConfig defines the local analysis history store
type HistoryConfig struct {
	// Enabled turns on persistence of analysis results.
	Enabled *bool `yaml:"enabled,omitempty"` // Default: true

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path,omitempty"` // Default: ~/.commit-coach/history.db
}

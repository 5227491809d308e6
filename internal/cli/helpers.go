package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrz1836/go-commit-coach/internal/ai"
	"github.com/mrz1836/go-commit-coach/internal/config"
	"github.com/mrz1836/go-commit-coach/internal/db"
	appErrors "github.com/mrz1836/go-commit-coach/internal/errors"
	"github.com/mrz1836/go-commit-coach/internal/gh"
	"github.com/mrz1836/go-commit-coach/internal/logging"
)

// Static errors for command implementations
var (
	ErrMissingOwner    = errors.New("no owner configured; set github.owner in the config file or pass owner/repo")
	ErrInvalidRepoArg  = errors.New("repository must be owner/name")
	ErrHistoryDisabled = errors.New("analysis history is disabled in the configuration")
)

// loadConfigWithFlags loads the configuration file named by the flags.
// A missing file yields the built-in defaults rather than an error.
func loadConfigWithFlags(flags *Flags, logger *logrus.Logger) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"config": flags.ConfigFile,
		"owner":  cfg.GitHub.Owner,
	}).Debug("Configuration loaded")

	return cfg, nil
}

// logConfigFromFlags builds the dependency-injected logging configuration
// handed to the GitHub client and the repository inspector.
func logConfigFromFlags(flags *Flags) *logging.LogConfig {
	return &logging.LogConfig{
		ConfigFile: flags.ConfigFile,
		LogLevel:   flags.LogLevel,
		Verbose:    flags.Verbose,
	}
}

// newGitHubClient creates a GitHub client from the loaded configuration.
// The token comes from the environment variable the config names.
func newGitHubClient(cfg *config.Config, flags *Flags, logger *logrus.Logger) (gh.Client, error) {
	token := cfg.GitHub.Token()
	if token == "" {
		return nil, fmt.Errorf("%w (set %s)", appErrors.ErrEmptyToken, cfg.GitHub.TokenEnv)
	}

	return gh.NewClient(gh.Options{
		Token:   token,
		BaseURL: cfg.GitHub.APIBaseURL,
	}, logger, logConfigFromFlags(flags))
}

// newAnalyzer assembles the AI request layer: environment configuration with
// file overrides applied, the genkit provider, response cache and retry
// policy. The resolved AI config is returned alongside so callers can record
// which provider and model produced a result.
func newAnalyzer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*ai.Analyzer, *ai.Config, error) {
	aiCfg := ai.LoadConfig()
	cfg.AI.Apply(aiCfg)

	if !aiCfg.IsEnabled() {
		return nil, nil, fmt.Errorf("%w: set COMMIT_COACH_AI_API_KEY or the provider's key variable", ai.ErrProviderNotConfigured)
	}

	if err := aiCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := ai.NewGenkitProvider(ctx, aiCfg, logger.WithField("component", "ai"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize AI provider: %w", err)
	}

	var cache *ai.ResponseCache
	if aiCfg.CacheEnabled {
		cache = ai.NewResponseCache(aiCfg)
	}

	analyzer := ai.NewAnalyzer(
		provider,
		cache,
		ai.RetryConfigFromConfig(aiCfg),
		aiCfg.Timeout,
		logger.WithField("component", "analyzer"),
	)

	return analyzer, aiCfg, nil
}

// openHistoryStore opens the SQLite history database named by the
// configuration. The caller owns the returned database and must close it.
func openHistoryStore(cfg *config.Config) (db.Database, db.HistoryStore, error) {
	if !cfg.History.IsEnabled() {
		return nil, nil, ErrHistoryDisabled
	}

	database, err := db.Open(db.OpenOptions{
		Path:        cfg.History.DBPath,
		AutoMigrate: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}

	return database, db.NewHistoryStore(database.DB()), nil
}

// splitRepoArg resolves a repository argument to an owner and name. A bare
// name borrows the configured default owner; "owner/name" is taken as-is.
func splitRepoArg(cfg *config.Config, arg string) (string, string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", "", appErrors.ErrEmptyRepo
	}

	if strings.Contains(arg, "/") {
		parts := strings.SplitN(arg, "/", 2)
		if parts[0] == "" || parts[1] == "" || strings.Contains(parts[1], "/") {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoArg, arg)
		}
		return parts[0], parts[1], nil
	}

	if cfg.GitHub.Owner == "" {
		return "", "", ErrMissingOwner
	}

	return cfg.GitHub.Owner, arg, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/go-commit-coach/internal/ai"
	"github.com/mrz1836/go-commit-coach/internal/gh"
)

// Validation sentinel errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidPerPage     = errors.New("per_page must be between 1 and 30")
	ErrInvalidOwner       = errors.New("owner must be a plain account name")
	ErrInvalidProvider    = errors.New("unsupported AI provider")
	ErrInvalidTemperature = errors.New("temperature must be between 0.0 and 2.0")
	ErrInvalidTimeout     = errors.New("timeout_seconds must not be negative")
	ErrMissingDBPath      = errors.New("history db_path must be set when history is enabled")
)

// Validate checks that all configuration values are within valid bounds.
// Returns nil if configuration is valid, or an error describing the first
// invalid value found.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("%w: %d (expected 1)", ErrUnsupportedVersion, c.Version)
	}

	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > gh.MaxPerPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPerPage, c.GitHub.PerPage)
	}

	if owner := c.GitHub.Owner; owner != "" {
		if strings.ContainsAny(owner, "/ \t") {
			return fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
		}
	}

	switch c.AI.Provider {
	case "", ai.ProviderAnthropic, ai.ProviderOpenAI, ai.ProviderGoogle:
		// Valid (empty defers to environment)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.AI.Provider)
	}

	if c.AI.Temperature < 0.0 || c.AI.Temperature > 2.0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTemperature, c.AI.Temperature)
	}

	if c.AI.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.AI.TimeoutSeconds)
	}

	if c.History.IsEnabled() && c.History.DBPath == "" {
		return ErrMissingDBPath
	}

	return nil
}

package ai

import (
	"errors"
	"fmt"
)

// Error templates for AI operations following project pattern from internal/errors.
var (
	errAIGenerationTemplate = errors.New("AI generation failed")
	errAIProviderTemplate   = errors.New("AI provider error")
	errAIConfigTemplate     = errors.New("AI configuration error")
)

// Sentinel errors for AI operations.
var (
	ErrProviderNotConfigured = errors.New("AI provider not configured")
	ErrAPIKeyMissing         = errors.New("AI API key not provided")
	ErrUnsupportedProvider   = errors.New("unsupported AI provider")
	ErrGenerationTimeout     = errors.New("AI generation timed out")
	ErrEmptyResponse         = errors.New("AI returned empty response")
	ErrEmptyInput            = errors.New("AI input must not be empty")
)

// EmptyInputError reports which required input was missing.
//
// Example usage:
//
//	return EmptyInputError("commit messages")
//	// Returns: "AI input must not be empty: commit messages"
func EmptyInputError(what string) error {
	return fmt.Errorf("%w: %s", ErrEmptyInput, what)
}

// GenerationError creates a standardized AI generation error.
//
// Example usage:
//
//	return GenerationError("google", "commit analysis", err)
//	// Returns: "AI generation failed: google 'commit analysis': <original error>"
func GenerationError(provider, context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s '%s': %w", errAIGenerationTemplate, provider, context, err)
}

// ProviderError creates a standardized AI provider error.
//
// Example usage:
//
//	return ProviderError("google", "initialize", err)
//	// Returns: "AI provider error: google 'initialize': <original error>"
func ProviderError(provider, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s '%s': %w", errAIProviderTemplate, provider, operation, err)
}

// ConfigError creates a standardized AI configuration error.
//
// Example usage:
//
//	return ConfigError("invalid temperature", "must be between 0.0 and 2.0")
//	// Returns: "AI configuration error: invalid temperature: must be between 0.0 and 2.0"
func ConfigError(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", errAIConfigTemplate, field, reason)
}

// RateLimitError creates a standardized rate limit error for AI providers.
//
// Example usage:
//
//	return RateLimitError("google", "60 seconds")
//	// Returns: "AI provider error: google 'rate limit': retry after 60 seconds"
func RateLimitError(provider, retryAfter string) error {
	return fmt.Errorf("%w: %s 'rate limit': retry after %s", errAIProviderTemplate, provider, retryAfter)
}

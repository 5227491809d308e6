// Package errors defines common error types and utilities used throughout the application
package errors

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// GitHub errors
	ErrAuthentication  = errors.New("github authentication failed")
	ErrMissingLogin    = errors.New("profile response missing login field")
	ErrEmptyHistory    = errors.New("repository has no commit history")
	ErrPerPageExceeded = errors.New("per_page exceeds the single-page maximum of 30")
	ErrEmptyToken      = errors.New("github token is required")
	ErrEmptyOwner      = errors.New("repository owner is required")
	ErrEmptyRepo       = errors.New("repository name is required")

	// Local repository errors
	ErrInvalidRepository = errors.New("path is not a valid git repository")
	ErrRepository        = errors.New("repository operation failed")
	ErrNoStagedChanges   = errors.New("no staged changes found")
	ErrStaleSnapshot     = errors.New("staged snapshot is nil; call Status first")

	// Test errors (only used in tests)
	ErrTest = errors.New("test error")
)

// Error templates for static error definitions (satisfies err113 linter)
var (
	errValidationFailedTemplate = errors.New("validation failed")
	errEmptyFieldTemplate       = errors.New("field cannot be empty")
	errRequiredFieldTemplate    = errors.New("field is required")
	errInvalidFieldTemplate     = errors.New("invalid field")
	errUnexpectedStatusTemplate = errors.New("unexpected HTTP status")
)

// WrapWithContext wraps an error with operation context using consistent formatting.
// This replaces manual fmt.Errorf("failed to %s: %w", operation, err) patterns.
func WrapWithContext(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// ValidationError creates a standardized validation error.
func ValidationError(item, reason string) error {
	return fmt.Errorf("%w for %s: %s", errValidationFailedTemplate, item, reason)
}

// EmptyFieldError creates a standardized empty field validation error.
func EmptyFieldError(field string) error {
	return fmt.Errorf("%w: %s", errEmptyFieldTemplate, field)
}

// RequiredFieldError creates a standardized required field error.
func RequiredFieldError(field string) error {
	return fmt.Errorf("%w: %s", errRequiredFieldTemplate, field)
}

// InvalidFieldError creates a standardized invalid field error.
func InvalidFieldError(field, value string) error {
	return fmt.Errorf("%w: %s: %s", errInvalidFieldTemplate, field, value)
}

// UnexpectedStatusError creates an error carrying the HTTP status of a failed
// API call so callers can distinguish a failed request from an empty result.
func UnexpectedStatusError(operation string, status int) error {
	return fmt.Errorf("%w: %s returned %d", errUnexpectedStatusTemplate, operation, status)
}

// IsUnexpectedStatus reports whether err was produced by UnexpectedStatusError.
func IsUnexpectedStatus(err error) bool {
	return errors.Is(err, errUnexpectedStatusTemplate)
}

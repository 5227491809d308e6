package db

import "errors"

// Sentinel errors following internal/errors conventions
var (
	// ErrEmptyPath is returned when the database path is empty
	ErrEmptyPath = errors.New("database path is required")

	// ErrRecordNotFound is returned when a requested record does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrMissingRepository is returned when saving an analysis without owner/repo
	ErrMissingRepository = errors.New("owner and repo are required")

	// ErrMissingReview is returned when saving an analysis with an empty review
	ErrMissingReview = errors.New("review text is required")

	// ErrMissingMessage is returned when saving a generated message with empty content
	ErrMissingMessage = errors.New("message text is required")
)

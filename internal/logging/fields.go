// Package logging provides logging configuration types and utilities.
package logging

// StandardFields defines the standardized field names for structured logging
// across all components to ensure consistency and enable better log analysis.
//
//nolint:gochecknoglobals // Intentional global constants for standardized field names
var StandardFields = struct {
	// Repository Identifiers
	RepoName string
	Owner    string

	// Pagination Context
	Page    string
	PerPage string

	// Timing and Performance
	DurationMs string
	Timestamp  string

	// Operation Context
	Component     string
	Operation     string
	CorrelationID string

	// Resource Identifiers
	FilePath    string
	CommitCount string
	FileCount   string

	// Error Information
	Error     string
	ErrorType string
	Status    string
}{
	RepoName: "repo_name",
	Owner:    "owner",

	Page:    "page",
	PerPage: "per_page",

	DurationMs: "duration_ms",
	Timestamp:  "@timestamp",

	Component:     "component",
	Operation:     "operation",
	CorrelationID: "correlation_id",

	FilePath:    "file_path",
	CommitCount: "commit_count",
	FileCount:   "file_count",

	Error:     "error",
	ErrorType: "error_type",
	Status:    "status",
}

// ComponentNames provides standardized component identifiers for logging.
//
//nolint:gochecknoglobals // Intentional global constants for component names
var ComponentNames = struct {
	GitHubAPI string
	GitRepo   string
	AI        string
	CLI       string
	Config    string
	DB        string
}{
	GitHubAPI: "github-api",
	GitRepo:   "git-repo",
	AI:        "ai",
	CLI:       "cli",
	Config:    "config",
	DB:        "db",
}

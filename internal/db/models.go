package db

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables following GORM conventions
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Message kinds for MessageRecord.Kind.
const (
	MessageKindRewrite     = "rewrite"
	MessageKindDescription = "description"
	MessageKindCodePair    = "code_pair"
	MessageKindStagedDiff  = "staged_diff"
)

// AnalysisRecord stores one AI review of a repository's commit history.
type AnalysisRecord struct {
	BaseModel

	// Owner is the GitHub account the repository belongs to.
	Owner string `gorm:"index:idx_analysis_repo;not null" json:"owner"`

	// Repo is the repository name.
	Repo string `gorm:"index:idx_analysis_repo;not null" json:"repo"`

	// CommitCount is how many commit messages were analyzed.
	CommitCount int `json:"commit_count"`

	// Review is the structured habits summary returned by the AI.
	Review string `gorm:"type:text;not null" json:"review"`

	// Provider and Model identify the AI backend used.
	Provider string `json:"provider"`
	Model    string `json:"model"`

	// TokensUsed is the token count reported by the provider, if any.
	TokensUsed int `json:"tokens_used"`

	// DurationMs is the wall time of the full fetch-and-analyze run.
	DurationMs int64 `json:"duration_ms"`
}

// MessageRecord stores one AI-generated commit message.
type MessageRecord struct {
	BaseModel

	// Kind distinguishes the generation operation (rewrite, description,
	// code_pair, staged_diff).
	Kind string `gorm:"index;not null" json:"kind"`

	// Input is a short description of what the message was generated from
	// (the original message, the change description, or a file list).
	Input string `gorm:"type:text" json:"input"`

	// Message is the generated commit message.
	Message string `gorm:"type:text;not null" json:"message"`

	Provider string `json:"provider"`
	Model    string `json:"model"`
}

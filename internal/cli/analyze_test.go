package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/mrz1836/go-commit-coach/internal/errors"
	"github.com/mrz1836/go-commit-coach/internal/gh"
)

// stubAnalyzer records the messages it was asked to review
type stubAnalyzer struct {
	review   string
	err      error
	messages []string
}

func (s *stubAnalyzer) AnalyzeCommitList(_ context.Context, messages []string) (string, error) {
	s.messages = messages
	return s.review, s.err
}

// TestAnalyzeRepo tests the fetch-then-review flow for one repository
func TestAnalyzeRepo(t *testing.T) {
	records := []gh.CommitRecord{
		{Date: "2024-01-02T00:00:00Z", Message: "feat: add login"},
		{Date: "2024-01-01T00:00:00Z", Message: "fix typo"},
	}

	client := gh.NewMockClient()
	client.On("ListCommits", mock.Anything, "octocat", "project", 1, 10).
		Return(records, nil, nil)

	fetcher := gh.NewHistoryFetcher(client, newQuietLogger())
	analyzer := &stubAnalyzer{review: "**Strengths:**\n- clear subjects"}

	result, err := analyzeRepo(context.Background(), fetcher, analyzer, "octocat", "project", 10)
	require.NoError(t, err)

	assert.Equal(t, "octocat", result.owner)
	assert.Equal(t, "project", result.repo)
	assert.Equal(t, 2, result.commitCount)
	assert.Equal(t, analyzer.review, result.review)
	assert.Equal(t, []string{"feat: add login", "fix typo"}, analyzer.messages)

	client.AssertExpectations(t)
}

// TestAnalyzeRepoFetchFailure tests that a failed fetch skips the AI call
func TestAnalyzeRepoFetchFailure(t *testing.T) {
	client := gh.NewMockClient()
	client.On("ListCommits", mock.Anything, "octocat", "empty", 1, 10).
		Return(nil, nil, appErrors.ErrEmptyHistory)

	fetcher := gh.NewHistoryFetcher(client, newQuietLogger())
	analyzer := &stubAnalyzer{review: "unused"}

	_, err := analyzeRepo(context.Background(), fetcher, analyzer, "octocat", "empty", 10)
	require.ErrorIs(t, err, appErrors.ErrEmptyHistory)
	assert.Nil(t, analyzer.messages)
}

// TestAnalyzeRepoAnalysisFailure tests error propagation from the analyzer
func TestAnalyzeRepoAnalysisFailure(t *testing.T) {
	client := gh.NewMockClient()
	client.On("ListCommits", mock.Anything, "octocat", "project", 1, 10).
		Return([]gh.CommitRecord{{Message: "chore: deps"}}, nil, nil)

	fetcher := gh.NewHistoryFetcher(client, newQuietLogger())
	analyzer := &stubAnalyzer{err: appErrors.ErrTest}

	_, err := analyzeRepo(context.Background(), fetcher, analyzer, "octocat", "project", 10)
	require.ErrorIs(t, err, appErrors.ErrTest)
}

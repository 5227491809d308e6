package ai

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(provider Provider, cache *ResponseCache) *Analyzer {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewAnalyzer(provider, cache, &RetryConfig{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}, time.Second, logrus.NewEntry(logger))
}

func TestAnalyzeCommitListSuccess(t *testing.T) {
	review := "**Strengths:**\n- Clear subjects.\n\n**Weaknesses:**\n- Vague docs commits.\n\n**Advice:**\n- Name what was documented."
	provider := NewSuccessMock(review)
	analyzer := newTestAnalyzer(provider, nil)

	result, err := analyzer.AnalyzeCommitList(context.Background(), []string{"feat: add login", "docs"})

	require.NoError(t, err)
	assert.Equal(t, review, result)
	provider.AssertCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestAnalyzeCommitListEmptyInput(t *testing.T) {
	provider := NewSuccessMock("unused")
	analyzer := newTestAnalyzer(provider, nil)

	result, err := analyzer.AnalyzeCommitList(context.Background(), nil)

	require.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, result)
	provider.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestRewriteCommitMessageSuccess(t *testing.T) {
	provider := NewSuccessMock("fix: correct dashboard card alignment")
	analyzer := newTestAnalyzer(provider, nil)

	result, err := analyzer.RewriteCommitMessage(context.Background(), "fixed stuff on dashboard")

	require.NoError(t, err)
	assert.Equal(t, "fix: correct dashboard card alignment", result)
}

func TestRewriteCommitMessageEmptyInput(t *testing.T) {
	provider := NewSuccessMock("unused")
	analyzer := newTestAnalyzer(provider, nil)

	_, err := analyzer.RewriteCommitMessage(context.Background(), "   ")

	require.ErrorIs(t, err, ErrEmptyInput)
	provider.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestComposeFromDescriptionEmptyInput(t *testing.T) {
	provider := NewSuccessMock("unused")
	analyzer := newTestAnalyzer(provider, nil)

	_, err := analyzer.ComposeFromDescription(context.Background(), "")

	require.ErrorIs(t, err, ErrEmptyInput)
	provider.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestComposeFromCodePairOneSideEmptyIsAllowed(t *testing.T) {
	provider := NewSuccessMock("feat: add greeting helper")
	analyzer := newTestAnalyzer(provider, nil)

	result, err := analyzer.ComposeFromCodePair(context.Background(), "", "func Greet() string { return \"hi\" }")

	require.NoError(t, err)
	assert.Equal(t, "feat: add greeting helper", result)
}

func TestComposeFromCodePairBothSidesEmpty(t *testing.T) {
	provider := NewSuccessMock("unused")
	analyzer := newTestAnalyzer(provider, nil)

	_, err := analyzer.ComposeFromCodePair(context.Background(), "  ", "")

	require.ErrorIs(t, err, ErrEmptyInput)
	provider.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestComposeFromStagedDiffSuccess(t *testing.T) {
	message := "refactor: simplify request handling\n\n- Replace nested conditionals with early returns."
	provider := NewSuccessMock(message)
	analyzer := newTestAnalyzer(provider, nil)

	result, err := analyzer.ComposeFromStagedDiff(context.Background(), []FileDiff{
		{Path: "handler.go", Before: "old", After: "new"},
	})

	require.NoError(t, err)
	assert.Equal(t, message, result)
}

func TestComposeFromStagedDiffEmptyInput(t *testing.T) {
	provider := NewSuccessMock("unused")
	analyzer := newTestAnalyzer(provider, nil)

	_, err := analyzer.ComposeFromStagedDiff(context.Background(), nil)

	require.ErrorIs(t, err, ErrEmptyInput)
	provider.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestAnalyzerProviderUnavailable(t *testing.T) {
	provider := NewUnavailableMock()
	analyzer := newTestAnalyzer(provider, nil)

	_, err := analyzer.AnalyzeCommitList(context.Background(), []string{"feat: add login"})

	require.ErrorIs(t, err, ErrProviderNotConfigured)
	provider.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestAnalyzerNilProvider(t *testing.T) {
	analyzer := newTestAnalyzer(nil, nil)

	_, err := analyzer.RewriteCommitMessage(context.Background(), "some message")

	require.ErrorIs(t, err, ErrProviderNotConfigured)
}

func TestAnalyzerRetriesTransientFailure(t *testing.T) {
	provider := NewRateLimitMock("fix: handle rate limits")
	analyzer := newTestAnalyzer(provider, nil)

	result, err := analyzer.RewriteCommitMessage(context.Background(), "handle rate limits")

	require.NoError(t, err)
	assert.Equal(t, "fix: handle rate limits", result)
	provider.AssertNumberOfCalls(t, "GenerateText", 2)
}

func TestAnalyzerWrapsGenerationError(t *testing.T) {
	provider := NewErrorMock(errInvalidAPIKey)
	analyzer := newTestAnalyzer(provider, nil)

	_, err := analyzer.RewriteCommitMessage(context.Background(), "some message")

	require.Error(t, err)
	require.ErrorIs(t, err, errInvalidAPIKey)
	assert.Contains(t, err.Error(), "AI generation failed")
	assert.Contains(t, err.Error(), "commit rewrite")
}

func TestAnalyzerUsesCache(t *testing.T) {
	provider := NewSuccessMock("feat: add cached helper")
	cache := newTestCache(true, time.Hour, 10)
	analyzer := newTestAnalyzer(provider, cache)
	ctx := context.Background()

	first, err := analyzer.ComposeFromDescription(ctx, "add a helper")
	require.NoError(t, err)

	second, err := analyzer.ComposeFromDescription(ctx, "add a helper")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	provider.AssertNumberOfCalls(t, "GenerateText", 1)
}

func TestAnalyzerCacheKeyedByOperation(t *testing.T) {
	provider := NewSuccessMock("feat: add helper")
	cache := newTestCache(true, time.Hour, 10)
	analyzer := newTestAnalyzer(provider, cache)
	ctx := context.Background()

	_, err := analyzer.ComposeFromDescription(ctx, "add a helper")
	require.NoError(t, err)

	// Same input text with a different operation must not share cache entries.
	_, err = analyzer.RewriteCommitMessage(ctx, "add a helper")
	require.NoError(t, err)

	provider.AssertNumberOfCalls(t, "GenerateText", 2)
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain message",
			input:    "feat: add login form",
			expected: "feat: add login form",
		},
		{
			name:     "surrounding whitespace",
			input:    "\n  feat: add login form  \n",
			expected: "feat: add login form",
		},
		{
			name:     "fenced response",
			input:    "```\nfeat: add login form\n```",
			expected: "feat: add login form",
		},
		{
			name:     "fenced with language tag",
			input:    "```text\nfeat: add login form\n```",
			expected: "feat: add login form",
		},
		{
			name:     "multi-line body preserved",
			input:    "refactor: simplify parsing\n\n- Remove dead branches.\n- Inline helper.",
			expected: "refactor: simplify parsing\n\n- Remove dead branches.\n- Inline helper.",
		},
		{
			name:     "empty",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanResponse(tt.input))
		})
	}
}

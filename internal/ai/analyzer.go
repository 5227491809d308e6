package ai

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Token and timeout limits per operation kind.
const (
	// DefaultAnalysisMaxTokens bounds the commit history review, which is
	// prose capped at 20 lines by the prompt.
	DefaultAnalysisMaxTokens = 1000

	// DefaultMessageMaxTokens bounds generated commit messages. Subjects are
	// short but bodies with bullet points are allowed.
	DefaultMessageMaxTokens = 300

	// DefaultAnalyzerTimeout is the default timeout for a single AI operation.
	DefaultAnalyzerTimeout = 30 * time.Second
)

// Analyzer orchestrates AI-powered commit analysis and message generation.
// It validates inputs before any provider call, applies timeout, retry and
// caching, and normalizes provider output. Thread-safe for concurrent use.
type Analyzer struct {
	provider    Provider
	cache       *ResponseCache
	retryConfig *RetryConfig
	timeout     time.Duration
	logger      *logrus.Entry
}

// NewAnalyzer creates a new analyzer.
//
// Parameters:
// - provider: AI provider used for generation (required)
// - cache: optional response cache; nil disables caching
// - retryConfig: optional retry configuration; nil uses defaults
// - timeout: per-operation timeout; zero uses DefaultAnalyzerTimeout
// - logger: optional logger entry
//
// Returns:
// - Analyzer instance ready for use
func NewAnalyzer(
	provider Provider,
	cache *ResponseCache,
	retryConfig *RetryConfig,
	timeout time.Duration,
	logger *logrus.Entry,
) *Analyzer {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if retryConfig == nil {
		retryConfig = DefaultRetryConfig()
	}
	if timeout == 0 {
		timeout = DefaultAnalyzerTimeout
	}

	return &Analyzer{
		provider:    provider,
		cache:       cache,
		retryConfig: retryConfig,
		timeout:     timeout,
		logger:      logger,
	}
}

// AnalyzeCommitList reviews a list of commit messages as a whole and returns
// a structured habits summary (strengths, weaknesses, advice).
func (a *Analyzer) AnalyzeCommitList(ctx context.Context, messages []string) (string, error) {
	if len(messages) == 0 {
		return "", EmptyInputError("commit messages")
	}

	prompt := BuildAnalyzePrompt(messages)
	return a.generate(ctx, "analyze:", "commit analysis", prompt, DefaultAnalysisMaxTokens)
}

// RewriteCommitMessage rewrites one commit message as an ideal conventional commit.
func (a *Analyzer) RewriteCommitMessage(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", EmptyInputError("commit message")
	}

	prompt := BuildRewritePrompt(message)
	return a.generate(ctx, "rewrite:", "commit rewrite", prompt, DefaultMessageMaxTokens)
}

// ComposeFromDescription writes a commit message from a free-form change description.
func (a *Analyzer) ComposeFromDescription(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", EmptyInputError("change description")
	}

	prompt := BuildDescriptionPrompt(description)
	return a.generate(ctx, "describe:", "commit from description", prompt, DefaultMessageMaxTokens)
}

// ComposeFromCodePair writes a commit message summarizing the change from
// old code to new code. At least one side must be non-empty.
func (a *Analyzer) ComposeFromCodePair(ctx context.Context, oldCode, newCode string) (string, error) {
	if strings.TrimSpace(oldCode) == "" && strings.TrimSpace(newCode) == "" {
		return "", EmptyInputError("old/new code")
	}

	prompt := BuildCodePairPrompt(oldCode, newCode)
	return a.generate(ctx, "codepair:", "commit from code pair", prompt, DefaultMessageMaxTokens)
}

// ComposeFromStagedDiff writes one commit message summarizing all staged
// file changes together. Files are rendered in sorted path order so the
// same diff set always produces the same prompt (and cache key).
func (a *Analyzer) ComposeFromStagedDiff(ctx context.Context, diffs []FileDiff) (string, error) {
	if len(diffs) == 0 {
		return "", EmptyInputError("staged changes")
	}

	ordered := make([]FileDiff, len(diffs))
	copy(ordered, diffs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Path < ordered[j].Path
	})

	prompt := BuildStagedDiffPrompt(ordered)
	return a.generate(ctx, "staged:", "commit from staged changes", prompt, DefaultMessageMaxTokens)
}

// generate runs one AI operation: availability check, timeout, cache,
// retry, and response cleanup.
func (a *Analyzer) generate(ctx context.Context, cachePrefix, operation, prompt string, maxTokens int) (string, error) {
	if a.provider == nil || !a.provider.IsAvailable() {
		return "", ErrProviderNotConfigured
	}

	// Apply timeout only if parent context doesn't have a shorter deadline
	if dl, ok := ctx.Deadline(); !ok || time.Until(dl) > a.timeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	generator := func(ctx context.Context) (string, error) {
		resp, err := GenerateWithRetry(ctx, a.retryConfig, a.logger, func(ctx context.Context) (*GenerateResponse, error) {
			return a.provider.GenerateText(ctx, &GenerateRequest{
				Prompt:      prompt,
				MaxTokens:   maxTokens,
				Temperature: TemperatureNotSet,
			})
		})
		if err != nil {
			return "", err
		}
		return resp.Content, nil
	}

	var response string
	var err error

	if a.cache != nil {
		var cacheHit bool
		response, cacheHit, err = a.cache.GetOrGenerate(ctx, cachePrefix, prompt, generator)
		if cacheHit {
			a.logger.WithField("operation", operation).Debug("Using cached AI response")
		}
	} else {
		response, err = generator(ctx)
	}

	if err != nil {
		return "", GenerationError(a.provider.Name(), operation, err)
	}

	cleaned := CleanResponse(response)
	if cleaned == "" {
		return "", ErrEmptyResponse
	}

	return cleaned, nil
}

// CleanResponse normalizes AI output: surrounding whitespace is trimmed and
// markdown code fences wrapping the whole response are removed. Multi-line
// bodies are preserved.
func CleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```") {
		lines := strings.Split(cleaned, "\n")
		if len(lines) >= 2 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
			// Drop the opening fence line (which may carry a language tag)
			// and the closing fence line.
			cleaned = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return strings.TrimSpace(cleaned)
}

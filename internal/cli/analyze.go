package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/go-commit-coach/internal/config"
	"github.com/mrz1836/go-commit-coach/internal/db"
	"github.com/mrz1836/go-commit-coach/internal/gh"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

// analyzeConcurrency bounds how many repositories are analyzed at once.
// Each analysis is a full history fetch plus an AI call, so a small bound
// keeps both the API and the provider happy.
const analyzeConcurrency = 3

// repoAnalysis is the outcome of analyzing one repository's commit habits
type repoAnalysis struct {
	owner       string
	repo        string
	commitCount int
	review      string
	duration    time.Duration
}

// createAnalyzeCmd creates an isolated analyze command with the given flags
func createAnalyzeCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <repo> [<repo>...]",
		Short: "Review the commit habits of one or more repositories",
		Long: `Fetch the full commit history of each repository and ask the AI provider
to review the messages as a whole: strengths, weaknesses, and advice.

Multiple repositories are analyzed concurrently. Results print in the
order the repositories were given.`,
		Example: `  # Review one repository
  commit-coach analyze my-service

  # Review several and keep the results
  commit-coach analyze my-service octocat/hello-world --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: createRunAnalyze(flags),
	}

	cmd.Flags().Bool("save", false, "Save the review to the local history database")
	cmd.Flags().Int("per-page", 0, "Commits per page when fetching history (max 30; 0 uses the configured default)")

	return cmd
}

// createRunAnalyze creates an isolated analyze run function with the given flags
func createRunAnalyze(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		cfg, err := loadConfigWithFlags(flags, logger)
		if err != nil {
			return err
		}

		save, err := cmd.Flags().GetBool("save")
		if err != nil {
			return err
		}
		perPage, err := cmd.Flags().GetInt("per-page")
		if err != nil {
			return err
		}
		if perPage == 0 {
			perPage = cfg.GitHub.PerPage
		}

		// Resolve every argument up front so a bad name fails before any work
		owners := make([]string, len(args))
		repos := make([]string, len(args))
		for i, arg := range args {
			owners[i], repos[i], err = splitRepoArg(cfg, arg)
			if err != nil {
				return err
			}
		}

		client, err := newGitHubClient(cfg, flags, logger)
		if err != nil {
			return err
		}

		analyzer, aiCfg, err := newAnalyzer(ctx, cfg, logger)
		if err != nil {
			return err
		}

		fetcher := gh.NewHistoryFetcher(client, logger)

		results := make([]*repoAnalysis, len(args))
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(analyzeConcurrency)

		for i := range args {
			group.Go(func() error {
				result, analyzeErr := analyzeRepo(groupCtx, fetcher, analyzer, owners[i], repos[i], perPage)
				if analyzeErr != nil {
					return fmt.Errorf("%s/%s: %w", owners[i], repos[i], analyzeErr)
				}
				results[i] = result
				return nil
			})
		}

		if err = group.Wait(); err != nil {
			return err
		}

		for _, result := range results {
			output.Info(fmt.Sprintf("=== %s/%s (%d commits, %s) ===", result.owner, result.repo, result.commitCount, result.duration.Round(time.Millisecond)))
			output.Plain(result.review)
		}

		if save {
			return saveAnalyses(ctx, cfg, aiCfg.Provider, aiCfg.Model, results, logger)
		}

		return nil
	}
}

// analyzeRepo fetches one repository's history and reviews its messages
func analyzeRepo(ctx context.Context, fetcher *gh.HistoryFetcher, analyzer analyzerService, owner, repo string, perPage int) (*repoAnalysis, error) {
	start := time.Now()

	records, err := fetcher.FetchAll(ctx, owner, repo, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commit history: %w", err)
	}

	messages := make([]string, 0, len(records))
	for _, record := range records {
		messages = append(messages, record.Message)
	}

	review, err := analyzer.AnalyzeCommitList(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return &repoAnalysis{
		owner:       owner,
		repo:        repo,
		commitCount: len(records),
		review:      review,
		duration:    time.Since(start),
	}, nil
}

// analyzerService is the slice of the analyzer the analyze command needs
type analyzerService interface {
	AnalyzeCommitList(ctx context.Context, messages []string) (string, error)
}

// saveAnalyses persists the reviews to the local history database
func saveAnalyses(ctx context.Context, cfg *config.Config, provider, model string, results []*repoAnalysis, logger *logrus.Logger) error {
	database, store, err := openHistoryStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			logger.WithField("error", closeErr).Warn("Failed to close history database")
		}
	}()

	for _, result := range results {
		record := &db.AnalysisRecord{
			Owner:       result.owner,
			Repo:        result.repo,
			CommitCount: result.commitCount,
			Review:      result.review,
			Provider:    provider,
			Model:       model,
			DurationMs:  result.duration.Milliseconds(),
		}
		if err = store.SaveAnalysis(ctx, record); err != nil {
			return fmt.Errorf("failed to save analysis for %s/%s: %w", result.owner, result.repo, err)
		}
		logger.WithFields(logrus.Fields{
			"id":    record.ID,
			"owner": result.owner,
			"repo":  result.repo,
		}).Debug("Saved analysis")
	}

	output.Success(fmt.Sprintf("Saved %d analysis result(s)", len(results)))
	return nil
}

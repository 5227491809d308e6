package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-commit-coach/internal/gh"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

// createCommitsCmd creates an isolated commits command with the given flags
func createCommitsCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commits <repo>",
		Short: "Fetch the full commit history of a repository",
		Long: `Fetch every commit of a repository by following the API's pagination.
The fetch is all-or-nothing: a failure on any page returns no commits.

The repository may be "owner/name" or a bare name resolved against the
configured default owner.`,
		Example: `  # Full history of a configured owner's repository
  commit-coach commits my-service

  # Full history of any repository
  commit-coach commits octocat/hello-world`,
		Args: cobra.ExactArgs(1),
		RunE: createRunCommits(flags),
	}

	cmd.Flags().Int("per-page", 0, "Commits per page (max 30; 0 uses the configured default)")
	cmd.Flags().Bool("messages-only", false, "Print commit messages without dates")

	return cmd
}

// createRunCommits creates an isolated commits run function with the given flags
func createRunCommits(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		cfg, err := loadConfigWithFlags(flags, logger)
		if err != nil {
			return err
		}

		owner, repo, err := splitRepoArg(cfg, args[0])
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

		messagesOnly, err := cmd.Flags().GetBool("messages-only")
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cfg, flags, logger)
		if err != nil {
			return err
		}

		fetcher := gh.NewHistoryFetcher(client, logger)
		records, err := fetcher.FetchAll(ctx, owner, repo, perPage)
		if err != nil {
			return fmt.Errorf("failed to fetch commit history: %w", err)
		}

		output.Info(fmt.Sprintf("%s/%s: %d commits", owner, repo, len(records)))
		for _, record := range records {
			if messagesOnly {
				output.Plain(record.Message)
				continue
			}
			output.Plain(fmt.Sprintf("%s  %s", record.Date, firstLine(record.Message)))
		}

		return nil
	}
}

// firstLine returns the subject line of a commit message
func firstLine(message string) string {
	for i := 0; i < len(message); i++ {
		if message[i] == '\n' {
			return message[:i]
		}
	}
	return message
}

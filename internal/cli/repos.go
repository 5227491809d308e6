package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-commit-coach/internal/gh"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

// createReposCmd creates an isolated repos command with the given flags
func createReposCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos [owner]",
		Short: "List repositories for an owner",
		Long: `List the repositories of the given owner, one page at a time. Without an
argument the owner from the configuration file is used.`,
		Example: `  # List the configured owner's repositories
  commit-coach repos

  # List another account's repositories, second page
  commit-coach repos octocat --page 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: createRunRepos(flags),
	}

	cmd.Flags().Int("page", 1, "Page number to fetch")
	cmd.Flags().Int("per-page", gh.MaxPerPage, "Repositories per page (max 30)")

	return cmd
}

// createRunRepos creates an isolated repos run function with the given flags
func createRunRepos(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		cfg, err := loadConfigWithFlags(flags, logger)
		if err != nil {
			return err
		}

		owner := cfg.GitHub.Owner
		if len(args) == 1 {
			owner = args[0]
		}
		if owner == "" {
			return ErrMissingOwner
		}

		page, err := cmd.Flags().GetInt("page")
		if err != nil {
			return err
		}
		perPage, err := cmd.Flags().GetInt("per-page")
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cfg, flags, logger)
		if err != nil {
			return err
		}

		repos, err := client.ListRepositories(ctx, owner, page, perPage)
		if err != nil {
			return fmt.Errorf("failed to list repositories: %w", err)
		}

		if len(repos) == 0 {
			output.Info(fmt.Sprintf("No repositories on page %d for %s", page, owner))
			return nil
		}

		output.Info(fmt.Sprintf("Repositories for %s (page %d):", owner, page))
		for _, repo := range repos {
			output.Plain(fmt.Sprintf("  %s", repo.FullName))
		}

		return nil
	}
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-commit-coach/internal/db"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

// createHistoryCmd creates the history command group with the given flags
func createHistoryCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved analysis results",
		Long: `List, show and delete analysis results saved with --save. Results live in
a local SQLite database; nothing leaves the machine.`,
		Args: cobra.NoArgs,
		RunE: createRunHistoryList(flags),
	}

	cmd.Flags().String("repo", "", "Only show results for this repository (owner/name or bare name)")
	cmd.Flags().Int("limit", 0, "Maximum number of results (0 uses the default)")

	cmd.AddCommand(createHistoryShowCmd(flags))
	cmd.AddCommand(createHistoryDeleteCmd(flags))
	cmd.AddCommand(createHistoryMessagesCmd(flags))

	return cmd
}

// createRunHistoryList creates the history list run function
func createRunHistoryList(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		cfg, err := loadConfigWithFlags(flags, logger)
		if err != nil {
			return err
		}

		repoFilter, err := cmd.Flags().GetString("repo")
		if err != nil {
			return err
		}
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		database, store, err := openHistoryStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		var records []*db.AnalysisRecord
		if repoFilter != "" {
			owner, repo, splitErr := splitRepoArg(cfg, repoFilter)
			if splitErr != nil {
				return splitErr
			}
			records, err = store.ListAnalysesForRepo(ctx, owner, repo, limit)
		} else {
			records, err = store.ListAnalyses(ctx, limit)
		}
		if err != nil {
			return fmt.Errorf("failed to list analyses: %w", err)
		}

		if len(records) == 0 {
			output.Info("No saved analyses")
			return nil
		}

		for _, record := range records {
			output.Plain(fmt.Sprintf("#%d  %s  %s/%s  %d commits  %s/%s",
				record.ID,
				record.CreatedAt.Format("2006-01-02 15:04"),
				record.Owner, record.Repo,
				record.CommitCount,
				record.Provider, record.Model))
		}

		return nil
	}
}

// createHistoryShowCmd creates the history show subcommand
func createHistoryShowCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved analysis in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfigWithFlags(flags, logger)
			if err != nil {
				return err
			}

			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}

			database, store, err := openHistoryStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			record, err := store.GetAnalysis(ctx, id)
			if err != nil {
				return err
			}

			output.Info(fmt.Sprintf("#%d  %s/%s  %d commits  analyzed %s",
				record.ID, record.Owner, record.Repo, record.CommitCount,
				record.CreatedAt.Format("2006-01-02 15:04")))
			output.Plain(record.Review)

			return nil
		},
	}
}

// createHistoryDeleteCmd creates the history delete subcommand
func createHistoryDeleteCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfigWithFlags(flags, logger)
			if err != nil {
				return err
			}

			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}

			database, store, err := openHistoryStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err = store.DeleteAnalysis(ctx, id); err != nil {
				return err
			}

			output.Success(fmt.Sprintf("Deleted analysis #%d", id))
			return nil
		},
	}
}

// createHistoryMessagesCmd creates the history messages subcommand
func createHistoryMessagesCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List saved generated commit messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfigWithFlags(flags, logger)
			if err != nil {
				return err
			}

			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}

			database, store, err := openHistoryStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			records, err := store.ListMessages(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			if len(records) == 0 {
				output.Info("No saved messages")
				return nil
			}

			for _, record := range records {
				output.Plain(fmt.Sprintf("#%d  %s  [%s]  %s",
					record.ID,
					record.CreatedAt.Format("2006-01-02 15:04"),
					record.Kind,
					firstLine(record.Message)))
			}

			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum number of results (0 uses the default)")

	return cmd
}

// parseRecordID parses a positive record ID from a command argument
func parseRecordID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid record id %q", arg) //nolint:err113 // one-off argument error
	}
	return uint(id), nil
}

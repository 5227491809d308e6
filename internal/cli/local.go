package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-commit-coach/internal/ai"
	"github.com/mrz1836/go-commit-coach/internal/db"
	appErrors "github.com/mrz1836/go-commit-coach/internal/errors"
	"github.com/mrz1836/go-commit-coach/internal/git"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

// createLocalCmd creates the local command group with the given flags
func createLocalCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Inspect and stage changes in a local repository",
		Long: `Work with a local git repository: show status, stage and unstage files,
preview the staged diff, and generate a commit message from it.`,
	}

	cmd.PersistentFlags().StringP("path", "p", ".", "Path to the local repository")

	cmd.AddCommand(createLocalStatusCmd(flags))
	cmd.AddCommand(createLocalStageCmd(flags))
	cmd.AddCommand(createLocalUnstageCmd(flags))
	cmd.AddCommand(createLocalUnstageAllCmd(flags))
	cmd.AddCommand(createLocalDiffCmd(flags))
	cmd.AddCommand(createLocalGenerateCmd(flags))

	return cmd
}

// repoPath reads the persistent --path flag
func repoPath(cmd *cobra.Command) (string, error) {
	return cmd.Flags().GetString("path")
}

// createLocalStatusCmd creates the local status subcommand
func createLocalStatusCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show staged and unstaged changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFromContext(cmd.Context())

			path, err := repoPath(cmd)
			if err != nil {
				return err
			}

			inspector := git.NewInspector(logger, logConfigFromFlags(flags))
			status, _, err := inspector.Status(path)
			if err != nil {
				return err
			}

			printFileList("Staged changes", status.Staged)
			printFileList("Unstaged changes", status.Unstaged)

			if len(status.Staged) == 0 && len(status.Unstaged) == 0 {
				output.Info("Working tree clean")
			}

			return nil
		},
	}
}

// printFileList prints one section of a status listing
func printFileList(title string, files []git.FileStatus) {
	if len(files) == 0 {
		return
	}
	output.Info(fmt.Sprintf("%s:", title))
	for _, file := range files {
		output.Plain(fmt.Sprintf("  %-10s %s", file.Kind, file.Path))
	}
}

// createLocalStageCmd creates the local stage subcommand
func createLocalStageCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "stage <file>...",
		Short: "Stage files for commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			path, err := repoPath(cmd)
			if err != nil {
				return err
			}

			inspector := git.NewInspector(logger, logConfigFromFlags(flags))
			if err = inspector.StageFiles(path, args); err != nil {
				return err
			}

			output.Success(fmt.Sprintf("Staged %d file(s)", len(args)))
			return nil
		},
	}
}

// createLocalUnstageCmd creates the local unstage subcommand
func createLocalUnstageCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "unstage <file>...",
		Short: "Remove files from the staging area",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			path, err := repoPath(cmd)
			if err != nil {
				return err
			}

			inspector := git.NewInspector(logger, logConfigFromFlags(flags))
			if err = inspector.UnstageFiles(path, args); err != nil {
				return err
			}

			output.Success(fmt.Sprintf("Unstaged %d file(s)", len(args)))
			return nil
		},
	}
}

// createLocalUnstageAllCmd creates the local unstage-all subcommand
func createLocalUnstageAllCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "unstage-all",
		Short: "Remove every file from the staging area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFromContext(cmd.Context())

			path, err := repoPath(cmd)
			if err != nil {
				return err
			}

			inspector := git.NewInspector(logger, logConfigFromFlags(flags))
			if err = inspector.UnstageAll(path); err != nil {
				return err
			}

			output.Success("Unstaged all files")
			return nil
		},
	}
}

// createLocalDiffCmd creates the local diff subcommand
func createLocalDiffCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Preview the staged diff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFromContext(cmd.Context())

			path, err := repoPath(cmd)
			if err != nil {
				return err
			}

			inspector := git.NewInspector(logger, logConfigFromFlags(flags))
			diffSet, err := stagedDiffSet(inspector, path)
			if err != nil {
				return err
			}

			rendered, err := git.RenderStagedDiff(diffSet)
			if err != nil {
				return err
			}

			output.Plain(rendered)
			return nil
		},
	}
}

// createLocalGenerateCmd creates the local generate subcommand
func createLocalGenerateCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a commit message from the staged changes",
		Long: `Generate a conventional commit message covering every staged file. With
--commit the message is used to commit the staged changes directly.`,
		Example: `  # Generate a message for review
  commit-coach local generate

  # Generate, show the diff that was sent, and commit
  commit-coach local generate --show-diff --commit`,
		Args: cobra.NoArgs,
		RunE: createRunLocalGenerate(flags),
	}

	cmd.Flags().Bool("commit", false, "Commit the staged changes with the generated message")
	cmd.Flags().Bool("show-diff", false, "Print the staged diff before the message")
	cmd.Flags().Bool("save", false, "Save the generated message to the local history database")

	return cmd
}

// createRunLocalGenerate creates the local generate run function
func createRunLocalGenerate(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		cfg, err := loadConfigWithFlags(flags, logger)
		if err != nil {
			return err
		}

		path, err := repoPath(cmd)
		if err != nil {
			return err
		}
		doCommit, err := cmd.Flags().GetBool("commit")
		if err != nil {
			return err
		}
		showDiff, err := cmd.Flags().GetBool("show-diff")
		if err != nil {
			return err
		}

		inspector := git.NewInspector(logger, logConfigFromFlags(flags))
		diffSet, err := stagedDiffSet(inspector, path)
		if err != nil {
			return err
		}

		if showDiff {
			rendered, renderErr := git.RenderStagedDiff(diffSet)
			if renderErr != nil {
				return renderErr
			}
			output.Plain(rendered)
		}

		analyzer, aiCfg, err := newAnalyzer(ctx, cfg, logger)
		if err != nil {
			return err
		}

		message, err := analyzer.ComposeFromStagedDiff(ctx, fileDiffs(diffSet))
		if err != nil {
			return fmt.Errorf("failed to generate commit message: %w", err)
		}

		output.Plain(message)

		if doCommit {
			if err = inspector.Commit(path, message); err != nil {
				return fmt.Errorf("commit failed: %w", err)
			}
			output.Success("Committed staged changes")
		}

		return maybeSaveMessage(ctx, cmd, cfg, &db.MessageRecord{
			Kind:     db.MessageKindStagedDiff,
			Input:    strings.Join(diffPaths(diffSet), ", "),
			Message:  message,
			Provider: aiCfg.Provider,
			Model:    aiCfg.Model,
		}, logger)
	}
}

// stagedDiffSet takes a fresh status snapshot and builds its diff set,
// failing early when nothing is staged
func stagedDiffSet(inspector *git.Inspector, path string) (git.StagedDiffSet, error) {
	_, snapshot, err := inspector.Status(path)
	if err != nil {
		return nil, err
	}
	if snapshot.Len() == 0 {
		return nil, appErrors.ErrNoStagedChanges
	}
	return inspector.BuildStagedDiffSet(snapshot)
}

// fileDiffs converts a staged diff set to the analyzer's input shape
func fileDiffs(set git.StagedDiffSet) []ai.FileDiff {
	diffs := make([]ai.FileDiff, 0, len(set))
	for _, entry := range set {
		diffs = append(diffs, ai.FileDiff{
			Path:   entry.Path,
			Before: entry.Before,
			After:  entry.After,
		})
	}
	return diffs
}

// diffPaths lists the file paths of a staged diff set
func diffPaths(set git.StagedDiffSet) []string {
	paths := make([]string, 0, len(set))
	for path := range set {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrz1836/go-commit-coach/internal/config"
	"github.com/mrz1836/go-commit-coach/internal/db"
	appErrors "github.com/mrz1836/go-commit-coach/internal/errors"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

// createRewriteCmd creates an isolated rewrite command with the given flags
func createRewriteCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite <message>",
		Short: "Rewrite a commit message in conventional style",
		Long: `Rewrite an existing commit message following conventional commit rules:
a typed subject line under 50 characters, plus body bullets when the
change needs them.`,
		Example: `  # Rewrite a sloppy message
  commit-coach rewrite "fixed the thing"

  # Rewrite and keep the result in history
  commit-coach rewrite "fixed the thing" --save`,
		Args: cobra.ExactArgs(1),
		RunE: createRunRewrite(flags),
	}

	cmd.Flags().Bool("save", false, "Save the generated message to the local history database")

	return cmd
}

// createRunRewrite creates an isolated rewrite run function with the given flags
func createRunRewrite(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		cfg, err := loadConfigWithFlags(flags, logger)
		if err != nil {
			return err
		}

		analyzer, aiCfg, err := newAnalyzer(ctx, cfg, logger)
		if err != nil {
			return err
		}

		message, err := analyzer.RewriteCommitMessage(ctx, args[0])
		if err != nil {
			return fmt.Errorf("rewrite failed: %w", err)
		}

		output.Plain(message)

		return maybeSaveMessage(ctx, cmd, cfg, &db.MessageRecord{
			Kind:     db.MessageKindRewrite,
			Input:    args[0],
			Message:  message,
			Provider: aiCfg.Provider,
			Model:    aiCfg.Model,
		}, logger)
	}
}

// createComposeCmd creates an isolated compose command with the given flags
func createComposeCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose [description...]",
		Short: "Compose a commit message from a description or a code pair",
		Long: `Compose a conventional commit message. Two modes are supported:

  description  Pass the change description as arguments.
  code pair    Pass --old and --new holding the before and after
               content; either side may be omitted for an added or deleted
               file, but not both.`,
		Example: `  # From a plain description
  commit-coach compose "add retry with backoff to the uploader"

  # From a before/after pair
  commit-coach compose --old before.go --new after.go`,
		RunE: createRunCompose(flags),
	}

	cmd.Flags().String("old", "", "File holding the code before the change")
	cmd.Flags().String("new", "", "File holding the code after the change")
	cmd.Flags().Bool("save", false, "Save the generated message to the local history database")

	return cmd
}

// createRunCompose creates an isolated compose run function with the given flags
func createRunCompose(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		cfg, err := loadConfigWithFlags(flags, logger)
		if err != nil {
			return err
		}

		oldFile, err := cmd.Flags().GetString("old")
		if err != nil {
			return err
		}
		newFile, err := cmd.Flags().GetString("new")
		if err != nil {
			return err
		}

		description := strings.TrimSpace(strings.Join(args, " "))
		codePair := oldFile != "" || newFile != ""

		if !codePair && description == "" {
			return appErrors.RequiredFieldError("description or --old/--new")
		}

		analyzer, aiCfg, err := newAnalyzer(ctx, cfg, logger)
		if err != nil {
			return err
		}

		var (
			message string
			kind    string
			input   string
		)

		if codePair {
			oldCode, readErr := readOptionalFile(oldFile)
			if readErr != nil {
				return readErr
			}
			newCode, readErr := readOptionalFile(newFile)
			if readErr != nil {
				return readErr
			}

			message, err = analyzer.ComposeFromCodePair(ctx, oldCode, newCode)
			kind = db.MessageKindCodePair
			input = fmt.Sprintf("old=%s new=%s", oldFile, newFile)
		} else {
			message, err = analyzer.ComposeFromDescription(ctx, description)
			kind = db.MessageKindDescription
			input = description
		}
		if err != nil {
			return fmt.Errorf("compose failed: %w", err)
		}

		output.Plain(message)

		return maybeSaveMessage(ctx, cmd, cfg, &db.MessageRecord{
			Kind:     kind,
			Input:    input,
			Message:  message,
			Provider: aiCfg.Provider,
			Model:    aiCfg.Model,
		}, logger)
	}
}

// readOptionalFile reads a file's content; an empty path yields empty content
func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own flag
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}

// maybeSaveMessage persists the generated message when --save was passed
func maybeSaveMessage(ctx context.Context, cmd *cobra.Command, cfg *config.Config, record *db.MessageRecord, logger *logrus.Logger) error {
	save, err := cmd.Flags().GetBool("save")
	if err != nil || !save {
		return err
	}

	database, store, err := openHistoryStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			logger.WithField("error", closeErr).Warn("Failed to close history database")
		}
	}()

	if err = store.SaveMessage(ctx, record); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"id":   record.ID,
		"kind": record.Kind,
	}).Debug("Saved generated message")

	return nil
}

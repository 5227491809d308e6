package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-commit-coach/internal/output"
)

// createConnectCmd creates an isolated connect command with the given flags
func createConnectCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Verify GitHub credentials",
		Long: `Verify that the configured GitHub token works and show the account it
belongs to. An invalid token is reported as a failed connection, not an error.`,
		Example: `  # Verify the token named by the config file
  commit-coach connect

  # Verify against a different config
  commit-coach connect --config work.yaml`,
		Args: cobra.NoArgs,
		RunE: createRunConnect(flags),
	}
}

// createRunConnect creates an isolated connect run function with the given flags
func createRunConnect(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		cfg, err := loadConfigWithFlags(flags, logger)
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cfg, flags, logger)
		if err != nil {
			return err
		}

		ok, err := client.VerifyConnection(ctx)
		if err != nil {
			return fmt.Errorf("connection check failed: %w", err)
		}
		if !ok {
			output.Error("Connection failed: the token was rejected")
			return nil
		}

		profile, err := client.GetOwnerProfile(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}

		output.Success(fmt.Sprintf("Connected to GitHub as %s", profile.Login))
		if profile.AvatarURL != "" {
			output.Info(fmt.Sprintf("Avatar: %s", profile.AvatarURL))
		}

		return nil
	}
}

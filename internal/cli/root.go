// Package cli implements the command-line interface for commit-coach.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrz1836/go-commit-coach/internal/logging"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

// loggerContextKey is a type for context keys to avoid collisions
type loggerContextKey struct{}

const rootLongDescription = `commit-coach reviews your commit habits and writes commit messages for you.

It reads commit history from GitHub, asks an AI provider to critique the
messages as a whole, and can compose new messages from a description, a
before/after code pair, or the staged changes of a local repository.`

//nolint:gochecknoglobals // Cobra commands are designed to be global variables
var rootCmd = &cobra.Command{
	Use:               "commit-coach",
	Short:             "AI-assisted commit message review and generation",
	Long:              rootLongDescription,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

//nolint:gochecknoinits // Cobra commands require init() for flag registration
func init() {
	registerGlobalFlags(rootCmd, globalFlags)

	rootCmd.AddCommand(createConnectCmd(globalFlags))
	rootCmd.AddCommand(createReposCmd(globalFlags))
	rootCmd.AddCommand(createCommitsCmd(globalFlags))
	rootCmd.AddCommand(createAnalyzeCmd(globalFlags))
	rootCmd.AddCommand(createRewriteCmd(globalFlags))
	rootCmd.AddCommand(createComposeCmd(globalFlags))
	rootCmd.AddCommand(createLocalCmd(globalFlags))
	rootCmd.AddCommand(createHistoryCmd(globalFlags))
	rootCmd.AddCommand(createVersionCmd(globalFlags))
}

// registerGlobalFlags binds the persistent flags to the given flag set
func registerGlobalFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "commit-coach.yaml", "Path to configuration file")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().CountVarP(&flags.Verbose, "verbose", "v", "Increase verbosity (-v debug, -vv trace, -vvv trace with caller info)")
}

// NewRootCmd creates a new isolated root command instance for testing
// This prevents race conditions by avoiding shared global state
func NewRootCmd() *cobra.Command {
	// Create isolated flags for this command instance
	flags := &Flags{
		ConfigFile: "commit-coach.yaml",
		LogLevel:   "info",
	}

	// Create new command instance with isolated setup function
	cmd := &cobra.Command{
		Use:               "commit-coach",
		Short:             "AI-assisted commit message review and generation",
		Long:              rootLongDescription,
		PersistentPreRunE: createSetupLogging(flags),
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	registerGlobalFlags(cmd, flags)

	// Add commands with isolated flags
	cmd.AddCommand(createConnectCmd(flags))
	cmd.AddCommand(createReposCmd(flags))
	cmd.AddCommand(createCommitsCmd(flags))
	cmd.AddCommand(createAnalyzeCmd(flags))
	cmd.AddCommand(createRewriteCmd(flags))
	cmd.AddCommand(createComposeCmd(flags))
	cmd.AddCommand(createLocalCmd(flags))
	cmd.AddCommand(createHistoryCmd(flags))
	cmd.AddCommand(createVersionCmd(flags))

	return cmd
}

// GetRootCmd returns the root command for testing purposes
func GetRootCmd() *cobra.Command {
	// For backward compatibility and test isolation, return a new isolated instance
	return NewRootCmd()
}

// Execute runs the CLI and exits the process on failure
func Execute() {
	if err := ExecuteWithContext(context.Background()); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}

// ExecuteWithContext runs the CLI with the provided parent context and
// returns the command error instead of exiting
func ExecuteWithContext(parent context.Context) error {
	// Set up context with cancellation
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			output.Warn("Interrupt received, canceling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Execute command with context
	return rootCmd.ExecuteContext(ctx)
}

// createSetupLogging creates an isolated logging setup function for the given flags
// It returns a configured logger instance that can be used instead of the global logger
func createSetupLogging(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		level, err := resolveLogLevel(flags)
		if err != nil {
			return err
		}

		// Create isolated logger instance
		logger := logrus.New()
		logger.SetLevel(level)
		configureFormatter(logger, flags.Verbose)

		// Redact tokens and keys before anything reaches the log stream
		logger.AddHook(logging.NewRedactionService().CreateHook())

		// Log to stderr to keep stdout clean for output
		logger.SetOutput(os.Stderr)

		// Store logger in command context for isolated access
		cmd.SetContext(context.WithValue(cmd.Context(), loggerContextKey{}, logger))

		return nil
	}
}

// setupLogging configures the logger based on the log level flag (global version)
func setupLogging(cmd *cobra.Command, args []string) error {
	if err := createSetupLogging(globalFlags)(cmd, args); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"config":    globalFlags.ConfigFile,
		"log_level": globalFlags.LogLevel,
		"verbose":   globalFlags.Verbose,
	}).Debug("CLI initialized")

	return nil
}

// resolveLogLevel maps the verbose count and log-level flag to a logrus level.
// Verbose flags override an explicit log level when present.
func resolveLogLevel(flags *Flags) (logrus.Level, error) {
	switch {
	case flags.Verbose >= 2:
		return logrus.TraceLevel, nil
	case flags.Verbose == 1:
		return logrus.DebugLevel, nil
	}

	level, err := logrus.ParseLevel(strings.ToLower(flags.LogLevel))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", flags.LogLevel, err)
	}

	return level, nil
}

// configureFormatter sets the text formatter; -vvv adds caller information
func configureFormatter(logger *logrus.Logger, verbose int) {
	if verbose >= 3 {
		logger.SetReportCaller(true)
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:    false,
			FullTimestamp:    true,
			TimestampFormat:  "15:04:05.000",
			PadLevelText:     true,
			QuoteEmptyFields: true,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
			},
		})
		return
	}

	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    false,
		FullTimestamp:    true,
		TimestampFormat:  "15:04:05",
		PadLevelText:     true,
		QuoteEmptyFields: true,
	})
}

// loggerFromContext returns the isolated logger stored by the setup function,
// falling back to the global logger when none is present
func loggerFromContext(ctx context.Context) *logrus.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*logrus.Logger); ok {
		return logger
	}
	return logrus.StandardLogger()
}

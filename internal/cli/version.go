package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/mrz1836/go-commit-coach/internal/gh"
	"github.com/mrz1836/go-commit-coach/internal/output"
)

const (
	devVersionString = "dev"
	unknownString    = "unknown"

	// repoOwner and repoName locate this project's releases on GitHub.
	repoOwner = "mrz1836"
	repoName  = "go-commit-coach"
)

// Build information set via ldflags
//
//nolint:gochecknoglobals // Build variables are set via ldflags during compilation
var (
	versionMu sync.RWMutex
	version   = devVersionString
	commit    = unknownString
	buildDate = unknownString
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// createVersionCmd creates an isolated version command with the given flags
func createVersionCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build details.`,
		Args:  cobra.NoArgs,
		RunE:  createRunVersion(flags),
	}

	cmd.Flags().Bool("json", false, "Output version information as JSON")
	cmd.Flags().Bool("check", false, "Check GitHub for a newer release")

	return cmd
}

// createRunVersion creates an isolated version run function with the given flags
func createRunVersion(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		jsonFormat, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		check, err := cmd.Flags().GetBool("check")
		if err != nil {
			return err
		}

		if err = printVersion(jsonFormat); err != nil {
			return err
		}

		if check {
			return checkLatestRelease(cmd, flags)
		}

		return nil
	}
}

// checkLatestRelease compares the running version against the newest
// published GitHub release
func checkLatestRelease(cmd *cobra.Command, flags *Flags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfigWithFlags(flags, logger)
	if err != nil {
		return err
	}

	// The latest-release endpoint is public, so the check works without a
	// token. A configured token is still sent to soften rate limits.
	client, err := gh.NewClient(gh.Options{
		Token:   cfg.GitHub.Token(),
		BaseURL: cfg.GitHub.APIBaseURL,
	}, logger, logConfigFromFlags(flags))
	if err != nil {
		return err
	}

	release, err := client.GetLatestRelease(ctx, repoOwner, repoName)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	current := GetVersion()
	latest := strings.TrimPrefix(release.TagName, "v")

	if IsNewerVersion(current, latest) {
		output.Warn(fmt.Sprintf("A newer version is available: %s (current: %s)", release.TagName, current))
		if release.HTMLURL != "" {
			output.Info(release.HTMLURL)
		}
		return nil
	}

	output.Success("You are on the latest version")
	return nil
}

// IsNewerVersion reports whether latest is a strictly newer semantic version
// than current. Unparseable versions, including dev builds and bare commit
// hashes, never report an available upgrade.
func IsNewerVersion(current, latest string) bool {
	currentVer, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false
	}
	latestVer, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false
	}
	return latestVer.GreaterThan(currentVer)
}

// printVersion prints version information based on the format
func printVersion(jsonFormat bool) error {
	info := GetVersionInfo()

	if jsonFormat {
		encoder := json.NewEncoder(output.Stdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	// Text output
	output.Info(fmt.Sprintf("commit-coach %s", info.Version))
	output.Info(fmt.Sprintf("Commit:     %s", info.Commit))
	output.Info(fmt.Sprintf("Build Date: %s", info.BuildDate))
	output.Info(fmt.Sprintf("Go Version: %s", info.GoVersion))
	output.Info(fmt.Sprintf("Platform:   %s/%s", info.OS, info.Arch))

	return nil
}

// SetVersionInfo allows setting version information programmatically
// This is useful for testing or when not using ldflags (thread-safe)
func SetVersionInfo(v, c, d string) {
	versionMu.Lock()
	defer versionMu.Unlock()
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	if d != "" {
		buildDate = d
	}
}

// ResetVersionInfo resets the version info to defaults (thread-safe, for testing)
func ResetVersionInfo() {
	versionMu.Lock()
	defer versionMu.Unlock()
	version = devVersionString
	commit = unknownString
	buildDate = unknownString
}

// GetVersion returns the current version string with fallback to build info
func GetVersion() string {
	return getVersionWithFallback()
}

// GetVersionInfo returns complete version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   getVersionWithFallback(),
		Commit:    getCommitWithFallback(),
		BuildDate: getBuildDateWithFallback(),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// getVersionWithFallback returns the version information with fallback to BuildInfo
func getVersionWithFallback() string {
	// If version was set via ldflags, use it (thread-safe read)
	versionMu.RLock()
	v := version
	versionMu.RUnlock()
	if v != devVersionString && v != "" {
		return v
	}

	// Try to get version from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		// Check if there's a module version (from go install @version)
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}

		// Try to get VCS revision as fallback for development builds
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				// Use short commit hash for readability
				if len(setting.Value) > 7 {
					return setting.Value[:7]
				}
				return setting.Value
			}
		}
	}

	// Default to dev version string if nothing else is available
	return devVersionString
}

// getCommitWithFallback returns the commit hash with fallback to BuildInfo
func getCommitWithFallback() string {
	// If commit was set via ldflags, use it (thread-safe read)
	versionMu.RLock()
	c := commit
	versionMu.RUnlock()
	if c != unknownString && c != "" {
		return c
	}

	// Try to get from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				// For commit display, use short hash for readability
				if len(setting.Value) > 7 {
					return setting.Value[:7]
				}
				return setting.Value
			}
		}
	}

	return unknownString
}

// getBuildDateWithFallback returns the build date with fallback to BuildInfo
func getBuildDateWithFallback() string {
	// If build date was set via ldflags, use it (thread-safe read)
	versionMu.RLock()
	bd := buildDate
	versionMu.RUnlock()
	if bd != unknownString && bd != "" {
		return bd
	}

	// Try to get from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" && setting.Value != "" {
				// VCS time is in RFC3339 format, convert to a more readable format
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.Format("2006-01-02_15:04:05_UTC")
				}
				return setting.Value
			}
		}
	}

	return unknownString
}

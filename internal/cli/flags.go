package cli

// Flags contains all global flags for the CLI
type Flags struct {
	ConfigFile string
	LogLevel   string
	Verbose    int
}

// globalFlags is the singleton instance of flags
//
//nolint:gochecknoglobals // Cobra flag binding requires package-level state
var globalFlags = &Flags{
	ConfigFile: "commit-coach.yaml",
	LogLevel:   "info",
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return globalFlags.ConfigFile
}

// SetFlags updates the global flags
func SetFlags(f *Flags) {
	globalFlags = f
}

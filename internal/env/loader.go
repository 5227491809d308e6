// Package env provides utilities for loading environment variables from .env files.
// Credentials (GitHub token, AI API keys) are read from the environment; a local
// .env file is a convenience for development setups.
package env

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads environment variables from a .env file in the working
// directory. The file is optional; a missing file is not an error. Values
// already present in the environment are NOT overridden, so exported
// variables always win over the file.
func LoadEnvFile() error {
	return LoadEnvFileFromDir(".")
}

// LoadEnvFileFromDir loads a .env file from a specific directory.
// This is useful for testing or when running from a different working directory.
func LoadEnvFileFromDir(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// GetString returns the environment variable value or the default if unset.
func GetString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// GetBool parses the environment variable as a boolean, returning the
// default if unset or unparseable.
func GetBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetInt parses the environment variable as an integer, returning the
// default if unset or unparseable.
func GetInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDuration parses the environment variable as a time.Duration, returning
// the default if unset or unparseable.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetFloat parses the environment variable as a float64, returning the
// default if unset or unparseable.
func GetFloat(key string, defaultValue float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "wordler"

// Environment variables that override defaults.
const (
	EnvWordList = "WORDLER_WORDLIST"
	EnvDB       = "WORDLER_DB"
	EnvLogLevel = "WORDLER_LOG_LEVEL"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultWordListPath returns WORDLER_WORDLIST, or "" to use the embedded list.
func DefaultWordListPath() string {
	return os.Getenv(EnvWordList)
}

// DefaultDBPath returns the path for the SQLite database.
func DefaultDBPath() string {
	if v := os.Getenv(EnvDB); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

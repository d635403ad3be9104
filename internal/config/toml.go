// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Solver SolverConfig `toml:"solver"`
	Bench  BenchConfig  `toml:"bench"`
	Log    LogConfig    `toml:"log"`
}

// SolverConfig maps session-related settings.
type SolverConfig struct {
	Method      *string `toml:"method"`
	Start       *string `toml:"start"`
	MaxGuesses  *int    `toml:"max-guesses"`
	Length      *int    `toml:"length"`
	WordList    *string `toml:"wordlist"`
	Strict      *bool   `toml:"strict"`
	Suggestions *int    `toml:"suggestions"`
}

// BenchConfig maps benchmark settings.
type BenchConfig struct {
	Method   *string  `toml:"method"`
	Starts   []string `toml:"starts"`
	Workers  *int     `toml:"workers"`
	MaxTurns *int     `toml:"max-turns"`
	Sample   *int     `toml:"sample"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

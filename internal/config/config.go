// Package config loads and watches the application configuration.
//
// Configuration files may be TOML or YAML, selected by extension, and
// individual keys can be overridden through CALCSTORM_* environment
// variables. A missing file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for config files that are neither
// TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the application configuration.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// HistoryConfig configures the history store.
type HistoryConfig struct {
	// Load selects what resuming a history entry restores:
	// "expression" (default) or "result".
	Load string `toml:"load" yaml:"load"`

	// MaxEntries bounds the store; non-positive selects the default.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`

	// File, when set, is a JSON Lines file history is loaded from on
	// start and saved to on exit.
	File string `toml:"file" yaml:"file"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Load:       "expression",
			MaxEntries: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.History.Load {
	case "", "expression", "result":
	default:
		return fmt.Errorf("history.load must be \"expression\" or \"result\", got %q", c.History.Load)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}

	return nil
}

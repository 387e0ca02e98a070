package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from path on top of the defaults, then
// applies environment overrides. An empty path skips the file layer; a
// file that does not exist is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config file %s: %w", path, err)
			}
		} else if err := unmarshal(path, data, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// unmarshal decodes data into cfg based on the file extension.
func unmarshal(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// applyEnv overlays CALCSTORM_* environment variables.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("CALCSTORM_HISTORY_LOAD"); ok {
		cfg.History.Load = v
	}
	if v, ok := os.LookupEnv("CALCSTORM_HISTORY_MAX_ENTRIES"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxEntries = n
		}
	}
	if v, ok := os.LookupEnv("CALCSTORM_HISTORY_FILE"); ok {
		cfg.History.File = v
	}
	if v, ok := os.LookupEnv("CALCSTORM_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
}

// Package config loads procview's YAML configuration file and supplies
// defaults when none exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or partial.
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	defaultOverscan  = 5
)

// Config is the on-disk configuration shape (~/.procview/config.yaml).
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	UI       UIConfig       `yaml:"ui"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// LoggingConfig mirrors logging.Config in YAML form.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// UIConfig holds browser rendering preferences.
type UIConfig struct {
	// Overscan is how many extra rows the virtualized views materialize
	// beyond each viewport edge.
	Overscan int `yaml:"overscan"`
}

// SnapshotConfig points at the default snapshot directory.
type SnapshotConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		UI: UIConfig{
			Overscan: defaultOverscan,
		},
	}
}

// DefaultPath returns the user-level config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".procview", "config.yaml"), nil
}

// DefaultLogPath returns where browser commands write their log file.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".procview", "procview.log"), nil
}

// Load reads the config at path, layering file values over defaults. A
// missing file is not an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path) //nolint:gosec // Path is the user's own config file.
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.UI.Overscan < 0 {
		cfg.UI.Overscan = 0
	}
	return cfg, nil
}

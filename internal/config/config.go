package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. TABSCOPE_MAX_ROWS.
const EnvPrefix = "TABSCOPE"

var ErrInvalid = errors.New("invalid config")

var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds the settings shared by the CLI and the TUI.
type Config struct {
	MaxRows  int    `yaml:"max_rows" envconfig:"MAX_ROWS"`   // Header search depth per sheet
	Workers  int    `yaml:"workers" envconfig:"WORKERS"`     // Files read in parallel when counting
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"` // debug, info, warn or error
}

func Default() *Config {
	return &Config{
		MaxRows:  50,
		Workers:  4,
		LogLevel: "info",
	}
}

// DefaultPath returns ~/.config/tabscope/config.yml, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tabscope", "config.yml"), nil
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error when path is the
// default location.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxRows <= 0 {
		return fmt.Errorf("%w: max_rows must be positive, got %d", ErrInvalid, c.MaxRows)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("%w: log_level must be one of %v, got %q", ErrInvalid, logLevels, c.LogLevel)
	}
	return nil
}

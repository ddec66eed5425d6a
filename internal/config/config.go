// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config holds the configuration of the coro driver.
// Values come from viper: defaults, then the config file, then CORO_*
// environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"code.hybscloud.com/coro/internal/logging"
	"github.com/spf13/viper"
)

// Config is the driver configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Chain   ChainConfig   `mapstructure:"chain"`
	Trace   TraceConfig   `mapstructure:"trace"`
}

// LoggingConfig controls frame transition logging.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error". Transitions log at debug.
	Level string `mapstructure:"level"`
	// Format is "text" or "json".
	Format string `mapstructure:"format"`
}

// ChainConfig shapes the nested await chain demo.
type ChainConfig struct {
	// Depth is the number of tasks in the chain.
	Depth int `mapstructure:"depth"`
	// Yields is the number of yields in the innermost task.
	Yields int `mapstructure:"yields"`
}

// TraceConfig controls the YAML trace export.
type TraceConfig struct {
	// File receives the frame transition trace of a run. Empty disables it.
	File string `mapstructure:"file"`
}

// MaxChainDepth bounds ChainConfig.Depth.
const MaxChainDepth = 1 << 16

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		Chain: ChainConfig{
			Depth:  3,
			Yields: 1,
		},
	}
}

// SetDefaults registers the defaults with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)

	viper.SetDefault("chain.depth", defaults.Chain.Depth)
	viper.SetDefault("chain.yields", defaults.Chain.Yields)

	viper.SetDefault("trace.file", defaults.Trace.File)
}

// Load reads the configuration from viper and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field, joined.
func (c *Config) Validate() error {
	var errs []error
	if !logging.IsValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level: invalid value %q", c.Logging.Level))
	}
	if c.Logging.Format != logging.FormatText && c.Logging.Format != logging.FormatJSON {
		errs = append(errs, fmt.Errorf("logging.format: invalid value %q", c.Logging.Format))
	}
	if c.Chain.Depth < 1 || c.Chain.Depth > MaxChainDepth {
		errs = append(errs, fmt.Errorf("chain.depth: must be in [1, %d], got %d", MaxChainDepth, c.Chain.Depth))
	}
	if c.Chain.Yields < 0 {
		errs = append(errs, fmt.Errorf("chain.yields: must not be negative, got %d", c.Chain.Yields))
	}
	return errors.Join(errs...)
}

// Dir returns the user's config directory for coro.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "coro")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coro"
	}
	return filepath.Join(home, ".config", "coro")
}

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bitschema/errors"
)

// Config holds settings that may come from a YAML file. Command-line flags
// override any value set here. The compile cache is sized by the library API
// (schema.NewCompiler) and is not configurable here.
type Config struct {
	Schema   string `yaml:"schema"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
	Size     int    `yaml:"size"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Format:   formatJSON,
		LogLevel: "warn",
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	switch c.Format {
	case formatJSON, formatCBOR:
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown format %q (want json or cbor)", c.Format))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log_level")
	}
	if c.Size < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "size must not be negative")
	}
	return nil
}

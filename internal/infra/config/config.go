// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/emre2821/echodj/internal/app/engine"
	"github.com/emre2821/echodj/internal/app/ethics"
	"github.com/emre2821/echodj/internal/infra/logger"
)

// Config represents the application configuration.
type Config struct {
	Logging logger.Config  `yaml:"logging"`
	Engine  engine.Options `yaml:"engine"`
	Ethics  EthicsConfig   `yaml:"ethics"`
	Catalog CatalogConfig  `yaml:"catalog"`
}

// EthicsConfig selects and tunes the consent gate.
type EthicsConfig struct {
	Mode  string                 `yaml:"mode" default:"rules" validate:"oneof=rules permissive"`
	Rules ethics.RuleBasedConfig `yaml:"rules"`
}

// CatalogConfig points at the candidate track catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Load loads configuration from a YAML file. Environment variables take
// precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// Default returns the configuration with every field at its default.
func Default() *Config {
	var cfg Config
	// Set on the zero config cannot fail.
	_ = defaults.Set(&cfg)
	return &cfg
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("ECHODJ_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("ECHODJ_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ECHODJ_ETHICS_MODE"); v != "" {
		c.Ethics.Mode = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// Evaluator builds the configured ethics evaluator.
func (c *Config) Evaluator() (ethics.Evaluator, error) {
	switch c.Ethics.Mode {
	case "permissive":
		return ethics.Permissive{}, nil
	default:
		return ethics.NewRuleBased(map[string]any{
			"max_journey_minutes":    c.Ethics.Rules.MaxJourneyMinutes,
			"extreme_arousal":        c.Ethics.Rules.ExtremeArousal,
			"negative_valence_floor": c.Ethics.Rules.NegativeValenceFloor,
		})
	}
}

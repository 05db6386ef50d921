package algorithms

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-roles/pkg/logging"
	"github.com/dd0wney/cluso-roles/pkg/metrics"
	"github.com/dd0wney/cluso-roles/pkg/validation"
)

// MaxConfigWorkers bounds the workers setting
const MaxConfigWorkers = 256

// Config is the YAML form of the computation options:
//
//	degenerate_module: zero   # zero | fail
//	zero_degree: fail         # fail | nan | zero
//	workers: 4
//	log_level: info           # debug | info | warn | error
type Config struct {
	DegenerateModule string `yaml:"degenerate_module"`
	ZeroDegree       string `yaml:"zero_degree"`
	Workers          int    `yaml:"workers"`
	LogLevel         string `yaml:"log_level" validate:"required,oneof=debug info warn error"`
}

// DefaultConfig returns the defaults the functional options also use
func DefaultConfig() *Config {
	return &Config{
		DegenerateModule: DegeneratePolicyZero.String(),
		ZeroDegree:       ZeroDegreePolicyFail.String(),
		Workers:          1,
		LogLevel:         "info",
	}
}

// ParseConfig decodes YAML over the defaults and validates the result.
// Unknown keys are rejected. Empty input, and empty strings for the policy and
// log level keys, yield the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.DegenerateModule = strings.ToLower(strings.TrimSpace(c.DegenerateModule))
	c.ZeroDegree = strings.ToLower(strings.TrimSpace(c.ZeroDegree))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	c.DegenerateModule = validation.DefaultOr(c.DegenerateModule, defaults.DegenerateModule)
	c.ZeroDegree = validation.DefaultOr(c.ZeroDegree, defaults.ZeroDegree)
	c.LogLevel = validation.DefaultOr(c.LogLevel, defaults.LogLevel)
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Struct(c).
		OneOf("degenerate_module", c.DegenerateModule, DegeneratePolicyNames()).
		OneOf("zero_degree", c.ZeroDegree, ZeroDegreePolicyNames()).
		RangeInt("workers", c.Workers, 1, MaxConfigWorkers).
		Validate()
}

// Logger builds a JSON logger at the configured level
func (c *Config) Logger(w io.Writer) (logging.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewJSONLogger(w, level), nil
}

// Options converts the config into functional options. logger and registry
// may be nil.
func (c *Config) Options(logger logging.Logger, registry *metrics.Registry) ([]Option, error) {
	degenerate, err := ParseDegeneratePolicy(c.DegenerateModule)
	if err != nil {
		return nil, err
	}
	zeroDegree, err := ParseZeroDegreePolicy(c.ZeroDegree)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithDegeneratePolicy(degenerate),
		WithZeroDegreePolicy(zeroDegree),
		WithWorkers(c.Workers),
		WithLogger(logger),
	}
	if registry != nil {
		opts = append(opts, WithMetrics(registry))
	}
	return opts, nil
}

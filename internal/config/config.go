// Package config loads the YAML run configuration of the infoprop CLI.
//
// Lookup order when no explicit path is given:
//  1. $INFOPROP_CONFIG
//  2. ./infoprop.yaml
//  3. $XDG_CONFIG_HOME/infoprop/config.yaml (or ~/.config/infoprop/config.yaml)
//
// Flags given on the command line override every value loaded here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/infoprop/propagate"
)

const (
	// EnvConfigPath names an explicit config file.
	EnvConfigPath = "INFOPROP_CONFIG"
	// ConfigFileName is looked up in the working directory.
	ConfigFileName = "infoprop.yaml"
	// ConfigDirName is the directory under the XDG config home.
	ConfigDirName = "infoprop"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the on-disk run configuration.
type Config struct {
	Propagation PropagationConfig `yaml:"propagation"`
	MonteCarlo  MonteCarloConfig  `yaml:"montecarlo"`
	Log         LogConfig         `yaml:"log"`
	Output      OutputConfig      `yaml:"output"`
}

// PropagationConfig mirrors propagate.Options.
type PropagationConfig struct {
	Workers         int   `yaml:"workers"`
	MaxDepth        int   `yaml:"max_depth"`
	MaxConditioning int   `yaml:"max_conditioning"`
	Diamonds        *bool `yaml:"diamonds,omitempty"`
}

// MonteCarloConfig configures the sampling cross-check.
type MonteCarloConfig struct {
	Samples int    `yaml:"samples"`
	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig selects how results are written.
type OutputConfig struct {
	Format      string `yaml:"format"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()

	return c
}

// Load finds and loads the config file, or returns defaults if none is found.
// The second return value is the path that was read ("" for defaults).
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills in missing values.
func (c *Config) applyDefaults() {
	if c.Propagation.Workers == 0 {
		c.Propagation.Workers = 1
	}
	if c.Propagation.MaxDepth == 0 {
		c.Propagation.MaxDepth = propagate.DefaultMaxDepth
	}
	if c.Propagation.MaxConditioning == 0 {
		c.Propagation.MaxConditioning = propagate.DefaultMaxConditioning
	}
	if c.MonteCarlo.Samples == 0 {
		c.MonteCarlo.Samples = 100_000
	}
	if c.MonteCarlo.Workers == 0 {
		c.MonteCarlo.Workers = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Output.Format == "" {
		c.Output.Format = "yaml"
	}
}

// Validate rejects values the propagate option constructors would panic on.
func (c *Config) Validate() error {
	var errs []error
	if c.Propagation.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: propagation.workers %d < 1", ErrInvalidConfig, c.Propagation.Workers))
	}
	if c.Propagation.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("%w: propagation.max_depth %d < 1", ErrInvalidConfig, c.Propagation.MaxDepth))
	}
	if c.Propagation.MaxConditioning < 1 || c.Propagation.MaxConditioning > 62 {
		errs = append(errs, fmt.Errorf("%w: propagation.max_conditioning %d outside [1,62]", ErrInvalidConfig, c.Propagation.MaxConditioning))
	}
	if c.MonteCarlo.Samples < 1 {
		errs = append(errs, fmt.Errorf("%w: montecarlo.samples %d < 1", ErrInvalidConfig, c.MonteCarlo.Samples))
	}
	if c.MonteCarlo.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: montecarlo.workers %d < 1", ErrInvalidConfig, c.MonteCarlo.Workers))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format))
	}
	switch c.Output.Format {
	case "yaml", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: output.format %q", ErrInvalidConfig, c.Output.Format))
	}

	return errors.Join(errs...)
}

// DiamondsEnabled reports whether diamond conditioning is on (default true).
func (c *Config) DiamondsEnabled() bool {
	return c.Propagation.Diamonds == nil || *c.Propagation.Diamonds
}

// PropagateOptions converts the propagation section. Call Validate first.
func (c *Config) PropagateOptions() []propagate.Option {
	opts := []propagate.Option{
		propagate.WithWorkers(c.Propagation.Workers),
		propagate.WithMaxDepth(c.Propagation.MaxDepth),
		propagate.WithMaxConditioning(c.Propagation.MaxConditioning),
	}
	if !c.DiamondsEnabled() {
		opts = append(opts, propagate.WithoutDiamonds())
	}

	return opts
}

// FindConfigPath returns the first existing config file, or "".
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}
	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		if h := os.Getenv("HOME"); h != "" {
			home = filepath.Join(h, ".config")
		}
	}
	if home != "" {
		path := filepath.Join(home, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

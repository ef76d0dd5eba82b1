// Package config provides manifest loading for constgen.
//
// A manifest is optional. It names the output base, the input files and the
// logging and watch settings, in YAML or TOML chosen by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the generator configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Inputs  []string      `yaml:"inputs" toml:"inputs"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
}

// OutputConfig names the generated artifacts.
type OutputConfig struct {
	Base      string `yaml:"base" toml:"base"`
	HeaderExt string `yaml:"header_ext" toml:"header_ext"`
	SourceExt string `yaml:"source_ext" toml:"source_ext"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	Format     string `yaml:"format" toml:"format"` // "text" or "json"
	TimeFormat string `yaml:"time_format" toml:"time_format"`
}

// WatchConfig contains watch mode settings.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" toml:"debounce_ms"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			HeaderExt: ".h",
			SourceExt: ".cpp",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "text",
			TimeFormat: "15:04:05.000",
		},
		Watch: WatchConfig{
			DebounceMs: 200,
		},
	}
}

// Load loads configuration from a manifest file. Files ending in .toml are
// decoded as TOML, everything else as YAML. Environment variables in the
// file are expanded before decoding.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(expanded, cfg)
	default:
		err = yaml.Unmarshal(expanded, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// Expand tilde in paths
	cfg.Output.Base = expandHome(cfg.Output.Base)
	for i, in := range cfg.Inputs {
		cfg.Inputs[i] = expandHome(in)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Validate checks settings that cannot be fixed by defaults.
// Output.Base and Inputs may be empty; the command line can supply them.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Output.HeaderExt, ".") {
		return fmt.Errorf("output.header_ext %q must start with '.'", c.Output.HeaderExt)
	}
	if !strings.HasPrefix(c.Output.SourceExt, ".") {
		return fmt.Errorf("output.source_ext %q must start with '.'", c.Output.SourceExt)
	}

	if strings.EqualFold(c.Output.HeaderExt, c.Output.SourceExt) {
		return fmt.Errorf("output.header_ext and output.source_ext must differ, both are %q", c.Output.HeaderExt)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}

	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	return nil
}

// Debounce returns the watch debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

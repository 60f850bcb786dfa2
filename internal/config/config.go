// Package config loads the murker run configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/murker/internal/core/observability/log"
)

// DefaultMaxTurns bounds a battle nobody can win, such as two actors that never
// hit. Zero in a config file lifts the bound.
const DefaultMaxTurns = 1_000_000

// Config holds every knob of a run. The zero value is not usable; start from Default.
type Config struct {
	Log         LogConfig `yaml:"log"`
	Trace       bool      `yaml:"trace"`
	Seed        string    `yaml:"seed"`
	MaxTurns    int       `yaml:"max_turns"`
	Roster      string    `yaml:"roster"`
	Goblins     int       `yaml:"goblins"`
	Runs        int       `yaml:"runs"`
	Parallelism int       `yaml:"parallelism"`
}

type LogConfig struct {
	Level    string   `yaml:"level"`
	Encoding string   `yaml:"encoding"`
	Output   []string `yaml:"output"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level:    "warn",
			Encoding: "console",
			Output:   []string{"stderr"},
		},
		MaxTurns:    DefaultMaxTurns,
		Goblins:     10,
		Runs:        1,
		Parallelism: 4,
	}
}

// LoadYAML decodes r over the defaults. Unknown keys are rejected.
func LoadYAML(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// ApplyEnv overrides the configuration from environment variables:
// MURKER_TRACE enables tracing unless set to "", "0" or "false";
// LOG_LEVEL and LOG_FORMAT replace the log level and encoding.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("MURKER_TRACE"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false":
		default:
			c.Trace = true
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		c.Log.Encoding = v
	}
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log encoding %q, want json or console", ErrInvalidConfig, c.Log.Encoding)
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("%w: max_turns must not be negative", ErrInvalidConfig)
	}
	if c.Goblins < 0 {
		return fmt.Errorf("%w: goblins must not be negative", ErrInvalidConfig)
	}
	if c.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1", ErrInvalidConfig)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// LogOptions translates the log section. Tracing forces the debug level so
// trace lines are not filtered out.
func (c Config) LogOptions() (log.Options, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.Options{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Trace {
		level = log.LevelDebug
	}
	return log.Options{
		Level:    level,
		Encoding: c.Log.Encoding,
		Output:   c.Log.Output,
	}, nil
}

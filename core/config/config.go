// Package config loads qsdata settings from TOML or YAML files.
//
// A file only needs the keys it wants to change; everything else keeps the
// value from Default. The format is picked from the file extension, with
// TOML as the fallback:
//
//	[log]
//	level = "debug"
//
//	[engine]
//	quicksort_strategy = "in_place"
//	max_run_length = 4096
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/engine"
	"github.com/asaidimu/go-qsdata/core/text"
)

// EnvLogLevel overrides Log.Level when set.
const EnvLogLevel = "QSDATA_LOG_LEVEL"

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota
	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the complete application configuration
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Engine EngineConfig `toml:"engine" yaml:"engine"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// EngineConfig holds operation engine settings
type EngineConfig struct {
	QuicksortStrategy string `toml:"quicksort_strategy" yaml:"quicksort_strategy"`
	MaxRunLength      int    `toml:"max_run_length" yaml:"max_run_length"`
	Events            bool   `toml:"events" yaml:"events"`
	Concurrency       int    `toml:"concurrency" yaml:"concurrency"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Engine: EngineConfig{
			QuicksortStrategy: string(engine.QuicksortPartition),
			MaxRunLength:      text.DefaultMaxRunLength,
			Events:            true,
		},
	}
}

// Load reads the configuration file at path on top of Default, applies the
// environment override and validates the result. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(os.ExpandEnv(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(content, DetectFormat(path)); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromString parses content in the given format on top of Default.
func LoadFromString(content string, format Format) (*Config, error) {
	cfg := Default()
	if err := cfg.decode([]byte(content), format); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func (c *Config) decode(content []byte, format Format) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), c)
		if err != nil {
			return core.InvalidArgument("TOML parse error: %v", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return core.InvalidArgument("unknown config key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return core.InvalidArgument("YAML parse error: %v", err)
		}
	default:
		return core.InvalidArgument("unsupported format: %s", format)
	}
	return nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return core.InvalidArgument("log.level: %v", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return core.InvalidArgument("log.format should be json or console, got %q", c.Log.Format)
	}
	if !engine.QuicksortStrategy(c.Engine.QuicksortStrategy).Valid() {
		return core.InvalidArgument("engine.quicksort_strategy: unknown strategy %q", c.Engine.QuicksortStrategy)
	}
	if c.Engine.MaxRunLength < 1 {
		return core.InvalidArgument("engine.max_run_length should be positive, got %d", c.Engine.MaxRunLength)
	}
	if c.Engine.Concurrency < 0 {
		return core.InvalidArgument("engine.concurrency should not be negative, got %d", c.Engine.Concurrency)
	}
	return nil
}

// EngineOptions maps the engine section onto engine options.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithQuicksortStrategy(engine.QuicksortStrategy(c.Engine.QuicksortStrategy)),
		engine.WithMaxRunLength(c.Engine.MaxRunLength),
		engine.WithEvents(c.Engine.Events),
		engine.WithConcurrency(c.Engine.Concurrency),
	}
}

// NewLogger builds a logger from the log section. The json format uses the
// production encoder with ISO8601 timestamps under "timestamp"; console uses
// the development encoder.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, core.InvalidArgument("log level: %v", err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.EncoderConfig.TimeKey = "timestamp"
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	// Output goes to stderr so that command results on stdout stay parseable.
	zc.OutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

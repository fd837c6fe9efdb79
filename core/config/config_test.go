package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "partition", cfg.Engine.QuicksortStrategy)
	assert.True(t, cfg.Engine.Events)
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOML(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeFile(t, "qsdata.toml", `
[log]
level = "debug"

[engine]
quicksort_strategy = "in_place"
max_run_length = 64
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, "in_place", cfg.Engine.QuicksortStrategy)
	assert.Equal(t, 64, cfg.Engine.MaxRunLength)
	assert.True(t, cfg.Engine.Events)
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeFile(t, "qsdata.yaml", `
log:
  format: console
engine:
  events: false
  concurrency: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Engine.Events)
	assert.Equal(t, 4, cfg.Engine.Concurrency)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	path := writeFile(t, "qsdata.toml", "[log]\nlevel = \"debug\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	tests := map[string]string{
		"bad.toml":      "[log\nlevel=",
		"unknown.toml":  "[log]\ncolour = \"red\"\n",
		"unknown.yml":   "engine:\n  turbo: true\n",
		"level.toml":    "[log]\nlevel = \"loud\"\n",
		"format.yaml":   "log:\n  format: xml\n",
		"strategy.toml": "[engine]\nquicksort_strategy = \"bogo\"\n",
		"run.toml":      "[engine]\nmax_run_length = 0\n",
		"conc.yaml":     "engine:\n  concurrency: -2\n",
	}
	for name, content := range tests {
		_, err := Load(writeFile(t, name, content))
		assert.ErrorIs(t, err, core.ErrInvalidArgument, name)
	}
}

func TestLoadFromString(t *testing.T) {
	cfg, err := LoadFromString("engine:\n  max_run_length: 8\n", FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Engine.MaxRunLength)

	_, err = LoadFromString("", Format(99))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("a.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("a.YML"))
	assert.Equal(t, FormatTOML, DetectFormat("a.toml"))
	assert.Equal(t, FormatTOML, DetectFormat("a.conf"))
	assert.Equal(t, "yaml", FormatYAML.String())
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Engine.QuicksortStrategy = string(engine.QuicksortInPlace)
	cfg.Engine.Events = false

	e, err := engine.NewEngine(nil, cfg.EngineOptions()...)
	require.NoError(t, err)
	_, err = e.RegisterSubscription(engine.SubscriptionOptions{Event: engine.OperationStart})
	assert.ErrorIs(t, err, engine.ErrEventsDisabled)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	logger, err = NewLogger(LogConfig{Level: "error", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(0))

	_, err = NewLogger(LogConfig{Level: "nope"})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

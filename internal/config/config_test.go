package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/infoprop/propagate"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Propagation.Workers)
	assert.Equal(t, propagate.DefaultMaxDepth, cfg.Propagation.MaxDepth)
	assert.Equal(t, propagate.DefaultMaxConditioning, cfg.Propagation.MaxConditioning)
	assert.True(t, cfg.DiamondsEnabled())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "infoprop.yaml")
	data := []byte(`
propagation:
  workers: 4
  max_depth: 8
  diamonds: false
log:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, got, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, 4, cfg.Propagation.Workers)
	assert.Equal(t, 8, cfg.Propagation.MaxDepth)
	assert.Equal(t, propagate.DefaultMaxConditioning, cfg.Propagation.MaxConditioning) // defaulted
	assert.False(t, cfg.DiamondsEnabled())
	assert.Equal(t, "json", cfg.Log.Format)

	o := propagate.DefaultOptions()
	for _, opt := range cfg.PropagateOptions() {
		opt(&o)
	}
	assert.Equal(t, 4, o.Workers)
	assert.Equal(t, 8, o.MaxDepth)
	assert.False(t, o.Diamonds)
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("propagation: [1, 2"), 0o600))
	_, _, err = LoadFromPath(bad)
	assert.ErrorContains(t, err, "parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("propagation:\n  workers: -2\n  max_conditioning: 80\noutput:\n  format: xml\n"), 0o600))
	_, _, err = LoadFromPath(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "workers -2")
	assert.ErrorContains(t, err, "max_conditioning 80")
	assert.ErrorContains(t, err, `output.format "xml"`)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.MonteCarlo.Seed = 42

	require.NoError(t, cfg.Save(path))
	loaded, _, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFindConfigPath_Env(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	t.Setenv(EnvConfigPath, path)
	assert.Equal(t, path, FindConfigPath())

	cfg, got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, DefaultConfig(), cfg)
}

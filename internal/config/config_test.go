package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/slicer-guide/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("full format", func(t *testing.T) {
		input := []byte(`default_mode: model-only
type_priority: [petg, pla]
vendor_priority:
  - Polymaker
region: Europe
log_level: debug
log_file: /tmp/guide.log
`)
		cfg, err := config.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, "model-only", cfg.DefaultMode)
		assert.Equal(t, []string{"petg", "pla"}, cfg.TypePriority)
		assert.Equal(t, []string{"Polymaker"}, cfg.VendorPriority)
		assert.Equal(t, "Europe", cfg.Region)
		assert.Equal(t, "/tmp/guide.log", cfg.LogFile)

		level, err := cfg.Level()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("omitted keys keep defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`region: Asia-Pacific`))
		require.NoError(t, err)
		assert.Equal(t, "materials", cfg.DefaultMode)
		assert.Equal(t, config.Default().TypePriority, cfg.TypePriority)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("empty config", func(t *testing.T) {
		cfg, err := config.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.Parse([]byte(`{{{`))
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := config.Parse([]byte(`log_level: loud`))
		assert.Error(t, err)
	})
}

func TestMarshalConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Region = "China"

	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "region: China")

	back, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))
	cfg, err = config.Load(path)
	require.NoError(t, err)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

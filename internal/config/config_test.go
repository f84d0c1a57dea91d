package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no config sources.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogDir, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvCatalog, "")
	t.Setenv(EnvWrap, "")
	t.Setenv(EnvNoColor, "")
	os.Unsetenv(EnvNoColor)
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolate(t)
		cfg := Load()
		require.NoError(t, cfg.Err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, DefaultWrapWidth, cfg.WrapWidth)
		assert.Empty(t, cfg.LogDir)
		assert.Empty(t, cfg.File)
		assert.False(t, cfg.NoColor)
	})

	t.Run("yaml file then environment", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_dir: /tmp/from-file\nlog_level: debug\nwrap_width: 100\n"), 0644))
		t.Setenv(EnvConfig, path)
		t.Setenv(EnvLogLevel, "warn")

		cfg := Load()
		require.NoError(t, cfg.Err)
		assert.Equal(t, path, cfg.File)
		assert.Equal(t, "/tmp/from-file", cfg.LogDir)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 100, cfg.WrapWidth)
	})

	t.Run("xdg location", func(t *testing.T) {
		dir := isolate(t)
		cfgDir := filepath.Join(dir, "xdg", "studentsuite")
		require.NoError(t, os.MkdirAll(cfgDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("catalog: my.yaml\n"), 0644))

		cfg := Load()
		require.NoError(t, cfg.Err)
		assert.Equal(t, "my.yaml", cfg.CatalogPath)
	})

	t.Run("dotenv fills unset variables", func(t *testing.T) {
		dir := isolate(t)
		os.Unsetenv(EnvCatalog)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STUDENTSUITE_CATALOG=dotenv.yaml\nSTUDENTSUITE_WRAP=120\n"), 0644))
		t.Setenv(EnvWrap, "60")

		cfg := Load()
		require.NoError(t, cfg.Err)
		assert.Equal(t, "dotenv.yaml", cfg.CatalogPath)
		assert.Equal(t, 60, cfg.WrapWidth)
	})

	t.Run("bad values are reported but defaults survive", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("wrap_width: [\n"), 0644))
		t.Setenv(EnvConfig, path)
		t.Setenv(EnvWrap, "narrow")

		cfg := Load()
		require.Error(t, cfg.Err)
		assert.Contains(t, cfg.Err.Error(), "failed to parse config file")
		assert.Contains(t, cfg.Err.Error(), EnvWrap)
		assert.Equal(t, DefaultWrapWidth, cfg.WrapWidth)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv(EnvConfig, filepath.Join(dir, "absent.yaml"))
		assert.Error(t, Load().Err)
	})

	t.Run("NO_COLOR", func(t *testing.T) {
		isolate(t)
		t.Setenv(EnvNoColor, "")
		assert.True(t, Load().NoColor)
	})
}

func TestLogger(t *testing.T) {
	cfg := &Config{LogLevel: "info"}
	l, err := cfg.Logger()
	require.NoError(t, err)
	assert.Empty(t, l.Path())

	cfg.LogDir = t.TempDir()
	l, err = cfg.Logger()
	require.NoError(t, err)
	assert.NotEmpty(t, l.Path())

	cfg.LogLevel = "loud"
	_, err = cfg.Logger()
	assert.Error(t, err)
}

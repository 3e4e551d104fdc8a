package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqpin/reqpin/internal/config"
	"github.com/reqpin/reqpin/pkg/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("no config files", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, config.Discover(t.TempDir()))
	})

	t.Run("setup.cfg only", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, config.SetupCfgName), "[metadata]\nname = demo\n")

		assert.Equal(t, filepath.Join(dir, config.SetupCfgName), config.Discover(dir))
	})

	t.Run("reqpin.cfg takes precedence over setup.cfg", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, config.SetupCfgName), "[reqpin]\nlog-level = info\n")
		writeFile(t, filepath.Join(dir, config.ReqpinCfgName), "[reqpin]\nlog-level = debug\n")

		assert.Equal(t, filepath.Join(dir, config.ReqpinCfgName), config.Discover(dir))
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	logger := log.New()

	t.Run("reads the reqpin section", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, config.SetupCfgName)
		writeFile(t, path, `
[metadata]
name = demo

[reqpin]
resolver-path = /usr/local/bin/pip-compile
resolver-args = --index-url https://pypi.example.com/simple
log-level = debug
log-format = key-value
`)

		cfg, err := config.Load(logger, path)
		require.NoError(t, err)

		assert.Equal(t, path, cfg.Path)
		assert.Equal(t, "/usr/local/bin/pip-compile", cfg.ResolverPath)
		assert.Equal(t, "--index-url https://pypi.example.com/simple", cfg.ResolverArgs)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "key-value", cfg.LogFormat)
	})

	t.Run("file without the reqpin section yields an empty config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, config.SetupCfgName)
		writeFile(t, path, "[metadata]\nname = demo\n")

		cfg, err := config.Load(logger, path)
		require.NoError(t, err)

		assert.Equal(t, path, cfg.Path)
		assert.Empty(t, cfg.ResolverPath)
		assert.Empty(t, cfg.ResolverArgs)
		assert.Empty(t, cfg.LogLevel)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(logger, filepath.Join(t.TempDir(), "nope.cfg"))
		require.Error(t, err)
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	logger := log.New()

	t.Run("no config file at all", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadDefaults(logger, t.TempDir(), "")
		require.NoError(t, err)

		assert.Empty(t, cfg.Path)
		assert.Empty(t, cfg.ResolverPath)
	})

	t.Run("discovered file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, config.ReqpinCfgName), "[reqpin]\nresolver-path = pip-compile-3.11\n")

		cfg, err := config.LoadDefaults(logger, dir, "")
		require.NoError(t, err)

		assert.Equal(t, "pip-compile-3.11", cfg.ResolverPath)
	})

	t.Run("explicit path wins over discovery", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, config.ReqpinCfgName), "[reqpin]\nlog-level = info\n")

		explicit := filepath.Join(dir, "custom.cfg")
		writeFile(t, explicit, "[reqpin]\nlog-level = trace\n")

		cfg, err := config.LoadDefaults(logger, dir, explicit)
		require.NoError(t, err)

		assert.Equal(t, explicit, cfg.Path)
		assert.Equal(t, "trace", cfg.LogLevel)
	})
}

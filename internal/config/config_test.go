package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/psiconf/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		input := []byte(`version: "1.0.0"
store:
  backend: bolt
  file: options.db
profiles:
  config_root: /tmp/c
  data_root: /tmp/d
  cache_root: /tmp/k
log:
  level: debug
  file: /tmp/psiconf.log
  max_size: 5
  compress: true
plugins:
  - juick
  - otr
default_profile: work
`)
		cfg, err := config.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", cfg.Version)
		assert.Equal(t, config.BackendBolt, cfg.Store.Backend)
		assert.Equal(t, "options.db", cfg.Store.File)
		assert.Equal(t, "/tmp/d", cfg.Profiles.DataRoot)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 5, cfg.Log.MaxSize)
		assert.Equal(t, 3, cfg.Log.MaxBackups, "unset fields keep their defaults")
		assert.True(t, cfg.Log.Compress)
		assert.Equal(t, []string{"juick", "otr"}, cfg.Plugins)
		assert.Equal(t, "work", cfg.DefaultProfile)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte("plugins: [juick]\n"))
		require.NoError(t, err)
		def := config.Default()
		assert.Equal(t, def.Store, cfg.Store)
		assert.Equal(t, def.Profiles, cfg.Profiles)
		assert.Equal(t, []string{"juick"}, cfg.Plugins)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.Parse([]byte("store:\n  backend: sqlite\n"))
		assert.ErrorContains(t, err, "unknown store backend")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Parse([]byte("store: [\n"))
		assert.Error(t, err)
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Plugins = []string{"juick"}
	cfg.Store.Backend = config.BackendBolt

	data, err := config.Marshal(cfg)
	require.NoError(t, err)

	back, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoad(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "psiconf.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default_profile: home\n"), 0o644))
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "home", cfg.DefaultProfile)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "psiconf.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log: [\n"), 0o644))
		_, err := config.Load(path)
		assert.Error(t, err)
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PSICONF_STORE_BACKEND", "bolt")
	t.Setenv("PSICONF_STORE_FILE", "opts.db")
	t.Setenv("PSICONF_CONFIG_ROOT", "/env/config")
	t.Setenv("PSICONF_LOG_LEVEL", "warn")
	t.Setenv("PSICONF_LOG_MAX_SIZE", "42")
	t.Setenv("PSICONF_PLUGINS", "juick, otr,,")
	t.Setenv("PSICONF_PROFILE", "envprofile")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.BackendBolt, cfg.Store.Backend)
	assert.Equal(t, "opts.db", cfg.Store.File)
	assert.Equal(t, "/env/config", cfg.Profiles.ConfigRoot)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 42, cfg.Log.MaxSize)
	assert.Equal(t, []string{"juick", "otr"}, cfg.Plugins)
	assert.Equal(t, "envprofile", cfg.DefaultProfile)

	t.Run("invalid override is rejected", func(t *testing.T) {
		t.Setenv("PSICONF_STORE_BACKEND", "nope")
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "psiconf.yaml")
	cfg := config.Default()
	cfg.DefaultProfile = "saved"
	require.NoError(t, config.Save(path, cfg))

	back, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", back.DefaultProfile)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ruminaider/psiconf/internal/paths"
	"go.yaml.in/yaml/v3"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1.0.0"

// Store backends.
const (
	BackendYAML = "yaml"
	BackendBolt = "bolt"
)

// Config represents ~/.config/psiconf/psiconf.yaml.
type Config struct {
	Version        string        `yaml:"version"`
	Store          StoreConfig   `yaml:"store"`
	Profiles       ProfileConfig `yaml:"profiles"`
	Log            LogConfig     `yaml:"log"`
	Plugins        []string      `yaml:"plugins,omitempty"`
	DefaultProfile string        `yaml:"default_profile,omitempty"`
}

// StoreConfig selects where a profile's option tree is persisted. File is
// relative to the profile's config directory.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	File    string `yaml:"file"`
}

// ProfileConfig holds the three profile roots.
type ProfileConfig struct {
	ConfigRoot string `yaml:"config_root"`
	DataRoot   string `yaml:"data_root"`
	CacheRoot  string `yaml:"cache_root"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Version: CurrentVersion,
		Store: StoreConfig{
			Backend: BackendYAML,
			File:    "options.yaml",
		},
		Profiles: ProfileConfig{
			ConfigRoot: paths.ProfilesConfigRoot(),
			DataRoot:   paths.ProfilesDataRoot(),
			CacheRoot:  paths.ProfilesCacheRoot(),
		},
		Log: LogConfig{
			Level:      "info",
			File:       paths.LogFile(),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		DefaultProfile: "default",
	}
}

// Parse parses psiconf.yaml bytes on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate rejects settings no command could work with.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendYAML, BackendBolt:
	default:
		return fmt.Errorf("parsing config: unknown store backend %q", c.Store.Backend)
	}
	if c.Store.File == "" {
		return fmt.Errorf("parsing config: store file is empty")
	}
	return nil
}

// Load reads the config file at path, falling back to the defaults when it
// does not exist, and applies PSICONF_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	overrideWithEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("PSICONF_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("PSICONF_STORE_FILE"); v != "" {
		cfg.Store.File = v
	}
	if v := os.Getenv("PSICONF_CONFIG_ROOT"); v != "" {
		cfg.Profiles.ConfigRoot = v
	}
	if v := os.Getenv("PSICONF_DATA_ROOT"); v != "" {
		cfg.Profiles.DataRoot = v
	}
	if v := os.Getenv("PSICONF_CACHE_ROOT"); v != "" {
		cfg.Profiles.CacheRoot = v
	}
	if v := os.Getenv("PSICONF_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PSICONF_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if n, err := strconv.Atoi(os.Getenv("PSICONF_LOG_MAX_SIZE")); err == nil && n > 0 {
		cfg.Log.MaxSize = n
	}
	if v := os.Getenv("PSICONF_PLUGINS"); v != "" {
		cfg.Plugins = splitList(v)
	}
	if v := os.Getenv("PSICONF_PROFILE"); v != "" {
		cfg.DefaultProfile = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

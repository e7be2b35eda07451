package paths

import (
	"os"
	"path/filepath"
)

// AppName names the per-user directories.
const AppName = "psiconf"

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

func xdg(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return filepath.Join(append([]string{home()}, fallback...)...)
}

// ConfigDir returns $XDG_CONFIG_HOME/psiconf.
func ConfigDir() string {
	return filepath.Join(xdg("XDG_CONFIG_HOME", ".config"), AppName)
}

// DataDir returns $XDG_DATA_HOME/psiconf.
func DataDir() string {
	return filepath.Join(xdg("XDG_DATA_HOME", ".local", "share"), AppName)
}

// CacheDir returns $XDG_CACHE_HOME/psiconf.
func CacheDir() string {
	return filepath.Join(xdg("XDG_CACHE_HOME", ".cache"), AppName)
}

// ConfigFile returns the tool's own settings file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "psiconf.yaml")
}

// ProfilesConfigRoot returns the directory holding each profile's config.
func ProfilesConfigRoot() string {
	return filepath.Join(ConfigDir(), "profiles")
}

// ProfilesDataRoot returns the directory holding each profile's data.
func ProfilesDataRoot() string {
	return filepath.Join(DataDir(), "profiles")
}

// ProfilesCacheRoot returns the directory holding each profile's cache.
func ProfilesCacheRoot() string {
	return filepath.Join(CacheDir(), "profiles")
}

// LogFile returns the default log file.
func LogFile() string {
	return filepath.Join(CacheDir(), "psiconf.log")
}

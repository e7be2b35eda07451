// Package profiles manages named profiles. A profile is a directory of the
// same name under each of the config, data and cache roots; it exists when
// its config directory does.
package profiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrInvalidName = errors.New("invalid profile name")
	ErrRootMissing = errors.New("profile root missing")
	ErrExists      = errors.New("profile already exists")
	ErrNotFound    = errors.New("profile not found")
)

// ConfigFileName is the legacy configuration document inside a profile's
// config directory.
const ConfigFileName = "config.xml"

// Subdirectories created with every new profile.
const (
	HistoryDir = "history"
	VCardDir   = "vcard"
)

const activeProfileFile = "active-profile"

// Roots are the three directories that hold one subdirectory per profile.
type Roots struct {
	Config string
	Data   string
	Cache  string
}

// All returns the roots with duplicates removed, config first.
func (r Roots) All() []string {
	var out []string
	for _, p := range []string{r.Config, r.Data, r.Cache} {
		if p == "" || contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Dirs returns the profile's directory under each root, duplicates removed.
func (r Roots) Dirs(name string) []string {
	var out []string
	for _, root := range r.All() {
		out = append(out, filepath.Join(root, name))
	}
	return out
}

// ConfigFile returns the path of the profile's legacy config document.
func (r Roots) ConfigFile(name string) string {
	return filepath.Join(r.Config, name, ConfigFileName)
}

// List returns every profile, sorted. A missing config root means no
// profiles.
func (r Roots) List() ([]string, error) {
	entries, err := os.ReadDir(r.Config)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a profile with that name exists, ignoring case.
func (r Roots) Exists(name string) (bool, error) {
	names, err := r.List()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true, nil
		}
	}
	return false, nil
}

// New creates the profile's directories. Every root must already exist;
// directories left over from an earlier attempt are reused.
func (r Roots) New(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	steps := []struct {
		root string
		sub  string
	}{
		{r.Config, ""},
		{r.Data, HistoryDir},
		{r.Cache, VCardDir},
	}
	for _, s := range steps {
		if !isDir(s.root) {
			return fmt.Errorf("creating profile %s: %w: %s", name, ErrRootMissing, s.root)
		}
		dir := filepath.Join(s.root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile %s: %w", name, err)
		}
		if s.sub != "" {
			if err := os.MkdirAll(filepath.Join(dir, s.sub), 0o755); err != nil {
				return fmt.Errorf("creating profile %s: %w", name, err)
			}
		}
	}
	return nil
}

// Resolve returns the on-disk spelling of the profile matching name,
// ignoring case.
func (r Roots) Resolve(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	names, err := r.List()
	if err != nil {
		return "", err
	}
	for _, n := range names {
		if n == name {
			return n, nil
		}
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Rename moves the profile under every root that has it. The config root
// must exist and hold the profile; the first failing rename aborts without
// undoing earlier ones.
func (r Roots) Rename(oldName, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	if err := ValidateName(oldName); err != nil {
		return err
	}
	if !isDir(r.Config) {
		return fmt.Errorf("renaming profile %s: %w: %s", oldName, ErrRootMissing, r.Config)
	}
	oldName, err := r.Resolve(oldName)
	if err != nil {
		return fmt.Errorf("renaming profile: %w", err)
	}
	if oldName != newName {
		for _, root := range r.All() {
			if exists(filepath.Join(root, newName)) && !strings.EqualFold(oldName, newName) {
				return fmt.Errorf("renaming profile %s: %w: %s", oldName, ErrExists, newName)
			}
		}
	}

	for _, root := range r.All() {
		from := filepath.Join(root, oldName)
		if !isDir(root) || !exists(from) {
			continue
		}
		if err := os.Rename(from, filepath.Join(root, newName)); err != nil {
			return fmt.Errorf("renaming profile %s: %w", oldName, err)
		}
	}
	return nil
}

// Delete removes the profile from every root.
func (r Roots) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return Delete(r.Dirs(name))
}

// Delete removes each directory tree in paths. Paths that do not exist are
// skipped; the first failure stops the remaining removals.
func Delete(paths []string) error {
	for _, p := range paths {
		if !exists(p) {
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("deleting %s: %w", p, err)
		}
	}
	return nil
}

// ReadActive returns the name stored as the active profile, or "" when
// none is set.
func (r Roots) ReadActive() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Config, activeProfileFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading active profile: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteActive records name as the active profile.
func (r Roots) WriteActive(name string) error {
	ok, err := r.Exists(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("selecting profile %s: %w", name, ErrNotFound)
	}
	if err := os.WriteFile(filepath.Join(r.Config, activeProfileFile), []byte(name+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing active profile: %w", err)
	}
	return nil
}

// ClearActive forgets the active profile.
func (r Roots) ClearActive() error {
	err := os.Remove(filepath.Join(r.Config, activeProfileFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting active profile: %w", err)
	}
	return nil
}

// EnsureRoots creates any missing root directory.
func (r Roots) EnsureRoots() error {
	for _, root := range r.All() {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return fmt.Errorf("creating profile root: %w", err)
		}
	}
	return nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

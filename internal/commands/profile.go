package commands

import (
	"fmt"
	"strings"

	"github.com/ruminaider/psiconf/internal/profiles"
)

// ResolveProfile picks the profile a command works on: the explicit name,
// then the active profile, then fallback.
func ResolveProfile(roots profiles.Roots, explicit, fallback string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	active, err := roots.ReadActive()
	if err != nil {
		return "", err
	}
	if active != "" {
		return active, nil
	}
	if fallback == "" {
		return "", fmt.Errorf("no profile selected: %w", profiles.ErrNotFound)
	}
	return fallback, nil
}

// ProfileCreate makes sure the roots exist and creates the profile.
func ProfileCreate(roots profiles.Roots, name string) error {
	if err := roots.EnsureRoots(); err != nil {
		return err
	}
	return roots.New(name)
}

// ProfileRename renames a profile and keeps the active marker pointing at it.
// The old name matches the existing profile regardless of case.
func ProfileRename(roots profiles.Roots, oldName, newName string) error {
	actual, err := roots.Resolve(oldName)
	if err != nil {
		return fmt.Errorf("renaming profile: %w", err)
	}
	active, err := roots.ReadActive()
	if err != nil {
		return err
	}
	if err := roots.Rename(actual, newName); err != nil {
		return err
	}
	if strings.EqualFold(active, actual) {
		return roots.WriteActive(newName)
	}
	return nil
}

// ProfileDelete removes a profile and clears the active marker if it
// pointed at it. The name matches the existing profile regardless of case.
func ProfileDelete(roots profiles.Roots, name string) error {
	actual, err := roots.Resolve(name)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	active, err := roots.ReadActive()
	if err != nil {
		return err
	}
	if err := roots.Delete(actual); err != nil {
		return err
	}
	if strings.EqualFold(active, actual) {
		return roots.ClearActive()
	}
	return nil
}

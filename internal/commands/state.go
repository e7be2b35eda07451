package commands

import (
	"os"

	"github.com/ruminaider/psiconf/internal/config"
	"github.com/ruminaider/psiconf/internal/profiles"
)

// MigrationState describes where a profile stands.
type MigrationState int

const (
	// NoLegacyConfig means there is nothing to migrate.
	NoLegacyConfig MigrationState = iota
	// MigrationPending means a legacy config exists and the store is empty.
	MigrationPending
	// Migrated means the option store holds options.
	Migrated
)

func (s MigrationState) String() string {
	switch s {
	case MigrationPending:
		return "pending"
	case Migrated:
		return "migrated"
	default:
		return "no legacy config"
	}
}

// ProfileState is the state of one profile.
type ProfileState struct {
	Name      string
	Active    bool
	Migration MigrationState
}

// State is a snapshot of every profile for `psiconf profile list`.
type State struct {
	Profiles []ProfileState
	Active   string
}

// DetectState inspects every profile. It never fails: unreadable pieces
// are reported as their zero value.
func DetectState(roots profiles.Roots, store config.StoreConfig) State {
	var state State

	if active, err := roots.ReadActive(); err == nil {
		state.Active = active
	}

	names, err := roots.List()
	if err != nil {
		return state
	}
	for _, name := range names {
		state.Profiles = append(state.Profiles, ProfileState{
			Name:      name,
			Active:    name == state.Active,
			Migration: detectMigration(roots, name, store),
		})
	}
	return state
}

func detectMigration(roots profiles.Roots, name string, store config.StoreConfig) MigrationState {
	if _, err := os.Stat(StorePath(roots, name, store)); err == nil {
		tree, err := LoadOptions(roots, name, store)
		if err == nil && len(tree.AllNames()) > 0 {
			return Migrated
		}
	}
	if _, err := os.Stat(roots.ConfigFile(name)); err == nil {
		return MigrationPending
	}
	return NoLegacyConfig
}

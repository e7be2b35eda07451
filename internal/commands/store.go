package commands

import (
	"fmt"
	"path/filepath"

	"github.com/ruminaider/psiconf/internal/config"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/profiles"
)

// StorePath returns where the profile's option store lives.
func StorePath(roots profiles.Roots, profile string, store config.StoreConfig) string {
	return filepath.Join(roots.Config, profile, store.File)
}

// OpenStore opens the option store configured for the profile.
func OpenStore(roots profiles.Roots, profile string, store config.StoreConfig) (options.Store, error) {
	path := StorePath(roots, profile, store)
	switch store.Backend {
	case config.BackendYAML, "":
		return options.NewYAMLStore(path), nil
	case config.BackendBolt:
		return options.OpenBolt(path)
	default:
		return nil, fmt.Errorf("opening options store: unknown backend %q", store.Backend)
	}
}

// LoadOptions reads the profile's option tree.
func LoadOptions(roots profiles.Roots, profile string, store config.StoreConfig) (*options.Tree, error) {
	s, err := OpenStore(roots, profile, store)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	tree := options.NewTree()
	if err := s.Load(tree); err != nil {
		return nil, fmt.Errorf("loading options for %s: %w", profile, err)
	}
	return tree, nil
}

package commands

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/ruminaider/psiconf/internal/config"
	"github.com/ruminaider/psiconf/internal/migration"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/profiles"
	"go.uber.org/zap"
)

// ErrAlreadyMigrated is returned when the profile already has options and
// the migration was not forced.
var ErrAlreadyMigrated = errors.New("profile already migrated")

// MigrateOptions configures Migrate.
type MigrateOptions struct {
	Roots   profiles.Roots
	Profile string
	Store   config.StoreConfig
	// Plugins are plugin short names whose toolbar actions go into the
	// default chat toolbars.
	Plugins []string
	// Force discards existing options before migrating.
	Force  bool
	Logger *zap.Logger
	// DetectPlayer overrides sound player detection; nil means
	// migration.DetectSoundPlayer.
	DetectPlayer func() string
}

// MigrateReport summarizes a finished migration.
type MigrateReport struct {
	Profile  string
	Source   string
	ProgVer  string
	Accounts []string
	Proxies  []string

	Added   int
	Changed int
	Removed int

	ToolbarsRebuilt bool
	Flushed         bool
}

// Migrate converts the profile's legacy config.xml into its option store.
// Nothing is persisted unless both migration phases complete.
func Migrate(opts MigrateOptions) (*MigrateReport, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := profiles.ValidateName(opts.Profile); err != nil {
		return nil, err
	}
	source := opts.Roots.ConfigFile(opts.Profile)
	if _, err := os.Stat(source); err != nil {
		if _, berr := os.Stat(source + ".backup"); berr != nil {
			return nil, fmt.Errorf("%w: %s: %w", migration.ErrParse, source, err)
		}
	}

	store, err := OpenStore(opts.Roots, opts.Profile, opts.Store)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	existing := options.NewTree()
	if err := store.Load(existing); err != nil {
		return nil, fmt.Errorf("loading options for %s: %w", opts.Profile, err)
	}
	if len(existing.AllNames()) > 0 && !opts.Force {
		return nil, fmt.Errorf("migrating %s: %w", opts.Profile, ErrAlreadyMigrated)
	}
	before := existing.Snapshot()

	tree := options.NewTree()
	m := migration.New(tree, log.With(zap.String("profile", opts.Profile)))
	if opts.DetectPlayer != nil {
		m.DetectPlayer = opts.DetectPlayer
	}

	res, err := m.FromFile(source)
	if err != nil {
		return nil, fmt.Errorf("migrating %s: %w", opts.Profile, err)
	}
	m.Save(res)
	late := m.LateMigrate(res.Late, migration.Dependencies{
		PluginKeys: migration.PluginKeys(opts.Plugins),
	})

	if err := store.Save(tree); err != nil {
		return nil, fmt.Errorf("saving options for %s: %w", opts.Profile, err)
	}

	rep := &MigrateReport{
		Profile:         opts.Profile,
		Source:          source,
		ProgVer:         res.ProgVer,
		ToolbarsRebuilt: late.ToolbarsRebuilt,
		Flushed:         late.Flushed,
	}
	for _, a := range res.Accounts {
		rep.Accounts = append(rep.Accounts, a.Name)
	}
	for _, p := range res.Proxies {
		rep.Proxies = append(rep.Proxies, p.Name)
	}
	rep.Added, rep.Changed, rep.Removed = diff(before, tree.Snapshot())

	log.Info("profile migrated",
		zap.String("profile", opts.Profile),
		zap.Int("accounts", len(rep.Accounts)),
		zap.Int("proxies", len(rep.Proxies)),
		zap.Int("added", rep.Added),
		zap.Int("changed", rep.Changed),
		zap.Int("removed", rep.Removed))
	return rep, nil
}

func diff(before, after map[string]any) (added, changed, removed int) {
	for k, v := range after {
		old, ok := before[k]
		switch {
		case !ok:
			added++
		case !reflect.DeepEqual(old, v):
			changed++
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			removed++
		}
	}
	return added, changed, removed
}

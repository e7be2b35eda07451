package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/psiconf/internal/commands"
	"github.com/spf13/cobra"
)

var (
	migrateForce bool
	migrateYes   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a profile's legacy config.xml into the option store",
	Long:  "Reads config.xml from the profile's config directory, translates accounts, proxies and preferences into options, builds the default toolbars and saves the result with the configured store backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := roots()
		profile, err := commands.ResolveProfile(r, profileFlag, cfg.DefaultProfile)
		if err != nil {
			return err
		}

		opts := commands.MigrateOptions{
			Roots:   r,
			Profile: profile,
			Store:   cfg.Store,
			Plugins: cfg.Plugins,
			Force:   migrateForce,
			Logger:  logger,
		}

		rep, err := commands.Migrate(opts)
		if errors.Is(err, commands.ErrAlreadyMigrated) && !migrateForce {
			if !migrateYes {
				var confirm bool
				perr := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title(fmt.Sprintf("Profile %q already has options. Discard them all and migrate again?", profile)).
							Affirmative("Yes, replace").
							Negative("Cancel").
							Value(&confirm),
					),
				).Run()
				if perr != nil {
					return fmt.Errorf("prompt cancelled: %w", perr)
				}
				if !confirm {
					fmt.Println("Migration cancelled.")
					return nil
				}
			}
			opts.Force = true
			rep, err = commands.Migrate(opts)
		}
		if err != nil {
			return err
		}

		printMigrateReport(rep)
		return nil
	},
}

func printMigrateReport(rep *commands.MigrateReport) {
	fmt.Printf("Migrated profile %s from %s", rep.Profile, rep.Source)
	if rep.ProgVer != "" {
		fmt.Printf(" (written by %s)", rep.ProgVer)
	}
	fmt.Println()

	fmt.Printf("  Accounts: %d\n", len(rep.Accounts))
	for _, name := range rep.Accounts {
		fmt.Printf("    - %s\n", name)
	}
	fmt.Printf("  Proxies:  %d\n", len(rep.Proxies))
	for _, name := range rep.Proxies {
		fmt.Printf("    - %s\n", name)
	}
	fmt.Printf("  Options:  +%d ~%d -%d\n", rep.Added, rep.Changed, rep.Removed)
	if rep.ToolbarsRebuilt {
		fmt.Println("  Default chat toolbars created.")
	}
	if rep.Flushed {
		fmt.Println("  Status presets, iconsets and toolbars written.")
	}
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "discard all existing options of the profile and migrate again without asking")
	migrateCmd.Flags().BoolVarP(&migrateYes, "yes", "y", false, "answer yes to the overwrite prompt")
}

package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/psiconf/internal/commands"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles and their migration state",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := commands.DetectState(roots(), cfg.Store)
		if len(state.Profiles) == 0 {
			fmt.Println("No profiles found.")
			return nil
		}
		for _, p := range state.Profiles {
			marker := " "
			if p.Active {
				marker = "*"
			}
			fmt.Printf("%s %s (%s)\n", marker, p.Name, p.Migration)
		}
		return nil
	},
}

var profileNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.ProfileCreate(roots(), args[0]); err != nil {
			return err
		}
		logger.Info("profile created", zap.String("profile", args[0]))
		fmt.Printf("Created profile %s\n", args[0])
		return nil
	},
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.ProfileRename(roots(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed profile %s to %s\n", args[0], args[1])
		return nil
	},
}

var profileDeleteYes bool

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile and all of its data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		r := roots()

		if !profileDeleteYes {
			fmt.Println("This removes:")
			for _, dir := range r.Dirs(name) {
				fmt.Printf("  %s\n", dir)
			}
			var confirm bool
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete profile %q?", name)).
						Affirmative("Yes, remove").
						Negative("Cancel").
						Value(&confirm),
				),
			).Run()
			if err != nil {
				return fmt.Errorf("prompt cancelled: %w", err)
			}
			if !confirm {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := commands.ProfileDelete(r, name); err != nil {
			return err
		}
		fmt.Printf("Deleted profile %s\n", name)
		return nil
	},
}

var profileUseNone bool

var profileUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Set the active profile",
	Args: func(cmd *cobra.Command, args []string) error {
		if profileUseNone {
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("requires a profile name argument (or use --none to clear)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		r := roots()
		if profileUseNone {
			if err := r.ClearActive(); err != nil {
				return err
			}
			fmt.Println("Active profile cleared.")
			return nil
		}
		if err := r.WriteActive(args[0]); err != nil {
			return err
		}
		fmt.Printf("Active profile: %s\n", args[0])
		return nil
	},
}

func init() {
	profileDeleteCmd.Flags().BoolVarP(&profileDeleteYes, "yes", "y", false, "skip the confirmation prompt")
	profileUseCmd.Flags().BoolVar(&profileUseNone, "none", false, "clear the active profile")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileNewCmd)
	profileCmd.AddCommand(profileRenameCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileUseCmd)
}

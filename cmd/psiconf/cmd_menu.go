package main

import (
	"bufio"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/psiconf/cmd/psiconf/tui"
	"github.com/ruminaider/psiconf/internal/commands"
	"github.com/ruminaider/psiconf/internal/profiles"
	"github.com/spf13/cobra"
)

func runMainMenu(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdin.Fd()) {
		return profileListCmd.RunE(cmd, args)
	}

	for {
		state := commands.DetectState(roots(), cfg.Store)

		model := tui.NewMenuModel(state)
		model.Version = version
		finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}

		menu := finalModel.(tui.MenuModel)
		if menu.Quitting || menu.Selected.ID == "" {
			return nil
		}

		action := menu.Selected
		err = dispatchAction(action)

		if action.Type == tui.ActionCLI {
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
			}
			fmt.Print("\nPress Enter to return to menu...")
			bufio.NewReader(os.Stdin).ReadBytes('\n')
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

// actionHandlers maps every menu action ID to the command it runs.
var actionHandlers = map[string]func(tui.MenuAction) error{
	tui.ActionMigrate: func(a tui.MenuAction) error {
		return withProfile(a.Profile, func() error { return migrateCmd.RunE(migrateCmd, nil) })
	},
	tui.ActionOptionsDump: func(a tui.MenuAction) error {
		return withProfile(a.Profile, func() error { return optionsDumpCmd.RunE(optionsDumpCmd, nil) })
	},
	tui.ActionProfileList: func(tui.MenuAction) error {
		return profileListCmd.RunE(profileListCmd, nil)
	},
	tui.ActionProfileNew: func(tui.MenuAction) error {
		name, err := promptProfileName()
		if err != nil {
			return err
		}
		return profileNewCmd.RunE(profileNewCmd, []string{name})
	},
	tui.ActionProfileUse: func(a tui.MenuAction) error {
		return profileUseCmd.RunE(profileUseCmd, []string{a.Profile})
	},
	tui.ActionProfileDelete: func(a tui.MenuAction) error {
		return profileDeleteCmd.RunE(profileDeleteCmd, []string{a.Profile})
	},
}

func dispatchAction(action tui.MenuAction) error {
	run, ok := actionHandlers[action.ID]
	if !ok {
		return fmt.Errorf("unknown action: %s", action.ID)
	}
	return run(action)
}

// withProfile runs fn with the --profile flag temporarily set.
func withProfile(name string, fn func() error) error {
	prev := profileFlag
	profileFlag = name
	defer func() { profileFlag = prev }()
	return fn()
}

func promptProfileName() (string, error) {
	var name string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Description("Letters and digits only.").
				Validate(profiles.ValidateName).
				Value(&name),
		),
	).Run()
	if err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return name, nil
}

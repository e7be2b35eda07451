package tui

import "github.com/ruminaider/psiconf/internal/commands"

// BuildMenuItems returns the menu tree for the detected state.
func BuildMenuItems(state commands.State) []menuItem {
	if len(state.Profiles) == 0 {
		return []menuItem{
			{
				label:  "Create profile",
				desc:   "directories under the config, data and cache roots",
				action: MenuAction{ID: ActionProfileNew, Type: ActionTUI},
			},
		}
	}

	var items []menuItem
	if active, ok := activeProfile(state); ok {
		switch active.Migration {
		case commands.MigrationPending:
			items = append(items, menuItem{
				label:  "Migrate " + active.Name,
				desc:   "config.xml found",
				action: MenuAction{ID: ActionMigrate, Type: ActionCLI, Profile: active.Name},
			})
		case commands.Migrated:
			items = append(items,
				menuItem{
					label:  "Migrate " + active.Name + " again",
					desc:   "replaces current options",
					action: MenuAction{ID: ActionMigrate, Type: ActionCLI, Profile: active.Name},
				},
				menuItem{
					label:  "Dump options",
					action: MenuAction{ID: ActionOptionsDump, Type: ActionCLI, Profile: active.Name},
				},
			)
		}
	}
	return append(items, buildProfilesCategory(state))
}

func buildProfilesCategory(state commands.State) menuItem {
	children := []menuItem{
		{label: "List profiles", action: MenuAction{ID: ActionProfileList, Type: ActionCLI}},
		{label: "Create profile", action: MenuAction{ID: ActionProfileNew, Type: ActionTUI}},
	}

	var use, del []menuItem
	for _, p := range state.Profiles {
		if !p.Active {
			use = append(use, menuItem{
				label:  p.Name,
				desc:   p.Migration.String(),
				action: MenuAction{ID: ActionProfileUse, Type: ActionCLI, Profile: p.Name},
			})
		}
		del = append(del, menuItem{
			label:  p.Name,
			action: MenuAction{ID: ActionProfileDelete, Type: ActionTUI, Profile: p.Name},
		})
	}
	if len(use) > 0 {
		children = append(children, menuItem{label: "Switch profile", children: use})
	}
	children = append(children, menuItem{label: "Delete profile", children: del})

	return menuItem{label: "Profiles", children: children}
}

func activeProfile(state commands.State) (commands.ProfileState, bool) {
	for _, p := range state.Profiles {
		if p.Active {
			return p, true
		}
	}
	return commands.ProfileState{}, false
}

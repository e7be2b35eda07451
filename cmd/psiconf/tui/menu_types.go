package tui

// ActionType distinguishes how a menu action is executed.
type ActionType int

const (
	ActionNone ActionType = iota // category (has children, no action)
	ActionCLI                    // exit menu, run CLI command, re-enter menu
	ActionTUI                    // exit menu, prompt interactively, re-enter menu
)

// Action IDs shared by the menu and the dispatcher in package main.
const (
	ActionMigrate       = "migrate"
	ActionProfileList   = "profile-list"
	ActionProfileNew    = "profile-new"
	ActionProfileUse    = "profile-use"
	ActionProfileDelete = "profile-delete"
	ActionOptionsDump   = "options-dump"
)

// AllActionIDs returns every action ID; each must have a case in the
// dispatcher.
func AllActionIDs() []string {
	return []string{
		ActionMigrate,
		ActionProfileList, ActionProfileNew, ActionProfileUse, ActionProfileDelete,
		ActionOptionsDump,
	}
}

// MenuAction is the result of selecting a leaf menu item.
type MenuAction struct {
	ID      string
	Type    ActionType
	Profile string // target of per-profile actions
}

type menuItem struct {
	label    string
	desc     string
	children []menuItem // non-nil = category, nil = leaf action
	action   MenuAction
}

func (m menuItem) isCategory() bool {
	return len(m.children) > 0
}

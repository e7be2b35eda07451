package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/psiconf/internal/commands"
)

type menuLevel struct {
	title  string
	items  []menuItem
	cursor int
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items    []menuItem
	cursor   int
	stack    []menuLevel
	state    commands.State
	width    int
	Version  string
	Quitting bool
	Selected MenuAction // set when a leaf action is chosen
}

// NewMenuModel creates a menu model from detected state.
func NewMenuModel(state commands.State) MenuModel {
	return MenuModel{
		items: BuildMenuItems(state),
		state: state,
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) currentItems() []menuItem {
	if len(m.stack) == 0 {
		return m.items
	}
	return m.stack[len(m.stack)-1].items
}

func (m MenuModel) currentTitle() string {
	if len(m.stack) == 0 {
		return ""
	}
	return m.stack[len(m.stack)-1].title
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		items := m.currentItems()

		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(items)-1 {
				m.cursor++
			}

		case "enter":
			if m.cursor < 0 || m.cursor >= len(items) {
				break
			}
			selected := items[m.cursor]
			if selected.isCategory() {
				m.stack = append(m.stack, menuLevel{
					title:  selected.label,
					items:  selected.children,
					cursor: m.cursor,
				})
				m.cursor = 0
				break
			}
			m.Selected = selected.action
			return m, tea.Quit

		case "esc":
			if len(m.stack) == 0 {
				m.Quitting = true
				return m, tea.Quit
			}
			prev := m.stack[len(m.stack)-1]
			m.stack = m.stack[:len(m.stack)-1]
			m.cursor = prev.cursor
		}
	}

	return m, nil
}

func (m MenuModel) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("psiconf"))
	if title := m.currentTitle(); title != "" {
		b.WriteString(dimStyle.Render(" > " + title))
		b.WriteString("\n\n")
	} else {
		if m.Version != "" {
			b.WriteString(" " + dimStyle.Render("v"+m.Version))
		}
		b.WriteString("\n")
		if summary := buildStatusSummary(m.state); summary != "" {
			b.WriteString(dimStyle.Render(summary))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for i, item := range m.currentItems() {
		cursor := "  "
		label := item.label
		if i == m.cursor {
			cursor = "> "
			label = cursorStyle.Render(label)
		}
		line := cursor + label
		if item.desc != "" {
			line += " " + dimStyle.Render(item.desc)
		}
		if item.isCategory() {
			line += " " + dimStyle.Render(">")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if len(m.stack) > 0 {
		b.WriteString(dimStyle.Render("esc back  q quit"))
	} else {
		b.WriteString(dimStyle.Render("q quit"))
	}
	b.WriteString("\n")

	content := b.String()
	if m.width > 0 {
		content = boxStyle.Width(min(m.width-2, 56)).Render(content)
	}
	return content
}

// buildStatusSummary returns the one-line header under the title.
func buildStatusSummary(state commands.State) string {
	var parts []string
	if state.Active != "" {
		parts = append(parts, "profile: "+state.Active)
	}
	if n := len(state.Profiles); n > 0 {
		parts = append(parts, fmt.Sprintf("%d profiles", n))
	}
	pending := 0
	for _, p := range state.Profiles {
		if p.Migration == commands.MigrationPending {
			pending++
		}
	}
	if pending > 0 {
		parts = append(parts, pendingStyle.Render(fmt.Sprintf("%d to migrate", pending)))
	}
	return strings.Join(parts, " | ")
}

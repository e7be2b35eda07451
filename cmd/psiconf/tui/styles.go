package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	dimStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	pendingStyle = lipgloss.NewStyle().Foreground(colorYellow)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(1, 2)
)

package termui

import "github.com/charmbracelet/lipgloss"

// Styles used by the terminal views. lipgloss styles are value types and
// safe to share.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	glowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	ledOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	thumbStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cellStyle = lipgloss.NewStyle().
			Width(CellWidth).
			Height(CellHeight).
			Align(lipgloss.Center)
)

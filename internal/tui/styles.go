package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	currentStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	statusStyle     = lipgloss.NewStyle().Italic(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 1)
	subtextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorRowStyle = lipgloss.NewStyle().Bold(true)
	exampleStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")).Padding(0, 1)
	actionStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Bold(true)
	actionHotStyle = actionStyle.Foreground(lipgloss.Color("212"))
	dotsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	boldKeyStyle   = lipgloss.NewStyle().Bold(true)
)

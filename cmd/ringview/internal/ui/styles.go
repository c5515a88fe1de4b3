package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	rimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E88E5"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
)

package ui

import "github.com/charmbracelet/lipgloss"

// UI styles
var (
	// Base styles
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1)

	navStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#374151")).
		Padding(1, 2).
		Width(20)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(1, 2).
		Width(76)

	// Navigation styles
	navActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))

	navItemStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	// Content styles
	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	spinnerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))

	tableHeaderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Underline(true)

	selectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F59E0B"))
)

// SetAccent recolors the accent-bound styles from a hex value. Called once at
// startup and again whenever the config file changes on disk.
func SetAccent(hex string) {
	if hex == "" {
		return
	}
	c := lipgloss.Color(hex)
	titleStyle = titleStyle.Foreground(c)
	navActiveStyle = navActiveStyle.Foreground(c)
}

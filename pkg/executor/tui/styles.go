package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // primary accent
	coralPink   = lipgloss.Color("#FFCCCB") // secondary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // success
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
	errorRed    = lipgloss.Color("203")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	labelStyle = lipgloss.NewStyle().
			Foreground(coralPink).
			Bold(true)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(salmonPink).
				Bold(true)

	scopeSelectedStyle = lipgloss.NewStyle().
				Foreground(brightWhite).
				Background(salmonPink).
				Padding(0, 1)

	scopeIdleStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorRed)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(salmonPink).
			Padding(1, 2)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mintGreen).
			Padding(0, 1)

	toastErrorStyle = toastStyle.
			BorderForeground(errorRed)
)

package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/todopro/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("196") // Red accent
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("224") // Pale pink
	ColorCyan      = lipgloss.Color("87")  // Cyan for tags

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)
	StyleTag     = lipgloss.NewStyle().Foreground(ColorCyan)

	// Task rows
	StyleDone     = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)
	StyleSelected = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	// Priority badges
	StylePriorityHigh   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePriorityMedium = lipgloss.NewStyle().Foreground(ColorWarning)
	StylePriorityLow    = lipgloss.NewStyle().Foreground(ColorSecondary)

	// Input Box Style for the add form
	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// PriorityStyle picks the badge style for p.
func PriorityStyle(p models.TaskPriority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return StylePriorityHigh
	case models.PriorityLow:
		return StylePriorityLow
	default:
		return StylePriorityMedium
	}
}

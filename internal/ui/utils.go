package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/todopro/types"
	"golang.org/x/term"
)

// IsInteractive checks if both stdin and stdout are terminals.
// Prompts are skipped when either side is piped.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Panel represents a styled panel with optional title and content.
type Panel struct {
	Title       string
	Content     string
	BorderColor lipgloss.Color
	Width       int
}

// NewPanel creates a new panel with default styling.
func NewPanel(title, content string) *Panel {
	return &Panel{
		Title:       title,
		Content:     content,
		BorderColor: ColorSecondary,
	}
}

// WithBorderColor sets the border color and returns the panel.
func (p *Panel) WithBorderColor(color lipgloss.Color) *Panel {
	p.BorderColor = color
	return p
}

// Render returns the styled panel as a string.
func (p *Panel) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Padding(0, 1)
	if p.Width > 0 {
		style = style.Width(p.Width)
	}

	content := p.Content
	if p.Title != "" {
		content = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render(p.Title) + "\n" + p.Content
	}
	return style.Render(content)
}

// RenderSummary renders the counts shown under a listing.
func RenderSummary(sum types.TaskSummary) string {
	line := fmt.Sprintf("%d tasks · %s done · %s pending",
		sum.Total,
		StyleSuccess.Render(fmt.Sprint(sum.Completed)),
		StyleWarning.Render(fmt.Sprint(sum.Pending)))
	if sum.UndoAvailable {
		line += StyleSubtle.Render(" · undo available")
	}
	return line
}

package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/todopro/models"
	"github.com/josephgoksu/todopro/types"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStyles(t *testing.T) {
	// Force color profile for testing
	lipgloss.SetColorProfile(termenv.ANSI256)

	// Verify critical styles are defined and return something
	assert.NotNil(t, StyleTitle)
	assert.NotNil(t, StyleSuccess)

	out := StyleSuccess.Render("Test")
	assert.Contains(t, out, "Test")
	// Verify ANSI codes are present
	assert.NotEqual(t, "Test", out, "Style should add ANSI codes when forced")
}

func TestIcon(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	icon := "X"
	out := Icon(icon, StyleError)
	assert.Contains(t, out, icon)
	assert.NotEqual(t, icon, out)
}

func TestPriorityStyle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	assert.Equal(t, StylePriorityHigh.Render("x"), PriorityStyle(models.PriorityHigh).Render("x"))
	assert.Equal(t, StylePriorityLow.Render("x"), PriorityStyle(models.PriorityLow).Render("x"))
	assert.Equal(t, StylePriorityMedium.Render("x"), PriorityStyle(models.PriorityMedium).Render("x"))
	assert.Equal(t, StylePriorityMedium.Render("x"), PriorityStyle("").Render("x"), "unknown priority falls back to medium")
}

func TestRenderSummary(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.ANSI256)

	out := RenderSummary(types.TaskSummary{Total: 3, Completed: 1, Pending: 2})
	assert.Equal(t, "3 tasks · 1 done · 2 pending", out)

	out = RenderSummary(types.TaskSummary{Total: 1, Pending: 1, UndoAvailable: true})
	assert.Contains(t, out, "undo available")
}

func TestPanel_Render(t *testing.T) {
	out := NewPanel("Title", "body").WithBorderColor(ColorSuccess).Render()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/josephgoksu/todopro/internal/util"
	"github.com/josephgoksu/todopro/models"
)

// Table renders data in a compact markdown-style table format.
// Widths are measured in terminal cells, so emoji and CJK text line up.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
}

// ColumnWidths calculates optimal column widths based on content.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))

	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	if t.MaxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], t.MaxWidth)
		}
	}
	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	cellStyle := lipgloss.NewStyle().Foreground(ColorText)

	var headerCells []string
	for i, h := range t.Headers {
		headerCells = append(headerCells, headerStyle.Render(padRight(h, widths[i])))
	}
	sb.WriteString(" " + strings.Join(headerCells, "  ") + "\n")

	var sepParts []string
	for _, w := range widths {
		sepParts = append(sepParts, StyleSubtle.Render(strings.Repeat("─", w)))
	}
	sb.WriteString(" " + strings.Join(sepParts, "──") + "\n")

	for _, row := range t.Rows {
		var cells []string
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = Truncate(row[i], widths[i])
			}
			cells = append(cells, cellStyle.Render(padRight(val, widths[i])))
		}
		sb.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}

	return sb.String()
}

// padRight pads a string to the specified cell width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Truncate shortens s to at most maxLen terminal cells, ending in "…" when cut.
// A non-positive maxLen returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || ansi.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return ansi.Truncate(s, maxLen, "…")
}

// TaskTable builds the table used by `list`. Positions are 1-based so they
// can be passed straight back to done and delete.
func TaskTable(tasks []models.Task, showIDs bool) *Table {
	headers := []string{"#", "Done", "Description", "Priority", "Due", "Tags"}
	if showIDs {
		headers = append([]string{"ID"}, headers...)
	}
	table := &Table{Headers: headers, MaxWidth: 48}

	for i, t := range tasks {
		done := "☐"
		if t.Completed {
			done = "✓"
		}
		due := t.Due()
		if due == "" {
			due = "-"
		}
		row := []string{strconv.Itoa(i + 1), done, t.Description, string(t.Priority), due, strings.Join(t.Tags, ", ")}
		if showIDs {
			row = append([]string{util.ShortID(t.ID, util.TaskIDLength)}, row...)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

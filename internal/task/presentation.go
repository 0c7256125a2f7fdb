package task

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/todopro/models"
)

// Status glyphs used in plain listings.
const (
	GlyphDone    = "✓"
	GlyphPending = "☐"
)

// FormatLine renders a task the way plain listings show it, with position
// being 1-based:
//
//	2. ☐ write spec [High] | Due: 2024-01-01 | Tags: work, urgent
//
// This is used by both CLI output and MCP text results to ensure
// consistent presentation.
func FormatLine(position int, t models.Task) string {
	status := GlyphPending
	if t.Completed {
		status = GlyphDone
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. %s %s [%s]", position, status, t.Description, t.Priority)
	if t.HasDueDate() {
		fmt.Fprintf(&sb, " | Due: %s", t.Due())
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&sb, " | Tags: %s", strings.Join(t.Tags, ", "))
	}
	return sb.String()
}

// FormatList renders all tasks with FormatLine, one per line.
func FormatList(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "No tasks yet."
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = FormatLine(i+1, t)
	}
	return strings.Join(lines, "\n")
}

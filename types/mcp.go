/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// MCP Tool Parameter Types

// AddTaskParams for creating a new task
type AddTaskParams struct {
	Description string `json:"description" jsonschema:"Task description (required)"`
	Priority    string `json:"priority,omitempty" jsonschema:"Task priority: low, medium, high (default medium)"`
	DueDate     string `json:"dueDate,omitempty" jsonschema:"Optional due date, free text (e.g. 2024-01-01)"`
	Tags        string `json:"tags,omitempty" jsonschema:"Comma-separated tags"`
}

// ListTasksParams for listing tasks
type ListTasksParams struct {
	IncludeCompleted *bool `json:"includeCompleted,omitempty" jsonschema:"Include completed tasks (default true)"`
}

// TaskRefParams addresses one task by ID, ID prefix, or 1-based list position.
type TaskRefParams struct {
	Ref string `json:"ref" jsonschema:"Task ID, unique ID prefix, or 1-based position as shown by list-tasks (required)"`
}

// UndoParams is empty; undo always reverses the single pending action.
type UndoParams struct{}

// ExportParams for exporting tasks to a file
type ExportParams struct {
	Output string `json:"output,omitempty" jsonschema:"Destination path (default from config)"`
	Format string `json:"format,omitempty" jsonschema:"csv, json or yaml (default from config)"`
}

// TaskResponse is the wire form of a task
type TaskResponse struct {
	ID          string   `json:"id"`
	Position    int      `json:"position"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags"`
}

// TaskListResponse wraps a listing together with a summary
type TaskListResponse struct {
	Tasks   []TaskResponse `json:"tasks"`
	Summary TaskSummary    `json:"summary"`
}

// UndoResponse reports the undo outcome.
type UndoResponse struct {
	Applied bool   `json:"applied"`
	Kind    string `json:"kind,omitempty"`
	TaskID  string `json:"taskId,omitempty"`
	Message string `json:"message"`
}

// ExportResponse reports where tasks were written.
type ExportResponse struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Count  int    `json:"count"`
}

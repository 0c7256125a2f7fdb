/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// TaskSummary gives counts over the current task list.
type TaskSummary struct {
	Total           int            `json:"total"`
	Completed       int            `json:"completed"`
	Pending         int            `json:"pending"`
	TasksByPriority map[string]int `json:"tasksByPriority"`
	UndoAvailable   bool           `json:"undoAvailable"`
}

package models

// ActionKind tags the mutation held in the undo slot.
type ActionKind string

const (
	ActionAdd      ActionKind = "add"
	ActionComplete ActionKind = "complete"
	ActionDelete   ActionKind = "delete"
)

// UndoAction is the single most recent reversible mutation.
// Task is a snapshot taken right after the mutation; for deletes it is the
// removed task and is what gets re-appended.
type UndoAction struct {
	Kind   ActionKind `json:"kind" yaml:"kind" toml:"kind" validate:"required,oneof=add complete delete"`
	TaskID string     `json:"taskId" yaml:"taskId" toml:"taskId" validate:"required"`
	Task   Task       `json:"task" yaml:"task" toml:"task"`
}

// Verb describes the action for messages ("added", "completed", "deleted").
func (k ActionKind) Verb() string {
	switch k {
	case ActionAdd:
		return "added"
	case ActionComplete:
		return "completed"
	case ActionDelete:
		return "deleted"
	default:
		return string(k)
	}
}

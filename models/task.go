package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/josephgoksu/todopro/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Priorities lists the valid priorities in ascending order.
var Priorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority maps user input such as "high" or " LOW " to a TaskPriority.
// Empty input yields PriorityMedium.
func ParsePriority(s string) (TaskPriority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriorityMedium, nil
	}
	// Casers keep state, so each call gets its own.
	p := TaskPriority(cases.Title(language.English).String(strings.ToLower(s)))
	if !slices.Contains(Priorities, p) {
		return "", types.NewValidationError("priority", fmt.Sprintf("%q is not one of Low, Medium, High", s))
	}
	return p, nil
}

// Rank orders priorities for sorting; unknown values rank lowest.
func (p TaskPriority) Rank() int {
	return slices.Index(Priorities, p) + 1
}

// Task represents one to-do item.
type Task struct {
	ID          string       `json:"id" yaml:"id" toml:"id" validate:"required"`
	Description string       `json:"description" yaml:"description" toml:"description" validate:"required"`
	Completed   bool         `json:"completed" yaml:"completed" toml:"completed"`
	Priority    TaskPriority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=Low Medium High"`
	DueDate     *string      `json:"due_date" yaml:"due_date" toml:"due_date,omitempty"` // nil serializes as null
	Tags        []string     `json:"tags" yaml:"tags" toml:"tags"`
	CreatedAt   time.Time    `json:"created_at,omitzero" yaml:"created_at,omitempty" toml:"created_at,omitempty"`
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil && *t.DueDate != ""
}

// Due returns the due date or "" when unset.
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// Clone returns a copy that shares no slices or pointers with t.
func (t Task) Clone() Task {
	c := t
	c.Tags = slices.Clone(t.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return c
}

// TaskList is the persisted document: the ordered tasks plus the pending undo slot.
type TaskList struct {
	Tasks       []Task      `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
	TotalCount  int         `json:"totalCount" yaml:"totalCount" toml:"totalCount"`
	PendingUndo *UndoAction `json:"pendingUndo" yaml:"pendingUndo" toml:"pendingUndo,omitempty"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
// Failures are reported as a *types.ValidationError naming the first bad field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return types.NewValidationError("", err.Error())
	}
	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("rule '%s' failed (value: '%v')", e.Tag(), e.Value()))
	}
	return types.NewValidationError(strings.ToLower(validationErrors[0].Field()), strings.Join(messages, "; "))
}

// NewTask creates a task with defaults applied. Description is stored trimmed.
func NewTask(id, description string) Task {
	return Task{
		ID:          id,
		Description: strings.TrimSpace(description),
		Priority:    PriorityMedium,
		Tags:        []string{},
		CreatedAt:   time.Now().UTC(),
	}
}

package task

import (
	"fmt"
	"slices"

	"github.com/josephgoksu/todopro/models"
)

// UndoStatus is the result kind of Undo.
type UndoStatus int

const (
	// NothingToUndo means the slot was empty. It is not an error.
	NothingToUndo UndoStatus = iota
	// UndoApplied means the pending action was reversed.
	UndoApplied
)

// UndoOutcome reports what Undo did. Action is only set when Status is UndoApplied.
type UndoOutcome struct {
	Status UndoStatus
	Action models.UndoAction
}

// Applied reports whether an action was reversed.
func (o UndoOutcome) Applied() bool {
	return o.Status == UndoApplied
}

// Message is a one-line, human readable description of the outcome.
func (o UndoOutcome) Message() string {
	if !o.Applied() {
		return "Nothing to undo."
	}
	switch o.Action.Kind {
	case models.ActionAdd:
		return fmt.Sprintf("Undid add: removed %q.", o.Action.Task.Description)
	case models.ActionDelete:
		return fmt.Sprintf("Undid delete: restored %q at the end of the list.", o.Action.Task.Description)
	case models.ActionComplete:
		return fmt.Sprintf("Undid complete: %q is pending again.", o.Action.Task.Description)
	default:
		return fmt.Sprintf("Undid %s.", o.Action.Kind)
	}
}

// record replaces the undo slot. Only the latest mutation is ever kept.
func (s *Service) record(kind models.ActionKind, t models.Task) {
	s.pending = &models.UndoAction{Kind: kind, TaskID: t.ID, Task: t.Clone()}
}

func (s *Service) pendingCopy() *models.UndoAction {
	if s.pending == nil {
		return nil
	}
	action := *s.pending
	action.Task = s.pending.Task.Clone()
	return &action
}

// Pending returns the action Undo would reverse.
func (s *Service) Pending() (models.UndoAction, bool) {
	if s.pending == nil {
		return models.UndoAction{}, false
	}
	return *s.pendingCopy(), true
}

// Undo reverses the most recent mutation and clears the slot:
//   - add: the task is removed
//   - delete: the removed task is appended to the end of the list
//   - complete: the task is marked pending again
//
// The slot is cleared and the list persisted even if the task has since
// disappeared. A second Undo returns NothingToUndo.
func (s *Service) Undo() (UndoOutcome, error) {
	if s.pending == nil {
		return UndoOutcome{Status: NothingToUndo}, nil
	}
	action := *s.pendingCopy()

	switch action.Kind {
	case models.ActionAdd:
		if i := s.IndexOf(action.TaskID); i >= 0 {
			s.tasks = slices.Delete(s.tasks, i, i+1)
		}
	case models.ActionDelete:
		if s.IndexOf(action.TaskID) < 0 {
			s.tasks = append(s.tasks, action.Task.Clone())
		}
	case models.ActionComplete:
		if i := s.IndexOf(action.TaskID); i >= 0 {
			s.tasks[i].Completed = false
		}
	default:
		s.pending = nil
		return UndoOutcome{}, fmt.Errorf("unknown undo action %q", action.Kind)
	}

	s.pending = nil
	s.log.Debug().Str("kind", string(action.Kind)).Str("id", action.TaskID).Msg("undo applied")
	return UndoOutcome{Status: UndoApplied, Action: action}, s.Save()
}

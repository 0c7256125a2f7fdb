// Package task holds the task list core: mutations, single-level undo and export.
package task

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/josephgoksu/todopro/internal/util"
	"github.com/josephgoksu/todopro/models"
	"github.com/josephgoksu/todopro/types"
	"github.com/rs/zerolog"
)

// Repository defines the persistence methods required by the Task Service.
// store.TaskStore satisfies it.
type Repository interface {
	Load() (models.TaskList, error)
	Save(list models.TaskList) error
	Path() string
}

// Service owns the in-memory task list and the pending undo slot.
// Every successful mutation is written through to the repository.
// A Service is not safe for concurrent use.
type Service struct {
	repo    Repository
	tasks   []models.Task
	pending *models.UndoAction
	log     zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug and failure messages.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a new Task Service with an empty list.
// A nil repo keeps everything in memory. Call Load to read persisted state.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		tasks: []models.Task{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddInput is the raw user input for Add. Every field is free text.
type AddInput struct {
	Description string
	Priority    string
	DueDate     string
	Tags        string
}

// Load replaces the in-memory state with the persisted list.
// On failure the service is left empty and the error is returned.
// Records without an ID or priority get defaults; they are written back on
// the next mutation.
func (s *Service) Load() error {
	s.tasks = []models.Task{}
	s.pending = nil
	if s.repo == nil {
		return nil
	}

	list, err := s.repo.Load()
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.repo.Path()).Msg("failed to load tasks")
		return err
	}

	seen := make(map[string]bool, len(list.Tasks))
	for _, t := range list.Tasks {
		if t.ID == "" || seen[t.ID] {
			t.ID = s.newID(seen)
		}
		seen[t.ID] = true
		if t.Priority == "" {
			t.Priority = models.PriorityMedium
		} else if p, err := models.ParsePriority(string(t.Priority)); err == nil {
			t.Priority = p
		}
		if t.Tags == nil {
			t.Tags = []string{}
		}
		if err := models.ValidateStruct(t); err != nil {
			return s.rejectLoad(fmt.Errorf("task %d: %w", len(s.tasks)+1, err))
		}
		s.tasks = append(s.tasks, t)
	}
	if list.PendingUndo != nil {
		action := *list.PendingUndo
		if err := models.ValidateStruct(action); err != nil {
			return s.rejectLoad(fmt.Errorf("pending undo: %w", err))
		}
		s.pending = &action
	}

	s.log.Debug().Int("count", len(s.tasks)).Bool("undo", s.pending != nil).Msg("tasks loaded")
	return nil
}

// rejectLoad empties the service and reports a malformed record as a ParseError.
func (s *Service) rejectLoad(err error) error {
	s.tasks = []models.Task{}
	s.pending = nil
	pErr := &types.ParseError{Path: s.repo.Path(), Err: err}
	s.log.Warn().Err(pErr).Msg("failed to load tasks")
	return pErr
}

// Save writes the current list and undo slot to the repository.
func (s *Service) Save() error {
	if s.repo == nil {
		return nil
	}
	list := models.TaskList{
		Tasks:       s.List(),
		TotalCount:  len(s.tasks),
		PendingUndo: s.pendingCopy(),
	}
	if err := s.repo.Save(list); err != nil {
		s.log.Warn().Err(err).Str("path", s.repo.Path()).Msg("failed to save tasks")
		return err
	}
	return nil
}

// Path reports where tasks are persisted, or "" for an in-memory service.
func (s *Service) Path() string {
	if s.repo == nil {
		return ""
	}
	return s.repo.Path()
}

func (s *Service) newID(seen map[string]bool) string {
	for {
		id := util.NewTaskID()
		if !seen[id] && s.IndexOf(id) < 0 {
			return id
		}
	}
}

// Add validates input, appends a new task and records it for undo.
// Validation failures return *types.ValidationError and change nothing.
// If persisting fails the task stays in the list and is returned with the error.
func (s *Service) Add(in AddInput) (models.Task, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return models.Task{}, types.NewValidationError("description", "task description cannot be empty")
	}
	priority, err := models.ParsePriority(in.Priority)
	if err != nil {
		return models.Task{}, err
	}

	t := models.NewTask(s.newID(nil), desc)
	t.Priority = priority
	if due := strings.TrimSpace(in.DueDate); due != "" {
		t.DueDate = &due
	}
	t.Tags = ParseTags(in.Tags)

	if err := models.ValidateStruct(t); err != nil {
		return models.Task{}, err
	}

	s.tasks = append(s.tasks, t)
	s.record(models.ActionAdd, t)
	s.log.Debug().Str("id", t.ID).Str("priority", string(t.Priority)).Msg("task added")

	return t.Clone(), s.Save()
}

// Complete marks the task at index as completed.
// An out-of-range index is a no-op: ok is false and err is nil.
func (s *Service) Complete(index int) (models.Task, bool, error) {
	if index < 0 || index >= len(s.tasks) {
		return models.Task{}, false, nil
	}
	return s.CompleteTask(s.tasks[index].ID)
}

// CompleteTask marks the task with id as completed. Completing an already
// completed task still persists and still replaces the undo slot.
func (s *Service) CompleteTask(id string) (models.Task, bool, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return models.Task{}, false, nil
	}
	s.tasks[i].Completed = true
	s.record(models.ActionComplete, s.tasks[i])
	s.log.Debug().Str("id", id).Msg("task completed")
	return s.tasks[i].Clone(), true, s.Save()
}

// Delete removes the task at index, keeping the order of the rest.
// An out-of-range index is a no-op.
func (s *Service) Delete(index int) (models.Task, bool, error) {
	if index < 0 || index >= len(s.tasks) {
		return models.Task{}, false, nil
	}
	return s.DeleteTask(s.tasks[index].ID)
}

// DeleteTask removes the task with id.
func (s *Service) DeleteTask(id string) (models.Task, bool, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return models.Task{}, false, nil
	}
	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.record(models.ActionDelete, removed)
	s.log.Debug().Str("id", id).Msg("task deleted")
	return removed.Clone(), true, s.Save()
}

// List returns a copy of all tasks in display order.
func (s *Service) List() []models.Task {
	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks.
func (s *Service) Len() int {
	return len(s.tasks)
}

// Get returns a copy of the task with id.
func (s *Service) Get(id string) (models.Task, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// IndexOf returns the current 0-based position of id, or -1.
func (s *Service) IndexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// ResolveRef turns a user reference into a task ID. A reference is either the
// 1-based position shown in listings, a full task ID, or a unique ID prefix.
func (s *Service) ResolveRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.tasks) {
			return "", fmt.Errorf("task #%d: %w", n, util.ErrNotFound)
		}
		return s.tasks[n-1].ID, nil
	}

	ids := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.ID
	}
	return util.ResolveTaskID(ids, ref)
}

// IsNotFound reports whether err came from an unresolvable reference.
func IsNotFound(err error) bool {
	return errors.Is(err, util.ErrNotFound)
}

// Summary counts tasks by state and priority.
func (s *Service) Summary() types.TaskSummary {
	sum := types.TaskSummary{
		Total:           len(s.tasks),
		TasksByPriority: make(map[string]int, len(models.Priorities)),
		UndoAvailable:   s.pending != nil,
	}
	for _, p := range models.Priorities {
		sum.TasksByPriority[string(p)] = 0
	}
	for _, t := range s.tasks {
		if t.Completed {
			sum.Completed++
		}
		sum.TasksByPriority[string(t.Priority)]++
	}
	sum.Pending = sum.Total - sum.Completed
	return sum
}

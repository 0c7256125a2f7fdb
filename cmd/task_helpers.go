package cmd

import (
	"fmt"

	"github.com/josephgoksu/todopro/internal/config"
	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/internal/ui"
	"github.com/josephgoksu/todopro/store"
	"github.com/josephgoksu/todopro/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	// appFs is the filesystem used for the data file and exports.
	appFs afero.Fs = afero.NewOsFs()
	// isInteractive gates prompts; tests replace it.
	isInteractive = ui.IsInteractive
)

// taskSession couples a loaded Service with the store it writes to.
type taskSession struct {
	*task.Service
	store store.TaskStore
}

// Close releases the store.
func (s *taskSession) Close() {
	if err := s.store.Close(); err != nil {
		log.Warn().Err(err).Msg("close task store")
	}
}

// newTaskSession opens the configured store without loading it.
func newTaskSession() (*taskSession, error) {
	cfg := GetConfig()
	st, err := store.New(appFs, config.DataFilePath(cfg), cfg.Data)
	if err != nil {
		return nil, err
	}
	svc := task.NewService(st, task.WithLogger(log.Logger))
	return &taskSession{Service: svc, store: st}, nil
}

// openTasks opens the configured store and loads the task list.
// A load failure closes the store and is returned as is, so a corrupted
// file is never overwritten by a command.
func openTasks() (*taskSession, error) {
	sess, err := newTaskSession()
	if err != nil {
		return nil, err
	}
	if err := sess.Load(); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// resolveTaskArg turns the optional ref argument into a task ID. Without an
// argument the user picks from a list, which needs a terminal.
func resolveTaskArg(svc *task.Service, args []string, title string, pendingOnly bool) (string, error) {
	if len(args) > 0 {
		id, err := svc.ResolveRef(args[0])
		if err != nil {
			return "", fmt.Errorf("no task matches %q: %w", args[0], err)
		}
		return id, nil
	}
	if !isInteractive() {
		return "", types.NewValidationError("task", "a task number or ID is required when not running in a terminal")
	}
	return ui.SelectTask(title, svc.List(), pendingOnly)
}

// positionOf reports the 1-based list position of id for display.
func positionOf(svc *task.Service, id string) int {
	return svc.IndexOf(id) + 1
}

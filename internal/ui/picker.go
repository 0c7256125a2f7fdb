package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/models"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a prompt or no terminal is attached.
var ErrCancelled = errors.New("selection cancelled")

// ErrNoTasks is returned by SelectTask when there is nothing to choose from.
var ErrNoTasks = errors.New("no tasks to choose from")

// Theme returns the huh theme matching the package colors.
func Theme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorSecondary)
	return t
}

func runField(field huh.Field) error {
	// Without a terminal huh would block forever.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrCancelled
	}
	form := huh.NewForm(huh.NewGroup(field)).WithTheme(Theme())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// TaskOptions builds picker options labelled like plain listings, valued by task ID.
// When pendingOnly is set, completed tasks are left out.
func TaskOptions(tasks []models.Task, pendingOnly bool) []huh.Option[string] {
	var opts []huh.Option[string]
	for i, t := range tasks {
		if pendingOnly && t.Completed {
			continue
		}
		opts = append(opts, huh.NewOption(task.FormatLine(i+1, t), t.ID))
	}
	return opts
}

// SelectTask asks the user to pick one task and returns its ID.
func SelectTask(title string, tasks []models.Task, pendingOnly bool) (string, error) {
	opts := TaskOptions(tasks, pendingOnly)
	if len(opts) == 0 {
		return "", ErrNoTasks
	}

	var selected string
	field := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&selected)
	if err := runField(field); err != nil {
		return "", err
	}
	return selected, nil
}

// Confirm presents a yes/no prompt.
func Confirm(message string, defaultYes bool) (bool, error) {
	confirmed := defaultYes
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)
	if err := runField(field); err != nil {
		return false, err
	}
	return confirmed, nil
}

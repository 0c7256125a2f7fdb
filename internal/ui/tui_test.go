package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m TaskModel, msgs ...tea.Msg) TaskModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(TaskModel)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func seededService(t *testing.T, descs ...string) *task.Service {
	t.Helper()
	svc := task.NewService(nil)
	for _, d := range descs {
		_, err := svc.Add(task.AddInput{Description: d})
		require.NoError(t, err)
	}
	return svc
}

func TestTaskModel_Navigation(t *testing.T) {
	m := NewTaskModel(seededService(t, "one", "two", "three"), TUIOptions{})

	m = send(t, m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the last task")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, runes("k"), runes("k"))
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the first task")
}

func TestTaskModel_AddViaForm(t *testing.T) {
	svc := seededService(t)
	m := NewTaskModel(svc, TUIOptions{})

	m = send(t, m, runes("a"))
	require.Equal(t, ModeAdd, m.Mode())

	m = send(t, m, typeText("write spec")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, typeText("high")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, typeText("work, urgent")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeBrowse, m.Mode())
	assert.NoError(t, m.Err())
	assert.Equal(t, `Added "write spec".`, m.Status())

	tasks := svc.List()
	require.Len(t, tasks, 1)
	assert.Equal(t, "write spec", tasks[0].Description)
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, []string{"work", "urgent"}, tasks[0].Tags)
	assert.False(t, tasks[0].HasDueDate())
}

func TestTaskModel_AddRejectsEmptyDescription(t *testing.T) {
	svc := seededService(t)
	m := NewTaskModel(svc, TUIOptions{})

	m = send(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeAdd, m.Mode(), "form stays open")
	require.Error(t, m.Err())
	assert.Equal(t, 0, svc.Len())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeBrowse, m.Mode())
}

func TestTaskModel_QuitKeyTypesInForm(t *testing.T) {
	m := NewTaskModel(seededService(t), TUIOptions{})
	m = send(t, m, runes("a"))

	m = send(t, m, runes("q"))
	assert.Equal(t, ModeAdd, m.Mode())
	assert.Contains(t, m.View(), "q")
}

func TestTaskModel_CompleteDeleteUndo(t *testing.T) {
	svc := seededService(t, "one", "two")
	m := NewTaskModel(svc, TUIOptions{})

	m = send(t, m, runes("x"))
	assert.True(t, svc.List()[0].Completed)
	assert.Equal(t, `Completed "one".`, m.Status())

	m = send(t, m, runes("u"))
	assert.False(t, svc.List()[0].Completed)
	assert.Equal(t, `Undid complete: "one" is pending again.`, m.Status())

	m = send(t, m, runes("j"), runes("d"))
	require.Equal(t, 1, svc.Len())
	assert.Equal(t, 0, m.Cursor(), "cursor clamps after delete")

	m = send(t, m, runes("u"))
	assert.Equal(t, 2, svc.Len())
	assert.Equal(t, "two", svc.List()[1].Description)

	m = send(t, m, runes("u"))
	assert.Equal(t, "Nothing to undo.", m.Status())
}

func TestTaskModel_ActionsOnEmptyList(t *testing.T) {
	m := NewTaskModel(seededService(t), TUIOptions{})

	m = send(t, m, runes("x"))
	assert.Equal(t, "No task selected.", m.Status())
	m = send(t, m, runes("d"))
	assert.Equal(t, "No task selected.", m.Status())
	assert.Contains(t, m.View(), "No tasks yet")
}

func TestTaskModel_Export(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := seededService(t, "one")
	m := NewTaskModel(svc, TUIOptions{ExportFS: fs, ExportPath: "out/tasks.csv"})

	m = send(t, m, runes("e"))
	assert.Equal(t, "Tasks exported to out/tasks.csv", m.Status())

	data, err := afero.ReadFile(fs, "out/tasks.csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Description,Completed,Priority,Due Date,Tags\n"))
	assert.Contains(t, string(data), "one,False,Medium,,")
}

func TestTaskModel_ExportFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	m := NewTaskModel(seededService(t, "one"), TUIOptions{ExportFS: fs})

	m = send(t, m, runes("e"))
	assert.Error(t, m.Err())
	assert.Empty(t, m.Status())
}

func TestTaskModel_LoadErrorShown(t *testing.T) {
	m := NewTaskModel(seededService(t), TUIOptions{LoadErr: errors.New("bad json")})

	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "failed to load tasks: bad json")

	m = send(t, m, runes("u"))
	assert.NoError(t, m.Err(), "next action clears the error")
}

func TestTaskModel_Quit(t *testing.T) {
	m := NewTaskModel(seededService(t), TUIOptions{})

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTaskModel_ViewListsTasks(t *testing.T) {
	svc := seededService(t, "write spec")
	m := NewTaskModel(svc, TUIOptions{})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "To-Do List")
	assert.Contains(t, view, "1. ☐ write spec [Medium]")
	assert.Contains(t, view, "add task")
}

func TestTaskOptions(t *testing.T) {
	tasks := []models.Task{
		{ID: "task-aaaa1111", Description: "one", Priority: models.PriorityMedium},
		{ID: "task-bbbb2222", Description: "two", Priority: models.PriorityLow, Completed: true},
	}

	all := TaskOptions(tasks, false)
	require.Len(t, all, 2)
	assert.Equal(t, "task-aaaa1111", all[0].Value)
	assert.Equal(t, "1. ☐ one [Medium]", all[0].Key)

	pending := TaskOptions(tasks, true)
	require.Len(t, pending, 1)
	assert.Equal(t, "task-aaaa1111", pending[0].Value)
}

func TestSelectTask_NoTasks(t *testing.T) {
	_, err := SelectTask("Pick", nil, false)
	assert.ErrorIs(t, err, ErrNoTasks)
}

package store

import (
	"path/filepath"
	"testing"

	"github.com/josephgoksu/todopro/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T, path string) *SQLiteTaskStore {
	t.Helper()
	s := NewSQLiteTaskStore()
	require.NoError(t, s.Initialize(map[string]string{DataFileKey: path}))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteTaskStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	s := newSQLiteStore(t, path)

	empty, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.Tasks)

	want := sampleList()
	require.NoError(t, s.Save(want))

	// A fresh connection sees the same data.
	reopened := newSQLiteStore(t, path)
	got, err := reopened.Load()
	require.NoError(t, err)

	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "buy milk", got.Tasks[0].Description)
	assert.Nil(t, got.Tasks[0].DueDate)
	assert.Equal(t, []string{}, got.Tasks[0].Tags)
	assert.Equal(t, "write spec", got.Tasks[1].Description)
	assert.Equal(t, models.PriorityHigh, got.Tasks[1].Priority)
	assert.Equal(t, "2024-01-01", got.Tasks[1].Due())
	assert.Equal(t, []string{"work", "urgent"}, got.Tasks[1].Tags)
	assert.True(t, want.Tasks[1].CreatedAt.Equal(got.Tasks[1].CreatedAt))

	require.NotNil(t, got.PendingUndo)
	assert.Equal(t, models.ActionAdd, got.PendingUndo.Kind)
	assert.Equal(t, "write spec", got.PendingUndo.Task.Description)
}

func TestSQLiteTaskStore_SaveReplacesEverything(t *testing.T) {
	s := newSQLiteStore(t, ":memory:")
	require.NoError(t, s.Save(sampleList()))

	only := models.NewTask("task-0000000c", "walk dog")
	require.NoError(t, s.Save(models.TaskList{Tasks: []models.Task{only}}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "walk dog", got.Tasks[0].Description)
	assert.Nil(t, got.PendingUndo)
}

func TestSQLiteTaskStore_OrderPreserved(t *testing.T) {
	s := newSQLiteStore(t, ":memory:")
	list := models.TaskList{}
	for _, id := range []string{"task-c", "task-a", "task-b"} {
		list.Tasks = append(list.Tasks, models.NewTask(id, id))
	}
	require.NoError(t, s.Save(list))

	got, err := s.Load()
	require.NoError(t, err)
	ids := []string{got.Tasks[0].ID, got.Tasks[1].ID, got.Tasks[2].ID}
	assert.Equal(t, []string{"task-c", "task-a", "task-b"}, ids)
}

package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/store"
	"github.com/josephgoksu/todopro/types"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTools(t *testing.T, fs afero.Fs) *taskTools {
	t.Helper()
	cfg := &types.AppConfig{
		Project: types.ProjectConfig{RootDir: "/data"},
		Data:    types.DataConfig{File: "tasks.json", Format: "json", VerifyChecksum: true},
		Export:  types.ExportConfig{File: "tasks_export.csv", Format: "csv"},
	}
	st, err := store.New(fs, "/data/tasks.json", cfg.Data)
	require.NoError(t, err)
	sess := &taskSession{Service: task.NewService(st), store: st}
	t.Cleanup(sess.Close)
	return &taskTools{sess: sess, cfg: cfg, fs: fs}
}

func resultText(t *testing.T, res *mcpsdk.CallToolResultFor[any]) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	return text.Text
}

func decodeResult[T any](t *testing.T, res *mcpsdk.CallToolResultFor[any]) T {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	return v
}

func TestNewMCPServer_RegistersTools(t *testing.T) {
	tools := newTestTools(t, afero.NewMemMapFs())
	assert.NotPanics(t, func() { _ = newMCPServer(tools) })
}

func TestMCPTools_AddListCompleteUndo(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t, afero.NewMemMapFs())

	res, err := tools.addTask(ctx, nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
		Arguments: types.AddTaskParams{Description: "write spec", Priority: "high", DueDate: "2024-01-01", Tags: "work,urgent"},
	})
	require.NoError(t, err)
	added := decodeResult[types.TaskResponse](t, res)
	assert.Equal(t, 1, added.Position)
	assert.Equal(t, "High", added.Priority)
	assert.Equal(t, []string{"work", "urgent"}, added.Tags)
	require.NotNil(t, added.DueDate)
	assert.Equal(t, "2024-01-01", *added.DueDate)

	res, err = tools.completeTask(ctx, nil, &mcpsdk.CallToolParamsFor[types.TaskRefParams]{
		Arguments: types.TaskRefParams{Ref: added.ID},
	})
	require.NoError(t, err)
	assert.True(t, decodeResult[types.TaskResponse](t, res).Completed)

	res, err = tools.undo(ctx, nil, &mcpsdk.CallToolParamsFor[types.UndoParams]{})
	require.NoError(t, err)
	undo := decodeResult[types.UndoResponse](t, res)
	assert.True(t, undo.Applied)
	assert.Equal(t, "complete", undo.Kind)
	assert.Equal(t, added.ID, undo.TaskID)

	res, err = tools.listTasks(ctx, nil, &mcpsdk.CallToolParamsFor[types.ListTasksParams]{})
	require.NoError(t, err)
	list := decodeResult[types.TaskListResponse](t, res)
	require.Len(t, list.Tasks, 1)
	assert.False(t, list.Tasks[0].Completed)
	assert.Equal(t, 1, list.Summary.Pending)
}

func TestMCPTools_UndoSharedThroughStore(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	first := newTestTools(t, fs)
	res, err := first.addTask(ctx, nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
		Arguments: types.AddTaskParams{Description: "buy milk"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	// A second server over the same file sees the pending undo.
	second := newTestTools(t, fs)
	res, err = second.deleteTask(ctx, nil, &mcpsdk.CallToolParamsFor[types.TaskRefParams]{
		Arguments: types.TaskRefParams{Ref: "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", decodeResult[types.TaskResponse](t, res).Description)

	res, err = first.undo(ctx, nil, &mcpsdk.CallToolParamsFor[types.UndoParams]{})
	require.NoError(t, err)
	undo := decodeResult[types.UndoResponse](t, res)
	assert.Equal(t, "delete", undo.Kind, "first server reloads before acting")

	res, err = first.undo(ctx, nil, &mcpsdk.CallToolParamsFor[types.UndoParams]{})
	require.NoError(t, err)
	assert.Equal(t, "Nothing to undo.", decodeResult[types.UndoResponse](t, res).Message)
}

func TestMCPTools_Errors(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t, afero.NewMemMapFs())

	res, err := tools.addTask(ctx, nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
		Arguments: types.AddTaskParams{Description: "  "},
	})
	require.NoError(t, err, "tool failures are results, not protocol errors")
	assert.True(t, res.IsError)
	var mErr types.MCPError
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &mErr))
	assert.Equal(t, "VALIDATION_ERROR", mErr.Code)
	assert.Equal(t, "description", mErr.Details["field"])

	res, err = tools.completeTask(ctx, nil, &mcpsdk.CallToolParamsFor[types.TaskRefParams]{
		Arguments: types.TaskRefParams{Ref: "3"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "NOT_FOUND")
	assert.Contains(t, resultText(t, res), "no task matches")

	res, err = tools.deleteTask(ctx, nil, &mcpsdk.CallToolParamsFor[types.TaskRefParams]{})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tools.exportTasks(ctx, nil, &mcpsdk.CallToolParamsFor[types.ExportParams]{
		Arguments: types.ExportParams{Format: "xml"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMCPTools_Export(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	tools := newTestTools(t, fs)

	_, err := tools.addTask(ctx, nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
		Arguments: types.AddTaskParams{Description: "a"},
	})
	require.NoError(t, err)

	res, err := tools.exportTasks(ctx, nil, &mcpsdk.CallToolParamsFor[types.ExportParams]{})
	require.NoError(t, err)
	exp := decodeResult[types.ExportResponse](t, res)
	assert.Equal(t, "/data/tasks_export.csv", exp.Path)
	assert.Equal(t, "csv", exp.Format)
	assert.Equal(t, 1, exp.Count)

	data, err := afero.ReadFile(fs, "/data/tasks_export.csv")
	require.NoError(t, err)
	assert.Equal(t, "Description,Completed,Priority,Due Date,Tags\na,False,Medium,,\n", string(data))

	res, err = tools.exportTasks(ctx, nil, &mcpsdk.CallToolParamsFor[types.ExportParams]{
		Arguments: types.ExportParams{Output: "/out/tasks.yaml"},
	})
	require.NoError(t, err)
	assert.Equal(t, "yaml", decodeResult[types.ExportResponse](t, res).Format)
}

func TestMCPTools_InvalidRecordIsParseError(t *testing.T) {
	fs := afero.NewMemMapFs()
	tools := newTestTools(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/data/tasks.json", []byte(`[{"description": "a", "priority": "Urgent"}]`), 0o644))

	res, err := tools.listTasks(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.ListTasksParams]{})
	require.NoError(t, err)
	require.True(t, res.IsError)
	var mErr types.MCPError
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &mErr))
	assert.Equal(t, "PARSE_ERROR", mErr.Code)
	assert.Equal(t, "/data/tasks.json", mErr.Details["path"])
}

package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_DefaultCSV(t *testing.T) {
	dir := setupCLI(t)
	_, err := runCLI(t, "add", "write spec", "-p", "high", "-d", "2024-01-01", "-t", "work,urgent")
	require.NoError(t, err)
	_, err = runCLI(t, "add", "buy milk")
	require.NoError(t, err)
	_, err = runCLI(t, "done", "2")
	require.NoError(t, err)

	out, err := runCLI(t, "export")
	require.NoError(t, err)
	path := filepath.Join(dir, "tasks_export.csv")
	assert.Contains(t, out, "Tasks exported to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Description,Completed,Priority,Due Date,Tags\n"+
			"write spec,False,High,2024-01-01,\"work,urgent\"\n"+
			"buy milk,True,Medium,,\n",
		string(data))
}

func TestExport_FormatFromExtensionAndStdout(t *testing.T) {
	dir := setupCLI(t)
	_, err := runCLI(t, "add", "a")
	require.NoError(t, err)

	jsonPath := filepath.Join(dir, "out", "tasks.json")
	_, err = runCLI(t, "export", "-o", jsonPath)
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0]["description"])
	assert.Nil(t, records[0]["due_date"])

	out, err := runCLI(t, "export", "-o", "-", "-f", "CSV")
	require.NoError(t, err)
	assert.Equal(t, "Description,Completed,Priority,Due Date,Tags\na,False,Medium,,\n", out)
}

func TestExport_InvalidFormat(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "export", "-f", "xml")
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "format", vErr.Field)
}

func TestResolveExportFormat(t *testing.T) {
	tests := []struct {
		flag, output, configured string
		want                     task.ExportFormat
	}{
		{"", "", "csv", task.ExportCSV},
		{"", "", "json", task.ExportJSON},
		{"yaml", "x.json", "csv", task.ExportYAML},
		{"", "x.yml", "csv", task.ExportYAML},
		{"", "x.txt", "json", task.ExportJSON},
		{"", "-", "json", task.ExportJSON},
	}
	for _, tt := range tests {
		got, err := resolveExportFormat(tt.flag, tt.output, tt.configured)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "flag=%q output=%q configured=%q", tt.flag, tt.output, tt.configured)
	}
}

func TestWatchTasks_PrintsOnChange(t *testing.T) {
	dir := setupCLI(t)
	_, err := runCLI(t, "add", "first")
	require.NoError(t, err)

	path := filepath.Join(dir, "tasks.json")
	var out, status syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchTasks(ctx, path, &out, &status, 20*time.Millisecond) }()

	// The watcher is registered once the status line is printed.
	require.Eventually(t, func() bool {
		return strings.Contains(status.String(), "Watching")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "1. ☐ first [Medium]")

	// Change the file from "another process".
	sess, err := openTasks()
	require.NoError(t, err)
	_, err = sess.Add(task.AddInput{Description: "second"})
	require.NoError(t, err)
	sess.Close()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "2. ☐ second [Medium]")
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

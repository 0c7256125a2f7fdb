/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/josephgoksu/todopro/internal/config"
	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/internal/util"
	"github.com/josephgoksu/todopro/types"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the task list",
	Long: `Start a Model Context Protocol (MCP) server on stdio so AI assistants
can add, list, complete, delete, undo and export tasks.

The server reads the task file before every call, so changes made with the
CLI in the meantime are visible, and the undo slot is shared with the CLI.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// taskTools implements the MCP tool handlers. Calls are serialized because
// task.Service is not safe for concurrent use.
type taskTools struct {
	mu   sync.Mutex
	sess *taskSession
	cfg  *types.AppConfig
	fs   afero.Fs
}

func runMCPServer(ctx context.Context) error {
	// NOTE: MCP uses stdio transport. stdout MUST be pure JSON-RPC.
	// Logging already goes to stderr.
	sess, err := newTaskSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	tools := &taskTools{sess: sess, cfg: GetConfig(), fs: appFs}
	server := newMCPServer(tools)

	log.Info().Str("path", sess.Path()).Msg("MCP server starting")
	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func newMCPServer(tools *taskTools) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "todopro-mcp",
		Version: version,
	}
	server := mcpsdk.NewServer(impl, &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			log.Info().Msg("MCP connection established")
		},
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add-task",
		Description: "Add a task to the end of the list. Priority is low, medium or high; tags are comma-separated.",
	}, tools.addTask)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list-tasks",
		Description: "List tasks in stored order with their 1-based positions, IDs and a summary.",
	}, tools.listTasks)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "complete-task",
		Description: "Mark a task as completed. ref is a position, task ID or unique ID prefix.",
	}, tools.completeTask)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "delete-task",
		Description: "Delete a task. ref is a position, task ID or unique ID prefix. Undo restores it at the end of the list.",
	}, tools.deleteTask)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "undo",
		Description: "Reverse the most recent add, complete or delete. Only one level is kept.",
	}, tools.undo)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "export-tasks",
		Description: "Export all tasks to a CSV, JSON or YAML file on the server's filesystem.",
	}, tools.exportTasks)

	return server
}

// load refreshes the service from disk. The caller holds t.mu.
func (t *taskTools) load() error {
	return t.sess.Load()
}

func (t *taskTools) addTask(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.AddTaskParams]) (*mcpsdk.CallToolResultFor[any], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.load(); err != nil {
		return mcpErrorResponse(err)
	}

	args := params.Arguments
	added, err := t.sess.Add(task.AddInput{
		Description: args.Description,
		Priority:    args.Priority,
		DueDate:     args.DueDate,
		Tags:        args.Tags,
	})
	if err != nil {
		return mcpErrorResponse(err)
	}
	return mcpJSONResponse(taskResponse(positionOf(t.sess.Service, added.ID), added))
}

func (t *taskTools) listTasks(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListTasksParams]) (*mcpsdk.CallToolResultFor[any], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.load(); err != nil {
		return mcpErrorResponse(err)
	}

	pendingOnly := params.Arguments.IncludeCompleted != nil && !*params.Arguments.IncludeCompleted
	return mcpJSONResponse(types.TaskListResponse{
		Tasks:   taskResponses(t.sess.List(), pendingOnly),
		Summary: t.sess.Summary(),
	})
}

func (t *taskTools) completeTask(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.TaskRefParams]) (*mcpsdk.CallToolResultFor[any], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.load(); err != nil {
		return mcpErrorResponse(err)
	}

	id, err := t.resolve(params.Arguments.Ref)
	if err != nil {
		return mcpErrorResponse(err)
	}
	done, _, err := t.sess.CompleteTask(id)
	if err != nil {
		return mcpErrorResponse(err)
	}
	return mcpJSONResponse(taskResponse(positionOf(t.sess.Service, id), done))
}

func (t *taskTools) deleteTask(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.TaskRefParams]) (*mcpsdk.CallToolResultFor[any], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.load(); err != nil {
		return mcpErrorResponse(err)
	}

	id, err := t.resolve(params.Arguments.Ref)
	if err != nil {
		return mcpErrorResponse(err)
	}
	position := positionOf(t.sess.Service, id)
	removed, _, err := t.sess.DeleteTask(id)
	if err != nil {
		return mcpErrorResponse(err)
	}
	return mcpJSONResponse(taskResponse(position, removed))
}

func (t *taskTools) undo(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.UndoParams]) (*mcpsdk.CallToolResultFor[any], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.load(); err != nil {
		return mcpErrorResponse(err)
	}

	outcome, err := t.sess.Undo()
	if err != nil {
		return mcpErrorResponse(err)
	}
	resp := types.UndoResponse{Applied: outcome.Applied(), Message: outcome.Message()}
	if outcome.Applied() {
		resp.Kind = string(outcome.Action.Kind)
		resp.TaskID = outcome.Action.TaskID
	}
	return mcpJSONResponse(resp)
}

func (t *taskTools) exportTasks(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ExportParams]) (*mcpsdk.CallToolResultFor[any], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.load(); err != nil {
		return mcpErrorResponse(err)
	}

	args := params.Arguments
	format, err := resolveExportFormat(args.Format, args.Output, t.cfg.Export.Format)
	if err != nil {
		return mcpErrorResponse(err)
	}
	path := config.ExportFilePath(t.cfg, args.Output)
	if err := t.sess.ExportFile(t.fs, path, format); err != nil {
		return mcpErrorResponse(err)
	}
	return mcpJSONResponse(types.ExportResponse{Path: path, Format: string(format), Count: t.sess.Len()})
}

func (t *taskTools) resolve(ref string) (string, error) {
	if ref == "" {
		return "", types.NewValidationError("ref", "ref is required")
	}
	id, err := t.sess.ResolveRef(ref)
	if err != nil {
		return "", fmt.Errorf("no task matches %q: %w", ref, err)
	}
	return id, nil
}

// mcpJSONResponse wraps a value as indented JSON text content.
func mcpJSONResponse(v any) (*mcpsdk.CallToolResultFor[any], error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcpErrorResponse(fmt.Errorf("encode response: %w", err))
	}
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// mcpErrorResponse wraps an error in an MCP tool result with IsError=true.
// Tool failures are reported to the client rather than as protocol errors.
func mcpErrorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	text := err.Error()
	if data, mErr := json.MarshalIndent(toMCPError(err), "", "  "); mErr == nil {
		text = string(data)
	}
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
		IsError: true,
	}, nil
}

// toMCPError classifies err into a stable code for clients.
func toMCPError(err error) *types.MCPError {
	var (
		vErr  *types.ValidationError
		pErr  *types.ParseError
		ioErr *types.IOError
	)
	switch {
	case errors.As(err, &pErr):
		return types.NewMCPError("PARSE_ERROR", userMessage(err), map[string]interface{}{"path": pErr.Path})
	case errors.As(err, &vErr):
		return types.NewMCPError("VALIDATION_ERROR", vErr.Message, map[string]interface{}{"field": vErr.Field})
	case errors.As(err, &ioErr):
		return types.NewMCPError("IO_ERROR", userMessage(err), map[string]interface{}{"path": ioErr.Path, "op": ioErr.Op})
	case errors.Is(err, util.ErrAmbiguousID):
		return types.NewMCPError("AMBIGUOUS_REF", err.Error(), nil)
	case errors.Is(err, util.ErrNotFound):
		return types.NewMCPError("NOT_FOUND", err.Error(), nil)
	default:
		return types.NewMCPError("INTERNAL_ERROR", err.Error(), nil)
	}
}

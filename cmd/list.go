/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/internal/ui"
	"github.com/josephgoksu/todopro/models"
	"github.com/josephgoksu/todopro/types"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all tasks",
	Long: `List all tasks in stored order. The # column is the position accepted
by done and delete.

Use --plain for one line per task, --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listJSON    bool
	listIDs     bool
	listPlain   bool
	listPending bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")
	listCmd.Flags().BoolVar(&listIDs, "ids", false, "show task IDs")
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "one line per task, no table")
	listCmd.Flags().BoolVar(&listPending, "pending", false, "hide completed tasks")
	listCmd.MarkFlagsMutuallyExclusive("json", "plain")
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := openTasks()
	if err != nil {
		return err
	}
	defer sess.Close()

	all := sess.List()
	out := cmd.OutOrStdout()

	if listJSON {
		resp := types.TaskListResponse{Tasks: taskResponses(all, listPending), Summary: sess.Summary()}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if len(all) == 0 {
		fmt.Fprintln(out, "No tasks yet. Add one with: todopro add <description>")
		return nil
	}

	if listPlain {
		for i, t := range all {
			if listPending && t.Completed {
				continue
			}
			fmt.Fprintln(out, task.FormatLine(i+1, t))
		}
		return nil
	}

	// Positions must stay those of the full list.
	table := ui.TaskTable(all, listIDs)
	if listPending {
		rows := table.Rows[:0]
		for i, row := range table.Rows {
			if !all[i].Completed {
				rows = append(rows, row)
			}
		}
		table.Rows = rows
	}
	fmt.Fprint(out, table.Render())
	if !isQuiet() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.RenderSummary(sess.Summary()))
	}
	return nil
}

// taskResponses converts tasks to their wire form, keeping list positions.
func taskResponses(tasks []models.Task, pendingOnly bool) []types.TaskResponse {
	resp := make([]types.TaskResponse, 0, len(tasks))
	for i, t := range tasks {
		if pendingOnly && t.Completed {
			continue
		}
		resp = append(resp, taskResponse(i+1, t))
	}
	return resp
}

func taskResponse(position int, t models.Task) types.TaskResponse {
	return types.TaskResponse{
		ID:          t.ID,
		Position:    position,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Tags:        t.Tags,
	}
}

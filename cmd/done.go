/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/todopro/internal/task"
	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [ref]",
	Aliases: []string{"complete", "d"},
	Short:   "Mark a task as completed",
	Long: `Mark a task as completed.

ref is the position shown by 'todopro list', a task ID or a unique ID prefix.
Without ref, pick a pending task interactively.

Examples:
  todopro done 2
  todopro done task-3f2a`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	sess, err := openTasks()
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := resolveTaskArg(sess.Service, args, "Which task is done?", true)
	if err != nil {
		return err
	}

	done, _, err := sess.CompleteTask(id)
	if err != nil {
		return err
	}

	printInfo(cmd, "✓ Completed %s", task.FormatLine(positionOf(sess.Service, id), done))
	return nil
}

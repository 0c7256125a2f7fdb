/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/todopro/internal/ui"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [ref]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task from the list.

ref is the position shown by 'todopro list', a task ID or a unique ID prefix.
Without ref, pick a task interactively. On a terminal you are asked to
confirm unless --yes is given. 'todopro undo' restores the task at the end
of the list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	sess, err := openTasks()
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := resolveTaskArg(sess.Service, args, "Which task should be deleted?", false)
	if err != nil {
		return err
	}

	if !deleteYes && isInteractive() {
		t, _ := sess.Get(id)
		ok, err := ui.Confirm(fmt.Sprintf("Delete %q?", t.Description), true)
		if err != nil {
			return err
		}
		if !ok {
			printInfo(cmd, "Nothing deleted.")
			return nil
		}
	}

	removed, _, err := sess.DeleteTask(id)
	if err != nil {
		return err
	}

	printInfo(cmd, "✓ Deleted %q. Run 'todopro undo' to restore it.", removed.Description)
	return nil
}

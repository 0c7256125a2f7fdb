/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// undoCmd represents the undo command
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Reverse the last add, complete or delete",
	Long: `Reverse the most recent change. Only one level of undo is kept:
a second undo reports that there is nothing to undo.

An undone add removes the task. An undone delete puts the task back at the
end of the list. An undone completion marks the task pending again.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	sess, err := openTasks()
	if err != nil {
		return err
	}
	defer sess.Close()

	outcome, err := sess.Undo()
	if err != nil {
		return err
	}

	if outcome.Applied() {
		printInfo(cmd, "↶ %s", outcome.Message())
	} else {
		printInfo(cmd, "%s", outcome.Message())
	}
	return nil
}

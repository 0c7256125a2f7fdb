/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"strings"

	"github.com/josephgoksu/todopro/internal/task"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <description...>",
	Short: "Add a task to the list",
	Long: `Add a task to the end of the list.

The description is every argument joined by spaces. Priority is one of
Low, Medium or High (any case, default Medium). The due date is free text.
Tags are comma-separated; blank entries are dropped.

Examples:
  todopro add buy milk
  todopro add "write spec" -p high -d 2024-01-01 -t work,urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addPriority string
	addDueDate  string
	addTags     string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority: low, medium or high (default medium)")
	addCmd.Flags().StringVarP(&addDueDate, "due", "d", "", "due date, e.g. 2024-01-01")
	addCmd.Flags().StringVarP(&addTags, "tags", "t", "", "comma-separated tags")
}

func runAdd(cmd *cobra.Command, args []string) error {
	sess, err := openTasks()
	if err != nil {
		return err
	}
	defer sess.Close()

	added, err := sess.Add(task.AddInput{
		Description: strings.Join(args, " "),
		Priority:    addPriority,
		DueDate:     addDueDate,
		Tags:        addTags,
	})
	if err != nil {
		return err
	}

	printInfo(cmd, "✓ Added %s", task.FormatLine(positionOf(sess.Service, added.ID), added))
	return nil
}

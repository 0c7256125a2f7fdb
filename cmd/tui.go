/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/todopro/internal/config"
	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/internal/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Open the interactive task list",
	Long: `Open a full-screen task list.

Keys: a add, space/x complete, d delete, u undo, e export, ? help, q quit.
In the add form, tab moves between description, priority, due date and tags;
enter saves and esc cancels. Every change is saved immediately.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return fmt.Errorf("the interactive list needs a terminal; use 'todopro list' instead")
	}

	sess, err := newTaskSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	// A failed load is shown in the UI, which then starts from an empty list.
	loadErr := sess.Load()
	if loadErr != nil {
		log.Warn().Err(loadErr).Str("path", sess.Path()).Msg("starting with an empty list")
	}

	cfg := GetConfig()
	format, err := task.ParseExportFormat(cfg.Export.Format)
	if err != nil {
		return err
	}
	return ui.RunTUI(sess.Service, ui.TUIOptions{
		ExportFS:     appFs,
		ExportPath:   config.ExportFilePath(cfg, ""),
		ExportFormat: format,
		LoadErr:      loadErr,
	})
}

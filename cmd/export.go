/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/todopro/internal/config"
	"github.com/josephgoksu/todopro/internal/task"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks to a CSV, JSON or YAML file",
	Long: `Write every task to a file, replacing it if it exists.

CSV (the default) has the header Description,Completed,Priority,Due Date,Tags
with Completed written as True or False and tags joined by commas.
The format is taken from --format, then from the output file extension,
then from export.format in the config.

Examples:
  todopro export
  todopro export -o backup.json
  todopro export -o - -f csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportOutput string
	exportFormat string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "destination file, - for stdout (default from config, tasks_export.csv)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "csv, json or yaml")
}

func runExport(cmd *cobra.Command, args []string) error {
	sess, err := openTasks()
	if err != nil {
		return err
	}
	defer sess.Close()

	cfg := GetConfig()
	format, err := resolveExportFormat(exportFormat, exportOutput, cfg.Export.Format)
	if err != nil {
		return err
	}

	if exportOutput == "-" {
		return sess.Export(cmd.OutOrStdout(), format)
	}

	path := config.ExportFilePath(cfg, exportOutput)
	if err := sess.ExportFile(appFs, path, format); err != nil {
		return err
	}
	printInfo(cmd, "✓ Tasks exported to %s", path)
	return nil
}

// resolveExportFormat picks the export format from the flag, the output
// extension or the configured default, in that order.
func resolveExportFormat(flag, output, configured string) (task.ExportFormat, error) {
	if flag != "" {
		return task.ParseExportFormat(flag)
	}
	fallback, err := task.ParseExportFormat(configured)
	if err != nil {
		return "", err
	}
	if output == "" || output == "-" {
		return fallback, nil
	}
	return task.FormatFromPath(output, fallback), nil
}

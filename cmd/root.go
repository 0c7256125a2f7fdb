/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/todopro/internal/config"
	"github.com/josephgoksu/todopro/internal/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging and technical error output.
	verbose bool
	// quiet suppresses informational output.
	quiet bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todopro",
	Short: "todopro - a small task list with undo",
	Long: `todopro keeps a single task list in a local file.

Add tasks with a priority, due date and tags, mark them done, delete them,
and take back the last change with undo. Tasks can be exported to CSV.

Examples:
  todopro add "write spec" -p high -d 2024-01-01 -t work,urgent
  todopro list
  todopro done 1
  todopro undo
  todopro export -o tasks.csv`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.CloseLogFile()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()

	if err := execute(); err != nil {
		HandleFatalError(userMessage(err), err)
	}
}

// execute runs the root command. PersistentPostRun is skipped when a command
// fails, so the log file is closed here too.
func execute() error {
	defer logger.CloseLogFile()
	return rootCmd.Execute()
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (setupRuntime -> InitConfig -> rootCmd).
	rootCmd.PersistentPreRunE = setupRuntime
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.todopro/.todopro.yaml, $HOME/.todopro.yaml or ./.todopro.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print errors and requested data")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// setupRuntime loads configuration and starts logging before any command runs.
func setupRuntime(cmd *cobra.Command, args []string) error {
	if err := InitConfig(); err != nil {
		return err
	}
	cfg := GetConfig()

	logPath, err := config.LogFilePath(cfg.Log)
	if err != nil {
		logPath = ""
	}
	_, logErr := logger.Init(logger.Options{
		Verbose:    cfg.Verbose,
		Quiet:      cfg.Quiet,
		File:       logPath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if logErr != nil {
		log.Warn().Err(logErr).Msg("file logging disabled")
	}

	if dir, err := config.GetGlobalConfigDir(); err == nil {
		logger.SetCrashDir(filepath.Join(dir, config.CrashLogsDir))
	}
	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())
	logger.SetLastInput(strings.Join(os.Args[1:], " "))

	log.Debug().
		Str("command", cmd.CommandPath()).
		Str("data", config.DataFilePath(cfg)).
		Str("format", cfg.Data.Format).
		Msg("starting")
	return nil
}

// isQuiet reports whether informational output should be suppressed.
func isQuiet() bool {
	return GetConfig().Quiet
}

// printInfo writes a success or status line unless --quiet is set.
func printInfo(cmd *cobra.Command, format string, a ...any) {
	if isQuiet() {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", a...)
}

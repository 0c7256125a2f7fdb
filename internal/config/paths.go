// Package config resolves where todopro keeps its files.
package config

import (
	"os"
	"path/filepath"

	"github.com/josephgoksu/todopro/types"
)

const (
	// HomeEnv overrides the global directory.
	HomeEnv = "TODOPRO_HOME"
	// LogsDir is the log directory inside the global directory.
	LogsDir = "logs"
	// LogFileName is the rotating log file name.
	LogFileName = "todopro.log"
	// CrashLogsDir is where panic reports go inside the global directory.
	CrashLogsDir = "crash_logs"
)

// GetGlobalConfigDir returns the path to the global directory (~/.todopro).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todopro"), nil
}

// LogFilePath returns the log file from cfg, or the default under the global directory.
func LogFilePath(cfg types.LogConfig) (string, error) {
	if cfg.File != "" {
		return cfg.File, nil
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogsDir, LogFileName), nil
}

// DataFilePath joins the project root and the data file unless the file is absolute.
func DataFilePath(cfg *types.AppConfig) string {
	return resolve(cfg.Project.RootDir, cfg.Data.File, "tasks.json")
}

// ExportFilePath resolves the export target. An explicit override wins and is
// taken relative to the working directory, like any command line path.
func ExportFilePath(cfg *types.AppConfig, override string) string {
	if override != "" {
		return override
	}
	return resolve(cfg.Project.RootDir, cfg.Export.File, "tasks_export.csv")
}

func resolve(root, file, fallback string) string {
	if file == "" {
		file = fallback
	}
	if filepath.IsAbs(file) || root == "" || root == "." {
		return file
	}
	return filepath.Join(root, file)
}

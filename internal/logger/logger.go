// Package logger configures structured logging and crash reporting for todopro.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls Init.
type Options struct {
	Verbose bool
	Quiet   bool

	// File is the rotating log file. Empty disables file logging.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Console overrides the console destination (stderr by default).
	Console io.Writer
}

// logFileWriter holds the log file writer for cleanup purposes.
var logFileWriter io.WriteCloser

// Init creates the process logger and installs it as zerolog's global logger.
//
// Log levels are set as follows:
//   - Verbose: Debug level
//   - Quiet: Warn level
//   - default: Info level
//
// If the log file cannot be opened, logging continues on the console only
// and the error is returned for the caller to report.
func Init(opts Options) (zerolog.Logger, error) {
	console := opts.Console
	if console == nil {
		console = selectOutput()
	}

	writer := console
	var fileErr error
	if opts.File != "" {
		fw, err := createLogFileWriter(opts)
		if err != nil {
			fileErr = err
		} else {
			CloseLogFile()
			logFileWriter = fw
			writer = zerolog.MultiLevelWriter(console, fw)
		}
	}

	l := zerolog.New(writer).Level(selectLevel(opts.Verbose, opts.Quiet)).With().Timestamp().Logger()
	log.Logger = l
	return l, fileErr
}

// CloseLogFile closes the log file writer if it was opened.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// FileOpen reports whether a log file is currently attached.
func FileOpen() bool {
	return logFileWriter != nil
}

// selectLevel determines the log level from flags. Verbose beats quiet.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks a console writer on a TTY and JSON lines otherwise.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

func createLogFileWriter(opts Options) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}, nil
}

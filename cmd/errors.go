package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/todopro/internal/ui"
	"github.com/josephgoksu/todopro/internal/util"
	"github.com/josephgoksu/todopro/types"
	"github.com/spf13/viper"
)

// Exit codes returned by the CLI.
const (
	exitFailure    = 1
	exitValidation = 2
)

// osExit is swapped out in tests.
var osExit = os.Exit

// errOut is where error messages go.
var errOut io.Writer = os.Stderr

// HandleFatalError handles unrecoverable errors that should terminate the application.
// Validation errors exit with status 2, everything else with 1.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	osExit(exitCode(technicalErr))
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintf(errOut, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(errOut, ui.StyleError.Render("✗ "+userMsg))
	}
}

// A ParseError may wrap the ValidationError of the record that failed, which
// is still a failure of the file, not of the user's input.
func exitCode(err error) int {
	var (
		vErr *types.ValidationError
		pErr *types.ParseError
	)
	if errors.As(err, &vErr) && !errors.As(err, &pErr) {
		return exitValidation
	}
	return exitFailure
}

// userMessage turns an error into a short sentence for the terminal.
func userMessage(err error) string {
	var (
		vErr  *types.ValidationError
		pErr  *types.ParseError
		ioErr *types.IOError
	)
	switch {
	case errors.As(err, &pErr):
		return fmt.Sprintf("The task file %s is corrupted and was not changed. Fix or remove it and try again.", pErr.Path)
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.As(err, &ioErr):
		return fmt.Sprintf("Could not %s %s: %v", ioErr.Op, ioErr.Path, errors.Unwrap(ioErr))
	case errors.Is(err, util.ErrAmbiguousID), errors.Is(err, util.ErrNotFound):
		return err.Error()
	case errors.Is(err, ui.ErrCancelled):
		return "Cancelled."
	case errors.Is(err, ui.ErrNoTasks):
		return "No tasks yet. Add one with: todopro add <description>"
	default:
		return err.Error()
	}
}

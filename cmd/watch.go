/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/internal/ui"
	"github.com/josephgoksu/todopro/internal/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the list again whenever the task file changes",
	Long: `Watch the task file and print the list every time another todopro
process (or an editor) changes it. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := newTaskSession()
	if err != nil {
		return err
	}
	path := sess.Path()
	sess.Close()

	return watchTasks(ctx, path, cmd.OutOrStdout(), cmd.ErrOrStderr(), watch.DefaultDelay)
}

// watchTasks prints the list once, then again after every settled change to
// path, until ctx is cancelled.
func watchTasks(ctx context.Context, path string, out, status io.Writer, delay time.Duration) error {
	printSnapshot(out, path)

	w, err := watch.New(path, func() { printSnapshot(out, path) },
		watch.WithDelay(delay),
		watch.WithLogger(log.Logger))
	if err != nil {
		return err
	}
	if !isQuiet() {
		fmt.Fprintln(status, ui.StyleSubtle.Render("Watching "+w.Path()+" (Ctrl+C to stop)"))
	}
	return w.Run(ctx)
}

// printSnapshot reloads the list from disk and prints it. Each call opens its
// own store so the lock is never held between changes.
func printSnapshot(out io.Writer, path string) {
	sess, err := openTasks()
	if err != nil {
		fmt.Fprintln(out, ui.StyleError.Render("✗ "+userMessage(err)))
		return
	}
	defer sess.Close()

	fmt.Fprintln(out, ui.StyleSubtle.Render(time.Now().Format("15:04:05")+" "+path))
	fmt.Fprintln(out, task.FormatList(sess.List()))
	fmt.Fprintln(out, ui.RenderSummary(sess.Summary()))
	fmt.Fprintln(out)
}

package cmd

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"github.com/josephgoksu/todopro/internal/logger"
	"github.com/josephgoksu/todopro/internal/ui"
	"github.com/josephgoksu/todopro/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// setupCLI points config, logs and data at a fresh temp dir and returns it.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TODOPRO_HOME", filepath.Join(dir, "global"))
	t.Setenv("TODOPRO_PROJECT_ROOTDIR", dir)

	viper.Reset()
	resetFlags(rootCmd)
	GlobalAppConfig = types.AppConfig{}
	isInteractive = func() bool { return false }

	t.Cleanup(func() {
		isInteractive = ui.IsInteractive
		logger.CloseLogFile()
		viper.Reset()
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return dir
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command in-process and returns everything it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// syncBuffer is a bytes.Buffer safe for one writer goroutine and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

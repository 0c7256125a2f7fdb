package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxCrashLogs is the maximum number of crash logs to keep.
const MaxCrashLogs = 10

// crashContext stores what we know about the running command.
type crashContext struct {
	mu        sync.RWMutex
	command   string
	version   string
	dir       string
	lastInput string
}

var globalContext = &crashContext{}

// exit is swapped out in tests.
var exit = os.Exit

// SetCrashDir sets the directory crash logs are written to.
func SetCrashDir(dir string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.dir = dir
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetLastInput records the last user input, truncated to 500 bytes.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	input = strings.TrimSpace(input)
	if len(input) > 500 {
		input = input[:500] + "... [truncated]"
	}
	globalContext.lastInput = input
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	PanicValue string
	StackTrace string
	LastInput  string
	GoVersion  string
	OS         string
	Arch       string
}

// HandlePanic is a deferred function that recovers from panics, writes a
// crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	crash := newCrashLog(r)
	path, err := writeCrashLog(crash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, crash.StackTrace)
	} else {
		log.Error().Str("crash_log", path).Str("panic", crash.PanicValue).Msg("todopro crashed")
		reportCrash(os.Stderr, path)
	}
	exit(1)
}

func reportCrash(w io.Writer, path string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "todopro hit an unexpected error.")
	fmt.Fprintf(w, "A crash log has been saved to:\n  %s\n\n", path)
}

func newCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  globalContext.lastInput,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func crashDir() string {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	if globalContext.dir == "" {
		return filepath.Join(".todopro", "crash_logs")
	}
	return globalContext.dir
}

// writeCrashLog writes crash to the crash directory and prunes old logs.
func writeCrashLog(crash CrashLog) (string, error) {
	dir := crashDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("crash_%s.log", crash.Timestamp.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(formatCrashLog(crash)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}

	if err := pruneCrashLogs(dir, MaxCrashLogs); err != nil {
		log.Warn().Err(err).Msg("failed to prune old crash logs")
	}
	return path, nil
}

func formatCrashLog(crash CrashLog) string {
	rule := strings.Repeat("-", 80)
	var sb strings.Builder

	sb.WriteString("TODOPRO CRASH LOG\n")
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", crash.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", crash.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", crash.Command)
	fmt.Fprintf(&sb, "Go:        %s\n", crash.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", crash.OS, crash.Arch)
	if crash.LastInput != "" {
		fmt.Fprintf(&sb, "Input:     %s\n", crash.LastInput)
	}
	sb.WriteString(rule + "\n")
	sb.WriteString("panic: " + crash.PanicValue + "\n\n")
	sb.WriteString(crash.StackTrace)
	return sb.String()
}

// ListCrashLogs returns crash log paths, oldest first.
func ListCrashLogs() ([]string, error) {
	return listCrashLogs(crashDir())
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(logs)
	return logs, nil
}

// pruneCrashLogs keeps only the keep most recent crash logs in dir.
// File names embed the timestamp, so name order is age order.
func pruneCrashLogs(dir string, keep int) error {
	logs, err := listCrashLogs(dir)
	if err != nil || len(logs) <= keep {
		return err
	}
	for _, path := range logs[:len(logs)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

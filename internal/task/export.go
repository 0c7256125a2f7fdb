package task

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/todopro/models"
	"github.com/josephgoksu/todopro/types"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// ExportFormat selects the layout of an export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

// DefaultExportFile is where exports go when no path is configured.
const DefaultExportFile = "tasks_export.csv"

// CSVHeader is the fixed first row of a CSV export.
var CSVHeader = []string{"Description", "Completed", "Priority", "Due Date", "Tags"}

// ParseExportFormat accepts csv, json or yaml in any case. Empty means csv.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return ExportCSV, nil
	case ExportCSV, ExportJSON, ExportYAML:
		return f, nil
	default:
		return "", types.NewValidationError("format", fmt.Sprintf("unsupported export format %q, use csv, json or yaml", s))
	}
}

// FormatFromPath guesses the export format from a file extension, falling
// back to fallback.
func FormatFromPath(path string, fallback ExportFormat) ExportFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ExportCSV
	case ".json":
		return ExportJSON
	case ".yaml", ".yml":
		return ExportYAML
	default:
		return fallback
	}
}

// Export writes the current tasks to w. It never changes the list.
// Write failures are returned as *types.IOError.
func (s *Service) Export(w io.Writer, format ExportFormat) error {
	return writeExport(w, "", s.tasks, format)
}

// ExportFile writes the current tasks to path on fs, replacing any existing file.
func (s *Service) ExportFile(fs afero.Fs, path string, format ExportFormat) error {
	if path == "" {
		path = DefaultExportFile
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return &types.IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	// Write beside the target and rename so a failed export leaves the old file intact.
	tmpPath := path + ".tmp"
	f, err := fs.Create(tmpPath)
	if err != nil {
		return &types.IOError{Op: "create", Path: path, Err: err}
	}
	if err := writeExport(f, path, s.tasks, format); err != nil {
		_ = f.Close()
		_ = fs.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		_ = fs.Remove(tmpPath)
		return &types.IOError{Op: "close", Path: path, Err: err}
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		_ = fs.Remove(tmpPath)
		return &types.IOError{Op: "rename", Path: path, Err: err}
	}
	s.log.Debug().Str("path", path).Str("format", string(format)).Int("count", len(s.tasks)).Msg("tasks exported")
	return nil
}

func writeExport(w io.Writer, path string, tasks []models.Task, format ExportFormat) error {
	var err error
	switch format {
	case ExportCSV, "":
		err = writeCSV(w, tasks)
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(exportRecords(tasks))
	case ExportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(exportRecords(tasks)); err == nil {
			err = enc.Close()
		}
	default:
		return types.NewValidationError("format", fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return &types.IOError{Op: "export", Path: path, Err: err}
	}
	return nil
}

func writeCSV(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write(CSVRow(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVRow renders one task as a CSV record. Completed is "True" or "False",
// a missing due date is an empty cell and tags are joined by commas.
func CSVRow(t models.Task) []string {
	completed := "False"
	if t.Completed {
		completed = "True"
	}
	return []string{t.Description, completed, string(t.Priority), t.Due(), strings.Join(t.Tags, ",")}
}

// exportRecord is the portable record written by json and yaml exports.
type exportRecord struct {
	Description string   `json:"description" yaml:"description"`
	Completed   bool     `json:"completed" yaml:"completed"`
	Priority    string   `json:"priority" yaml:"priority"`
	DueDate     *string  `json:"due_date" yaml:"due_date"`
	Tags        []string `json:"tags" yaml:"tags"`
}

func exportRecords(tasks []models.Task) []exportRecord {
	out := make([]exportRecord, 0, len(tasks))
	for _, t := range tasks {
		c := t.Clone()
		out = append(out, exportRecord{
			Description: c.Description,
			Completed:   c.Completed,
			Priority:    string(c.Priority),
			DueDate:     c.DueDate,
			Tags:        c.Tags,
		})
	}
	return out
}

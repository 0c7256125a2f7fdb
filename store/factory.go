package store

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/josephgoksu/todopro/types"
	"github.com/spf13/afero"
)

// FormatSQLite selects the SQLiteTaskStore backend.
const FormatSQLite = "sqlite"

// New builds and initializes the store selected by cfg.Format.
// path is the already-resolved data file location.
// fs is only used by the file backend; SQLite always talks to the OS.
func New(fs afero.Fs, path string, cfg types.DataConfig) (TaskStore, error) {
	format := strings.ToLower(cfg.Format)

	path = defaultPathFor(path, format)

	var s TaskStore
	if format == FormatSQLite {
		s = NewSQLiteTaskStore()
	} else {
		s = NewFileTaskStore(fs)
	}

	err := s.Initialize(map[string]string{
		DataFileKey:       path,
		DataFileFormatKey: format,
		VerifyChecksumKey: strconv.FormatBool(cfg.VerifyChecksum),
	})
	if err != nil {
		return nil, fmt.Errorf("initialize %s store: %w", format, err)
	}
	return s, nil
}

// defaultPathFor swaps the extension of the default tasks.json name so that
// switching format alone does not overwrite a JSON file with another encoding.
func defaultPathFor(path, format string) string {
	if filepath.Base(path) != defaultDataFile || format == "" || format == formatJSON {
		return path
	}
	ext := "." + format
	if format == FormatSQLite {
		ext = filepath.Ext(defaultSQLiteFile)
	}
	return filepath.Join(filepath.Dir(path), "tasks"+ext)
}

package store

import "github.com/josephgoksu/todopro/models"

// TaskStore defines the interface for task persistence.
// A store always reads and writes the whole list; there are no per-task
// operations.
type TaskStore interface {
	// Initialize configures the store with backend-specific settings such as
	// the data file path and format. It must be called before Load or Save.
	Initialize(config map[string]string) error

	// Load returns the persisted list in stored order. A missing data file
	// yields an empty list and no error. Read failures are *types.IOError,
	// malformed content is *types.ParseError.
	Load() (models.TaskList, error)

	// Save overwrites the persisted list. Write failures are *types.IOError.
	Save(list models.TaskList) error

	// Path reports where the data lives.
	Path() string

	// Close releases any resources held by the store, such as file locks or
	// database connections.
	Close() error
}

// Config keys understood by Initialize.
const (
	DataFileKey       = "dataFile"
	DataFileFormatKey = "dataFileFormat"
	VerifyChecksumKey = "verifyChecksum"
)

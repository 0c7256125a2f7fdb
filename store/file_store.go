package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/josephgoksu/todopro/models"
	"github.com/josephgoksu/todopro/types"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "tasks.json" // Default filename if only format implies extension
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
	lockSuffix        = ".lock"
)

// FileTaskStore implements TaskStore on a single data file.
// It supports JSON, YAML, and TOML formats. A sidecar checksum file guards
// against tampering, and on the OS filesystem an advisory lock serializes
// access between processes.
type FileTaskStore struct {
	fs             afero.Fs
	filePath       string
	format         string
	verifyChecksum bool
	flk            *flock.Flock // nil unless fs is the OS filesystem
}

// NewFileTaskStore creates a FileTaskStore on fs. A nil fs means the OS filesystem.
// It does not initialize the store; Initialize must be called separately.
func NewFileTaskStore(fs afero.Fs) *FileTaskStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileTaskStore{fs: fs, verifyChecksum: true}
}

// Initialize configures the FileTaskStore.
// It reads DataFileKey (default tasks.json), DataFileFormatKey (json, yaml or
// toml) and VerifyChecksumKey ("false" disables checksum verification).
// Nothing is created on disk until the first Save.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	s.filePath = defaultDataFile
	if val := config[DataFileKey]; val != "" {
		s.filePath = val
	}

	s.format = defaultDataFormat
	if val := config[DataFileFormatKey]; val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return types.NewValidationError("data.format", fmt.Sprintf("unsupported format %q, supported formats are json, yaml, toml", val))
		}
	}

	// Users providing a full file path are responsible for its extension.
	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	if val, ok := config[VerifyChecksumKey]; ok {
		s.verifyChecksum = !strings.EqualFold(strings.TrimSpace(val), "false")
	}

	if _, ok := s.fs.(*afero.OsFs); ok {
		s.flk = flock.New(s.filePath + lockSuffix)
	}
	return nil
}

// Path returns the data file path.
func (s *FileTaskStore) Path() string {
	return s.filePath
}

// Format returns the configured serialization format.
func (s *FileTaskStore) Format() string {
	return s.format
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// Load reads the data file. See TaskStore.Load.
func (s *FileTaskStore) Load() (models.TaskList, error) {
	if _, err := s.fs.Stat(s.filePath); errors.Is(err, fs.ErrNotExist) {
		return emptyList(), nil
	}

	if s.flk != nil {
		if err := s.flk.RLock(); err != nil {
			return emptyList(), &types.IOError{Op: "lock", Path: s.filePath, Err: err}
		}
		defer func() { _ = s.flk.Unlock() }()
	}

	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyList(), nil
		}
		return emptyList(), &types.IOError{Op: "read", Path: s.filePath, Err: err}
	}

	if err := s.verify(data); err != nil {
		return emptyList(), err
	}

	list, err := decodeTaskList(data, s.format)
	if err != nil {
		return emptyList(), &types.ParseError{Path: s.filePath, Err: err}
	}
	return list, nil
}

// verify compares data against the checksum sidecar when one exists.
// Files written before checksums existed are accepted as is.
func (s *FileTaskStore) verify(data []byte) error {
	if !s.verifyChecksum {
		return nil
	}
	checksumFilePath := s.filePath + checksumSuffix
	expected, err := afero.ReadFile(s.fs, checksumFilePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &types.IOError{Op: "read", Path: checksumFilePath, Err: err}
	}
	actual := calculateChecksum(data)
	if want := strings.TrimSpace(string(expected)); actual != want {
		return &types.ParseError{
			Path: s.filePath,
			Err:  fmt.Errorf("checksum mismatch: expected %s, got %s - file is corrupt or tampered", want, actual),
		}
	}
	return nil
}

// Save writes the whole list to a temporary file, then renames it over the
// data file and refreshes the checksum sidecar.
func (s *FileTaskStore) Save(list models.TaskList) error {
	list.TotalCount = len(list.Tasks)
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}

	data, err := encodeTaskList(list, s.format)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}

	if dir := filepath.Dir(s.filePath); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return &types.IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	if s.flk != nil {
		if err := s.flk.Lock(); err != nil {
			return &types.IOError{Op: "lock", Path: s.filePath, Err: err}
		}
		defer func() { _ = s.flk.Unlock() }()
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = s.fs.Remove(tempFilePath) }()
	defer func() { _ = s.fs.Remove(tempChecksumFilePath) }()

	if err := afero.WriteFile(s.fs, tempFilePath, data, 0o644); err != nil {
		return &types.IOError{Op: "write", Path: tempFilePath, Err: err}
	}
	if err := afero.WriteFile(s.fs, tempChecksumFilePath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return &types.IOError{Op: "write", Path: tempChecksumFilePath, Err: err}
	}
	if err := s.fs.Rename(tempFilePath, s.filePath); err != nil {
		return &types.IOError{Op: "rename", Path: s.filePath, Err: err}
	}
	if err := s.fs.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		// Data is new, checksum is stale: the next Load would reject it.
		_ = s.fs.Remove(checksumFilePath)
		return &types.IOError{Op: "rename", Path: checksumFilePath, Err: err}
	}
	return nil
}

// Close releases the lock file handle, if any.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Close()
	}
	return nil
}

func emptyList() models.TaskList {
	return models.TaskList{Tasks: []models.Task{}}
}

func encodeTaskList(list models.TaskList, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		return json.MarshalIndent(list, "", "  ")
	case formatYAML:
		return yaml.Marshal(list)
	case formatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(list); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", format)
	}
}

// decodeTaskList parses data in the given format. Besides the envelope it
// accepts a bare array of task records, the layout older task files use.
func decodeTaskList(data []byte, format string) (models.TaskList, error) {
	list := emptyList()
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return list, nil
	}

	switch format {
	case formatJSON:
		if trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &list.Tasks); err != nil {
				return emptyList(), err
			}
			break
		}
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return emptyList(), err
		}
	case formatYAML:
		if trimmed[0] == '-' && !bytes.HasPrefix(trimmed, []byte("---")) {
			if err := yaml.Unmarshal(trimmed, &list.Tasks); err != nil {
				return emptyList(), err
			}
			break
		}
		if err := yaml.Unmarshal(trimmed, &list); err != nil {
			return emptyList(), err
		}
	case formatTOML:
		if err := toml.Unmarshal(trimmed, &list); err != nil {
			return emptyList(), err
		}
	default:
		return emptyList(), fmt.Errorf("unsupported data format for loading: %s", format)
	}

	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}
	for i := range list.Tasks {
		if list.Tasks[i].Tags == nil {
			list.Tasks[i].Tags = []string{}
		}
	}
	return list, nil
}

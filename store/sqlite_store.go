package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephgoksu/todopro/models"
	"github.com/josephgoksu/todopro/types"
	_ "modernc.org/sqlite"
)

const defaultSQLiteFile = "tasks.db"

// SQLiteTaskStore implements TaskStore using SQLite for persistence.
// Task order is kept in an explicit position column.
type SQLiteTaskStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteTaskStore creates an uninitialized SQLite-backed store.
func NewSQLiteTaskStore() *SQLiteTaskStore {
	return &SQLiteTaskStore{}
}

// Initialize opens (creating if needed) the database at DataFileKey and
// creates the schema. The special path ":memory:" keeps everything in memory.
func (s *SQLiteTaskStore) Initialize(config map[string]string) error {
	s.dbPath = defaultSQLiteFile
	if val := config[DataFileKey]; val != "" {
		s.dbPath = val
	}

	if s.dbPath != ":memory:" {
		if dir := filepath.Dir(s.dbPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return &types.IOError{Op: "mkdir", Path: dir, Err: err}
			}
		}
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return &types.IOError{Op: "open", Path: s.dbPath, Err: err}
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		s.db = nil
		return &types.IOError{Op: "init schema", Path: s.dbPath, Err: err}
	}
	return nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteTaskStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		position INTEGER NOT NULL,
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		priority TEXT NOT NULL DEFAULT 'Medium',
		due_date TEXT,                      -- NULL when unset
		tags TEXT NOT NULL DEFAULT '[]',    -- JSON array
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS pending_undo (
		kind TEXT NOT NULL,
		task_id TEXT NOT NULL,
		task TEXT NOT NULL                  -- JSON snapshot
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database path.
func (s *SQLiteTaskStore) Path() string {
	return s.dbPath
}

// Load reads all tasks ordered by position, plus the pending undo row.
func (s *SQLiteTaskStore) Load() (models.TaskList, error) {
	if s.db == nil {
		return emptyList(), fmt.Errorf("sqlite store not initialized")
	}

	rows, err := s.db.Query(`SELECT id, description, completed, priority, due_date, tags, created_at FROM tasks ORDER BY position`)
	if err != nil {
		return emptyList(), &types.IOError{Op: "query", Path: s.dbPath, Err: err}
	}
	defer func() { _ = rows.Close() }()

	list := emptyList()
	for rows.Next() {
		var (
			t         models.Task
			priority  string
			dueDate   sql.NullString
			tagsJSON  string
			createdAt sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &priority, &dueDate, &tagsJSON, &createdAt); err != nil {
			return emptyList(), &types.ParseError{Path: s.dbPath, Err: err}
		}
		t.Priority = models.TaskPriority(priority)
		if dueDate.Valid {
			d := dueDate.String
			t.DueDate = &d
		}
		if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
			return emptyList(), &types.ParseError{Path: s.dbPath, Err: fmt.Errorf("tags of %s: %w", t.ID, err)}
		}
		if t.Tags == nil {
			t.Tags = []string{}
		}
		if createdAt.Valid && createdAt.String != "" {
			if ts, err := time.Parse(time.RFC3339Nano, createdAt.String); err == nil {
				t.CreatedAt = ts
			}
		}
		list.Tasks = append(list.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return emptyList(), &types.IOError{Op: "query", Path: s.dbPath, Err: err}
	}

	var kind, taskID, snapshot string
	err = s.db.QueryRow(`SELECT kind, task_id, task FROM pending_undo LIMIT 1`).Scan(&kind, &taskID, &snapshot)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return emptyList(), &types.IOError{Op: "query", Path: s.dbPath, Err: err}
	default:
		action := &models.UndoAction{Kind: models.ActionKind(kind), TaskID: taskID}
		if err := json.Unmarshal([]byte(snapshot), &action.Task); err != nil {
			return emptyList(), &types.ParseError{Path: s.dbPath, Err: fmt.Errorf("pending undo: %w", err)}
		}
		list.PendingUndo = action
	}

	list.TotalCount = len(list.Tasks)
	return list, nil
}

// Save replaces the contents of both tables in one transaction.
func (s *SQLiteTaskStore) Save(list models.TaskList) error {
	if s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &types.IOError{Op: "begin", Path: s.dbPath, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return &types.IOError{Op: "write", Path: s.dbPath, Err: err}
	}
	if _, err := tx.Exec(`DELETE FROM pending_undo`); err != nil {
		return &types.IOError{Op: "write", Path: s.dbPath, Err: err}
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (position, id, description, completed, priority, due_date, tags, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &types.IOError{Op: "write", Path: s.dbPath, Err: err}
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range list.Tasks {
		tags := t.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("marshal tags of %s: %w", t.ID, err)
		}
		var dueDate sql.NullString
		if t.DueDate != nil {
			dueDate = sql.NullString{String: *t.DueDate, Valid: true}
		}
		var createdAt sql.NullString
		if !t.CreatedAt.IsZero() {
			createdAt = sql.NullString{String: t.CreatedAt.UTC().Format(time.RFC3339Nano), Valid: true}
		}
		if _, err := stmt.Exec(i, t.ID, t.Description, t.Completed, string(t.Priority), dueDate, string(tagsJSON), createdAt); err != nil {
			return &types.IOError{Op: "write", Path: s.dbPath, Err: err}
		}
	}

	if list.PendingUndo != nil {
		snapshot, err := json.Marshal(list.PendingUndo.Task)
		if err != nil {
			return fmt.Errorf("marshal pending undo: %w", err)
		}
		if _, err := tx.Exec(`INSERT INTO pending_undo (kind, task_id, task) VALUES (?, ?, ?)`,
			string(list.PendingUndo.Kind), list.PendingUndo.TaskID, string(snapshot)); err != nil {
			return &types.IOError{Op: "write", Path: s.dbPath, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &types.IOError{Op: "commit", Path: s.dbPath, Err: err}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteTaskStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS task_feedback (
	task_id    TEXT PRIMARY KEY,
	helpful    INTEGER NOT NULL DEFAULT 0,
	done       INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore keeps counters in a local SQLite file, so feedback survives
// between CLI runs without a database server.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists. ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite feedback store requires a path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; this also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create feedback schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Increment(ctx context.Context, taskID, label string) (Counts, error) {
	id, l, err := validate(taskID, label)
	if err != nil {
		return Counts{}, err
	}

	var helpful, done int64
	if l == LabelHelpful {
		helpful = 1
	} else {
		done = 1
	}

	var c Counts
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO task_feedback (task_id, helpful, done)
		 VALUES (?, ?, ?)
		 ON CONFLICT (task_id) DO UPDATE
		   SET helpful = helpful + excluded.helpful,
		       done = done + excluded.done,
		       updated_at = CURRENT_TIMESTAMP
		 RETURNING helpful, done`,
		id, helpful, done,
	).Scan(&c.Helpful, &c.Done)
	if err != nil {
		return Counts{}, fmt.Errorf("increment feedback for %s: %w", id, err)
	}
	return c, nil
}

func (s *SQLiteStore) Get(ctx context.Context, taskID string) (Counts, error) {
	id := strings.TrimSpace(taskID)
	if id == "" {
		return Counts{}, ErrMissingTaskID
	}

	var c Counts
	err := s.db.QueryRowContext(ctx,
		`SELECT helpful, done FROM task_feedback WHERE task_id = ?`, id,
	).Scan(&c.Helpful, &c.Done)
	if err == sql.ErrNoRows {
		return Counts{}, nil
	}
	if err != nil {
		return Counts{}, fmt.Errorf("get feedback for %s: %w", id, err)
	}
	return c, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/taskrank/taskrank/internal/platform"
)

// PostgresStore keeps counters in the task_feedback table. Each increment
// is a single upsert, so concurrent callers never lose updates.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database. The schema must already exist.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects to databaseURL, runs pending migrations and returns
// the store. Close releases the connection pool.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := platform.AutoMigrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewPostgresStore(db), nil
}

func (s *PostgresStore) Increment(ctx context.Context, taskID, label string) (Counts, error) {
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
		 VALUES ($1, $2, $3)
		 ON CONFLICT (task_id) DO UPDATE
		   SET helpful = task_feedback.helpful + EXCLUDED.helpful,
		       done = task_feedback.done + EXCLUDED.done,
		       updated_at = now()
		 RETURNING helpful, done`,
		id, helpful, done,
	).Scan(&c.Helpful, &c.Done)
	if err != nil {
		return Counts{}, fmt.Errorf("increment feedback for %s: %w", id, err)
	}
	return c, nil
}

func (s *PostgresStore) Get(ctx context.Context, taskID string) (Counts, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return Counts{}, ErrMissingTaskID
	}

	var c Counts
	err := s.db.QueryRowContext(ctx,
		`SELECT helpful, done FROM task_feedback WHERE task_id = $1`,
		taskID,
	).Scan(&c.Helpful, &c.Done)
	if err == sql.ErrNoRows {
		return Counts{}, nil
	}
	if err != nil {
		return Counts{}, fmt.Errorf("get feedback for %s: %w", taskID, err)
	}
	return c, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps reminders in a local sqlite file, the default backend for
// a single-user assistant.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// The store is only ever driven from the orchestrator goroutine; a single
	// connection also sidesteps sqlite writer contention.
	db.SetMaxOpenConns(1)

	if err := initSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schedules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_text TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending'
		)`)
	if err != nil {
		return fmt.Errorf("init schedules schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Create(ctx context.Context, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO schedules (task_text, created_at, status) VALUES (?, ?, ?)`,
		text,
		time.Now().UTC().Format(time.RFC3339Nano),
		string(StatusPending),
	)
	if err != nil {
		return 0, fmt.Errorf("insert schedule: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("schedule insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) List(ctx context.Context, status Status) ([]Task, error) {
	query := `SELECT id, task_text, created_at, status FROM schedules ORDER BY created_at DESC, id DESC`
	args := []any{}
	if status != "" {
		query = `SELECT id, task_text, created_at, status FROM schedules WHERE status = ? ORDER BY created_at DESC, id DESC`
		args = append(args, string(status))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var (
			t         Task
			createdAt string
			st        string
		)
		if err := rows.Scan(&t.ID, &t.Text, &createdAt, &st); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse schedule timestamp %q: %w", createdAt, err)
		}
		t.Status = Status(st)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule rows: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

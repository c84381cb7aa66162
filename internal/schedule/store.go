package schedule

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyText is returned by Create when the task text is blank after
// trimming. Nothing is written in that case.
var ErrEmptyText = errors.New("task text is empty")

// Store persists scheduled reminders. Ids are assigned by the store and
// monotonically increasing. There is no update or delete.
type Store interface {
	// Create inserts a pending task and returns its id.
	Create(ctx context.Context, text string) (int64, error)
	// List returns tasks with the given status, newest first. Empty status
	// means all tasks.
	List(ctx context.Context, status Status) ([]Task, error)
	Close() error
}

// NewStore picks a backend: postgres when a database URL is configured,
// otherwise a local sqlite file, otherwise in-memory.
func NewStore(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	if strings.TrimSpace(databaseURL) != "" {
		return NewPostgresStore(ctx, databaseURL)
	}
	if strings.TrimSpace(sqlitePath) != "" {
		return NewSQLiteStore(ctx, sqlitePath)
	}
	return NewInMemoryStore(), nil
}

package journal

import (
	"context"
	"strings"
)

// New creates a postgres-backed journal when configured, otherwise in-memory.
func New(ctx context.Context, databaseURL string) (Journal, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewInMemoryJournal(), nil
	}
	return NewPostgresJournal(ctx, databaseURL)
}

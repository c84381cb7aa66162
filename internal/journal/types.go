package journal

import (
	"context"
	"time"
)

// Record is one persisted conversation turn. The journal is write-mostly: it
// exists for inspection after the fact and is never rehydrated into the live
// context buffer.
type Record struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal persists conversation turns best-effort.
type Journal interface {
	SaveTurn(ctx context.Context, record Record) error
	Recent(ctx context.Context, sessionID string, limit int) ([]Record, error)
	Close() error
}

package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryJournal keeps turns in process memory for local/dev use.
type InMemoryJournal struct {
	mu      sync.RWMutex
	records map[string][]Record
}

func NewInMemoryJournal() *InMemoryJournal {
	return &InMemoryJournal{records: make(map[string][]Record)}
}

func (j *InMemoryJournal) SaveTurn(_ context.Context, record Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	j.records[record.SessionID] = append(j.records[record.SessionID], record)
	return nil
}

func (j *InMemoryJournal) Recent(_ context.Context, sessionID string, limit int) ([]Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	arr := j.records[sessionID]
	if len(arr) == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > len(arr) {
		limit = len(arr)
	}
	out := make([]Record, 0, limit)
	for i := len(arr) - limit; i < len(arr); i++ {
		out = append(out, arr[i])
	}
	return out, nil
}

func (j *InMemoryJournal) Close() error { return nil }

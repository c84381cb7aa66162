package schedule

import "time"

// Status of a stored task. Only pending is written today; done is reserved.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Task is a user-created reminder. Text is immutable after creation.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
}

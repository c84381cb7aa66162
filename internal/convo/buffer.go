package convo

import "sync"

// Role tags which side of the conversation produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one role-tagged utterance in the conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Buffer is the append-only conversation log. Turns are never reordered or
// pruned; the optional window only bounds what Request returns.
type Buffer struct {
	mu       sync.Mutex
	turns    []Turn
	window   int
	onAppend func(Turn)
}

// NewBuffer creates a buffer. window bounds the number of turns handed to the
// language model per request; 0 means all of them.
func NewBuffer(window int) *Buffer {
	if window < 0 {
		window = 0
	}
	return &Buffer{window: window}
}

// SetOnAppend registers a hook invoked for every appended turn. Set once
// during wiring, before the conversation starts.
func (b *Buffer) SetOnAppend(hook func(Turn)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onAppend = hook
}

func (b *Buffer) Append(role Role, content string) {
	t := Turn{Role: role, Content: content}
	b.mu.Lock()
	b.turns = append(b.turns, t)
	hook := b.onAppend
	b.mu.Unlock()

	if hook != nil {
		hook(t)
	}
}

// Turns returns a copy of the full log in append order.
func (b *Buffer) Turns() []Turn {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Turn, len(b.turns))
	copy(out, b.turns)
	return out
}

// Request returns the turns to send to the language model: the whole log, or
// the trailing window when one is configured.
func (b *Buffer) Request() []Turn {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := 0
	if b.window > 0 && len(b.turns) > b.window {
		start = len(b.turns) - b.window
	}
	out := make([]Turn, len(b.turns)-start)
	copy(out, b.turns[start:])
	return out
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.turns)
}

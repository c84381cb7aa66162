package httpapi

import (
	"sync"

	"github.com/ent0n29/iris/internal/convo"
)

// Hub fans conversation turns out to websocket subscribers. Publishing never
// blocks the dialog loop; a subscriber that cannot keep up loses turns.
type Hub struct {
	mu   sync.Mutex
	subs map[chan convo.Turn]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan convo.Turn]struct{})}
}

// Subscribe registers a new listener. The returned cancel func must be called
// exactly once; it closes the channel.
func (h *Hub) Subscribe() (<-chan convo.Turn, func()) {
	ch := make(chan convo.Turn, 64)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a turn to every subscriber, dropping it for any whose
// buffer is full.
func (h *Hub) Publish(t convo.Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- t:
		default:
		}
	}
}

func (h *Hub) subscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

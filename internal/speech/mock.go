package speech

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MockSynthesizer records utterances for tests. An optional per-utterance
// delay simulates playback time; FailOn makes a specific utterance fail.
type MockSynthesizer struct {
	mu     sync.Mutex
	spoken []string

	Delay  time.Duration
	FailOn string
	Err    error
}

func NewMockSynthesizer() *MockSynthesizer { return &MockSynthesizer{} }

func (m *MockSynthesizer) Speak(ctx context.Context, text string) error {
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if m.FailOn != "" && text == m.FailOn {
		if m.Err != nil {
			return m.Err
		}
		return errors.New("mock synthesis failure")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spoken = append(m.spoken, text)
	return nil
}

// Spoken returns the utterances played so far, in playback order.
func (m *MockSynthesizer) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.spoken))
	copy(out, m.spoken)
	return out
}

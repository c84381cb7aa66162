package listen

import (
	"context"
	"sync"
)

// MockRecognizer replays a scripted sequence of results, then times out.
type MockRecognizer struct {
	mu      sync.Mutex
	results []Result
}

func NewMockRecognizer(results ...Result) *MockRecognizer {
	return &MockRecognizer{results: results}
}

func (m *MockRecognizer) Listen(_ context.Context, _ Options) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.results) == 0 {
		return Timeout()
	}
	r := m.results[0]
	m.results = m.results[1:]
	return r
}

// MockDeviceLister reports a fixed device set.
type MockDeviceLister struct {
	Devices []Device
}

func (m *MockDeviceLister) InputDevices() []Device {
	if m == nil {
		return nil
	}
	return m.Devices
}

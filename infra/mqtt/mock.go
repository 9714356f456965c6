package mqtt

import "sync"

// MockPublisher records published payloads for tests.
type MockPublisher struct {
	mu       sync.Mutex
	Payloads []any
	Fail     bool
	Closed   bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishResult records the payload or fails when configured to.
func (m *MockPublisher) PublishResult(v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return errPublishFailed
	}
	m.Payloads = append(m.Payloads, v)
	return nil
}

// Disconnect marks the publisher closed.
func (m *MockPublisher) Disconnect() {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
}

// Count returns the number of recorded payloads.
func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Payloads)
}

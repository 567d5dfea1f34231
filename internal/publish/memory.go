package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory keeps published events in a slice for local development and
// tests.
type Memory struct {
	mu     sync.Mutex
	events [][]byte
	next   int
}

// NewMemory returns an empty in-memory publisher.
func NewMemory() *Memory {
	return &Memory{}
}

// Publish marshals the payload and appends it. IDs are sequential.
func (m *Memory) Publish(_ context.Context, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal run event: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.events = append(m.events, data)
	return fmt.Sprintf("mem-%d", m.next), nil
}

// Events returns copies of the published payloads in publish order.
func (m *Memory) Events() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.events))
	for i, e := range m.events {
		out[i] = append([]byte(nil), e...)
	}
	return out
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Noop drops every event. It is the default when no topic is configured.
type Noop struct{}

// NewNoop returns the discarding publisher.
func NewNoop() Noop { return Noop{} }

// Publish drops the payload and reports an empty ID.
func (Noop) Publish(_ context.Context, _ any) (string, error) { return "", nil }

// Close is a no-op.
func (Noop) Close() error { return nil }

package popularity

import (
	"context"
	"sync"
)

// Memory is an in-process Store used when Redis is not configured.
type Memory struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{counters: make(map[string]int64)}
}

// Counter implements Store.
func (m *Memory) Counter(_ context.Context, eventID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[eventID], nil
}

// Counters implements Store.
func (m *Memory) Counters(_ context.Context, eventIDs []string) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int64, len(eventIDs))
	for _, id := range eventIDs {
		out[id] = m.counters[id]
	}
	return out, nil
}

// Increment implements Store.
func (m *Memory) Increment(_ context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[eventID]++
	return nil
}

package monitor

import (
	"sync"

	"github.com/randalmurphal/floweditor/pkg/floweditor/execution"
)

// MemoryStore is an in-memory history store for testing and for
// consoles that don't persist history across restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]execution.FlowExecution
	closed bool
}

// NewMemoryStore creates a new in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]execution.FlowExecution)}
}

// Save implements HistoryStore.
func (m *MemoryStore) Save(flowID string, execs []execution.FlowExecution) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy to avoid retaining the caller's slice.
	m.data[flowID] = append([]execution.FlowExecution(nil), execs...)
	return nil
}

// Load implements HistoryStore.
func (m *MemoryStore) Load(flowID string) ([]execution.FlowExecution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	execs, ok := m.data[flowID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]execution.FlowExecution(nil), execs...), nil
}

// Delete implements HistoryStore.
func (m *MemoryStore) Delete(flowID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, flowID)
	return nil
}

// Close implements HistoryStore.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}

package observability

import "sync"

// Metrics provides basic in-memory counters for core operations.
type Metrics struct {
	mu       sync.Mutex
	outcomes map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{outcomes: make(map[string]int64)}
}

// RecordOperation increments the counter for an operation/outcome pair,
// e.g. ("ticket_create", "ok") or ("login", "invalid_credentials").
func (m *Metrics) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[operation+"|"+outcome]++
}

// Counters returns a copy of the recorded counters.
func (m *Metrics) Counters() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.outcomes))
	for k, v := range m.outcomes {
		out[k] = v
	}
	return out
}

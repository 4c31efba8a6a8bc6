package sequence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"batibill/internal/core/id"
)

// MockSequencer is a test implementation of Sequencer.
// Use in unit tests to avoid database dependencies.
// It is safe for concurrent use and never reuses a value.
type MockSequencer struct {
	mu       sync.Mutex
	counters map[string]int64

	// NextFunc overrides Next when set.
	NextFunc func(ctx context.Context, tenantID id.ID, docType string, period time.Time) (string, error)
}

// NewMockSequencer creates an in-memory sequencer.
func NewMockSequencer() *MockSequencer {
	return &MockSequencer{counters: make(map[string]int64)}
}

func (m *MockSequencer) key(tenantID id.ID, docType string, period time.Time) string {
	y, mo := PeriodKey(period)
	return fmt.Sprintf("%s:%s:%04d-%02d", tenantID, docType, y, mo)
}

// Next implements Sequencer.
func (m *MockSequencer) Next(ctx context.Context, tenantID id.ID, docType string, period time.Time) (string, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, tenantID, docType, period)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(tenantID, docType, period)
	m.counters[k]++
	return Format(period, m.counters[k]), nil
}

// Ensure compile-time interface compliance.
var _ Sequencer = (*MockSequencer)(nil)

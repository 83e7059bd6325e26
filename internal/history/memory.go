// internal/history/memory.go
//
// In-memory implementation of history.Store.
//
// Characteristics:
//   - Keeps at most `capacity` entries; the oldest are dropped first.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package history

import (
	"context"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
)

// DefaultCapacity bounds the memory store.
const DefaultCapacity = 1000

// memory is a slice-backed Store, oldest entry first.
type memory struct {
	mu       sync.RWMutex // guards entries and nextID
	entries  []Entry
	nextID   int64
	capacity int
}

// NewMemoryStore constructs an in-memory Store holding up to capacity entries
// (DefaultCapacity when capacity <= 0).
func NewMemoryStore(capacity int) Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &memory{capacity: capacity}
}

// Record appends e, evicting the oldest entry when full.
func (m *memory) Record(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Date == "" {
		e.Date = daily.DateKey(e.CreatedAt)
	}
	cp := *e
	cp.Guesses = append([]string(nil), e.Guesses...)
	m.entries = append(m.entries, cp)
	if len(m.entries) > m.capacity {
		m.entries = m.entries[len(m.entries)-m.capacity:]
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (m *memory) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return m.list(normalizeLimit(limit), func(Entry) bool { return true }), nil
}

// ByDate returns up to limit entries recorded on date, newest first.
func (m *memory) ByDate(ctx context.Context, date string, limit int) ([]Entry, error) {
	return m.list(normalizeLimit(limit), func(e Entry) bool { return e.Date == date }), nil
}

func (m *memory) list(limit int, keep func(Entry) bool) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, 0, min(limit, len(m.entries)))
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(m.entries[i]) {
			out = append(out, m.entries[i])
		}
	}
	return out
}

// Close is a no-op for the memory store.
func (m *memory) Close() error { return nil }

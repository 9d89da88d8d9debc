package catalog

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory catalog for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[recordKey]storedRecord
	seq     int
	closed  bool
}

type recordKey struct {
	registry, module, name, signature string
}

// storedRecord keeps insertion order so List is stable for equal timestamps.
type storedRecord struct {
	rec Record
	seq int
}

// NewMemoryStore creates a new in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[recordKey]storedRecord),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.seq++
	m.records[recordKey{rec.Registry, rec.Module, rec.Name, rec.Signature}] = storedRecord{rec: rec, seq: m.seq}
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(registry, module, name, signature string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Record{}, ErrStoreClosed
	}

	stored, ok := m.records[recordKey{registry, module, name, signature}]
	if !ok {
		return Record{}, ErrNotFound
	}
	return stored.rec, nil
}

// List implements Store.
func (m *MemoryStore) List(registry string) ([]Record, error) {
	return m.filter(func(r Record) bool {
		return registry == "" || r.Registry == registry
	})
}

// Find implements Store.
func (m *MemoryStore) Find(registry, module, name string) ([]Record, error) {
	return m.filter(func(r Record) bool {
		return (registry == "" || r.Registry == registry) && r.Module == module && r.Name == name
	})
}

func (m *MemoryStore) filter(keep func(Record) bool) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	matched := make([]storedRecord, 0, len(m.records))
	for _, stored := range m.records {
		if keep(stored.rec) {
			matched = append(matched, stored)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.rec.RegisteredAt.Equal(b.rec.RegisteredAt) {
			return a.rec.RegisteredAt.Before(b.rec.RegisteredAt)
		}
		return a.seq < b.seq
	})

	records := make([]Record, len(matched))
	for i, stored := range matched {
		records[i] = stored.rec
	}
	return records, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	return nil
}

// Len returns the number of stored records.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

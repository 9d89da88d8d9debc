package table

import "sync"

// Table is a thread-safe, append-only set of values indexed by key.
// It uses sync.RWMutex for read-heavy workloads.
type Table[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// New creates a new empty table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]V),
	}
}

// Insert adds value under key if the key is absent.
// Returns false, leaving the table unchanged, if the key already exists.
func (t *Table[K, V]) Insert(key K, value V) bool {
	_, inserted := t.InsertOrGet(key, value)
	return inserted
}

// InsertOrGet adds value under key if the key is absent and returns it.
// If the key already exists, the stored value is returned with false.
func (t *Table[K, V]) InsertOrGet(key K, value V) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.entries[key]; ok {
		return existing, false
	}
	t.entries[key] = value
	return value, true
}

// Get returns the value for a key and whether it exists.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[key]
	return v, ok
}

// Has returns true if the key exists in the table.
func (t *Table[K, V]) Has(key K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[key]
	return ok
}

// Keys returns all keys in the table.
// The order is not guaranteed.
func (t *Table[K, V]) Keys() []K {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]K, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	return keys
}

// Values returns all values in the table.
// The order is not guaranteed.
func (t *Table[K, V]) Values() []V {
	t.mu.RLock()
	defer t.mu.RUnlock()
	values := make([]V, 0, len(t.entries))
	for _, v := range t.entries {
		values = append(values, v)
	}
	return values
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Range calls fn for each entry until fn returns false.
//
// Range iterates over a snapshot of the table, so it is safe to call
// Insert during iteration without affecting the current iteration.
func (t *Table[K, V]) Range(fn func(K, V) bool) {
	t.mu.RLock()
	snapshot := make(map[K]V, len(t.entries))
	for k, v := range t.entries {
		snapshot[k] = v
	}
	t.mu.RUnlock()

	for k, v := range snapshot {
		if !fn(k, v) {
			return
		}
	}
}

// Package table provides a generic thread-safe, append-only table of values
// indexed by key.
//
// Table is designed for read-heavy workloads using sync.RWMutex. Entries can
// be added but never replaced or removed: Insert is an atomic check-and-set
// that refuses keys already present.
//
// # Basic Usage
//
//	t := table.New[string, int]()
//	t.Insert("one", 1) // true
//	t.Insert("one", 2) // false, value stays 1
//
//	value, ok := t.Get("one")
//	if ok {
//	    fmt.Println(value) // Output: 1
//	}
//
// # Conflict Handling
//
// InsertOrGet reports the existing value when the key is taken, so callers can
// build a descriptive error from a single locked operation:
//
//	existing, inserted := t.InsertOrGet("one", 3)
//	if !inserted {
//	    return fmt.Errorf("key taken by %v", existing)
//	}
//
// # Thread Safety
//
// All Table methods are safe for concurrent use. Of any number of concurrent
// Insert calls for the same key, exactly one succeeds. Range iterates over a
// snapshot, so Insert may be called from the callback.
package table

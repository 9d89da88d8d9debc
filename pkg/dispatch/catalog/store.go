// Package catalog provides persistent records of dispatch registrations, so
// the implementations a process registered can be inspected after the fact.
package catalog

import (
	"errors"
	"time"
)

// Store persists registration records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a record.
	// Overwrites if a record for (Registry, Module, Name, Signature) already exists.
	// Records are keyed by registry name, not RegistryID, so two registries
	// sharing a name and a store replace each other's records.
	Save(rec Record) error

	// Get retrieves one record.
	// Returns ErrNotFound if it doesn't exist.
	Get(registry, module, name, signature string) (Record, error)

	// List returns all records of a registry, or of every registry when
	// registry is empty, ordered by registration time.
	// Returns empty slice (not error) when there are none.
	List(registry string) ([]Record, error)

	// Find returns the records of one generic function, ordered by
	// registration time. An empty registry matches every registry.
	Find(registry, module, name string) ([]Record, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Record describes one registered implementation.
type Record struct {
	// ID is the registration's unique identifier.
	ID string
	// Registry and RegistryID identify the registry instance.
	Registry   string
	RegistryID string
	// Module, Name and Signature form the dispatch key.
	// Signature holds the canonical encoding.
	Module    string
	Name      string
	Signature string
	// Display is the readable form of the signature.
	Display string
	// File and Line locate the definition, when known.
	File string
	Line int
	// RegisteredAt is when the registration succeeded.
	RegisteredAt time.Time
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("catalog record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")
)

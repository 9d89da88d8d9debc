package dispatch

import (
	"fmt"

	"github.com/randalmurphal/dispatch/pkg/dispatch/signature"
)

// Key identifies one implementation of a generic function.
//
// Module is the same normalized identifier for registration and lookup.
// Keys derived by introspection use the defining package's import path.
type Key struct {
	// Module identifies where the implementation lives.
	Module string
	// Name is the fully-qualified name of the generic function.
	Name string
	// Signature discriminates between implementations of Name.
	Signature signature.Signature
}

// NewKey builds a Key from its parts.
func NewKey(module, name string, sig signature.Signature) Key {
	return Key{Module: module, Name: name, Signature: sig}
}

// Equal reports whether both keys have the same module, name, and signature.
func (k Key) Equal(other Key) bool {
	return k.Module == other.Module && k.Name == other.Name && k.Signature.Equal(other.Signature)
}

// String returns "module name(signature)" for diagnostics, e.g.
// "mathmod math.add(x int, y int, return int)".
func (k Key) String() string {
	return fmt.Sprintf("%s %s%s", k.Module, k.Name, k.Signature)
}

func (k Key) validate() error {
	if k.Module == "" {
		return fmt.Errorf("%w: module is required", ErrInvalidKey)
	}
	if k.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidKey)
	}
	return nil
}

func (k Key) tableKey() tableKey {
	return tableKey{module: k.Module, name: k.Name, signature: k.Signature.Canonical()}
}

// tableKey is the comparable form of Key used to index entries.
type tableKey struct {
	module    string
	name      string
	signature string
}

// Origin locates an implementation's definition. It is informational and
// never part of the Key.
type Origin struct {
	File string
	Line int
}

// IsZero reports whether the origin is unknown.
func (o Origin) IsZero() bool {
	return o.File == "" && o.Line == 0
}

// String returns "file:line", or "unknown" for the zero Origin.
func (o Origin) String() string {
	if o.IsZero() {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

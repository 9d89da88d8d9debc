package dispatch

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/dispatch/pkg/dispatch/signature"
)

// Sentinel errors for registration.
var (
	// ErrConflict indicates an implementation is already registered for the key.
	ErrConflict = errors.New("implementation already registered")

	// ErrInvalidKey indicates a key without a module or name.
	ErrInvalidKey = errors.New("invalid key")

	// ErrNilImplementation indicates a nil function or pointer was registered.
	ErrNilImplementation = errors.New("implementation is nil")
)

// Sentinel errors for dispatch.
var (
	// ErrDispatchMiss indicates no implementation matched and no fallback is set.
	ErrDispatchMiss = errors.New("no implementation for signature")

	// ErrSharedInitialized indicates the shared registry was configured after
	// it had already been built.
	ErrSharedInitialized = errors.New("shared registry already initialized")
)

// ConflictError reports a registration rejected because its key is taken.
// The existing entry is left untouched.
type ConflictError struct {
	// Key is the key that was being registered.
	Key Key
	// ExistingID is the registration ID holding the key.
	ExistingID string
	// Existing is where the holding implementation was defined, if known.
	Existing Origin
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("register %s: %v (registration %s at %s)",
		e.Key, ErrConflict, e.ExistingID, e.Existing)
}

// Unwrap returns ErrConflict for errors.Is support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// MissError reports a lookup with no matching implementation and no fallback.
type MissError struct {
	Module    string
	Name      string
	Signature signature.Signature
}

// Error implements the error interface.
func (e *MissError) Error() string {
	return fmt.Sprintf("function %s (module %s) has no implementation for signature %s",
		e.Name, e.Module, e.Signature)
}

// Unwrap returns ErrDispatchMiss for errors.Is support.
func (e *MissError) Unwrap() error {
	return ErrDispatchMiss
}

// PanicError captures a panic raised by an invoked implementation.
type PanicError struct {
	// Key identifies the implementation that panicked.
	Key Key
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Key, e.Value)
}

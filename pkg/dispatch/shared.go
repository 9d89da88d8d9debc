package dispatch

import "sync"

var (
	sharedMu sync.Mutex
	shared   *Registry[Func]
)

// Shared returns the process-wide registry of Func implementations.
//
// Initialization order: the shared registry is built on the first call to
// Shared, ConfigureShared or ConfigureSharedFallback, whichever comes first.
// A program that wants options (a logger, metrics, a fallback) must call one
// of the Configure functions from main before any code calls Shared, which
// means packages should not register into Shared from init functions unless
// defaults are acceptable.
func Shared() *Registry[Func] {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		shared = New[Func]()
	}
	return shared
}

// ConfigureShared builds the shared registry with opts.
// Returns ErrSharedInitialized if it has already been built.
func ConfigureShared(opts ...Option) error {
	return configureShared(func() *Registry[Func] {
		return New[Func](opts...)
	})
}

// ConfigureSharedFallback builds the shared registry with a fallback.
// Returns ErrSharedInitialized if it has already been built.
func ConfigureSharedFallback(fallback Func, opts ...Option) error {
	return configureShared(func() *Registry[Func] {
		return NewWithFallback(fallback, opts...)
	})
}

func configureShared(build func() *Registry[Func]) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		return ErrSharedInitialized
	}
	shared = build()
	return nil
}

package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/dispatch/pkg/dispatch/catalog"
	"github.com/randalmurphal/dispatch/pkg/dispatch/observability"
	"github.com/randalmurphal/dispatch/pkg/dispatch/signature"
	"github.com/randalmurphal/dispatch/pkg/dispatch/table"
)

// Registration is one admitted implementation.
type Registration[F any] struct {
	// ID uniquely identifies the registration.
	ID string
	// Key is the dispatch key the implementation answers to.
	Key Key
	// Impl is the implementation.
	Impl F
	// Origin is where Impl was defined, when known.
	Origin Origin
	// RegisteredAt is when the registration succeeded.
	RegisteredAt time.Time
}

// Registry maps (module, name, signature) keys to implementations of type F.
//
// Entries are append-only: a key is registered at most once and is never
// replaced or removed. A Registry is safe for concurrent use.
type Registry[F any] struct {
	id      string
	name    string
	entries *table.Table[tableKey, *Registration[F]]

	fallback    F
	hasFallback bool

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	catalog catalog.Store
}

// New creates an empty registry without a fallback. Lookups that match no
// entry fail with a *MissError.
func New[F any](opts ...Option) *Registry[F] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	id := uuid.NewString()
	return &Registry[F]{
		id:      id,
		name:    s.name,
		entries: table.New[tableKey, *Registration[F]](),
		logger:  observability.EnrichLogger(s.logger, s.name, id),
		metrics: s.metrics,
		spans:   s.spans,
		catalog: s.catalog,
	}
}

// NewWithFallback creates an empty registry whose lookups return fallback
// when no entry matches. A nil fallback is treated as no fallback.
func NewWithFallback[F any](fallback F, opts ...Option) *Registry[F] {
	r := New[F](opts...)
	if !isNil(fallback) {
		r.fallback = fallback
		r.hasFallback = true
	}
	return r
}

// ID returns the registry's unique instance ID.
func (r *Registry[F]) ID() string {
	return r.id
}

// Name returns the registry's name.
func (r *Registry[F]) Name() string {
	return r.name
}

// Fallback returns the fallback implementation and whether one is set.
func (r *Registry[F]) Fallback() (F, bool) {
	return r.fallback, r.hasFallback
}

// Register admits impl under key.
//
// Fails with a *ConflictError (matching ErrConflict) when the key is already
// registered; the existing entry is kept. Of several concurrent registrations
// of one key, exactly one succeeds.
func (r *Registry[F]) Register(key Key, impl F) error {
	return r.register(key, impl, Origin{})
}

// RegisterFunc admits a function implementation, deriving its module,
// signature and origin with signature.Describe. paramNames label the
// parameters in order. An empty name uses the function's own name.
// Returns the derived key.
//
// For functions in package main the derived module is "main" in a built
// binary but the package import path under go test. Use Register with an
// explicit Key when registrations must be found by module across build
// modes.
//
// Example:
//
//	func addInts(x, y int) int { return x + y }
//
//	key, err := r.RegisterFunc("math.add", addInts, "x", "y")
//	// key.Module is the import path of the package defining addInts
func (r *Registry[F]) RegisterFunc(name string, impl F, paramNames ...string) (Key, error) {
	desc, err := signature.Describe(impl, paramNames...)
	if err != nil {
		return Key{}, fmt.Errorf("describe implementation: %w", err)
	}
	if name == "" {
		name = desc.Name
	}

	key := Key{Module: desc.Module, Name: name, Signature: desc.Signature}
	if err := r.register(key, impl, Origin{File: desc.File, Line: desc.Line}); err != nil {
		return key, err
	}
	return key, nil
}

// MustRegister is like Register but panics on error.
// Intended for tables built during package initialization.
func (r *Registry[F]) MustRegister(key Key, impl F) {
	if err := r.Register(key, impl); err != nil {
		panic(fmt.Sprintf("dispatch: %v", err))
	}
}

func (r *Registry[F]) register(key Key, impl F, origin Origin) error {
	ctx := context.Background()

	if err := key.validate(); err != nil {
		r.metrics.RecordRegistration(ctx, key.Name, observability.ResultInvalid)
		return err
	}
	if isNil(impl) {
		r.metrics.RecordRegistration(ctx, key.Name, observability.ResultInvalid)
		return fmt.Errorf("register %s: %w", key, ErrNilImplementation)
	}

	reg := &Registration[F]{
		ID:           uuid.NewString(),
		Key:          key,
		Impl:         impl,
		Origin:       origin,
		RegisteredAt: time.Now().UTC(),
	}

	display := key.Signature.String()
	existing, inserted := r.entries.InsertOrGet(key.tableKey(), reg)
	if !inserted {
		observability.LogConflict(r.logger, key.Module, key.Name, display, existing.ID)
		r.metrics.RecordRegistration(ctx, key.Name, observability.ResultConflict)
		return &ConflictError{Key: key, ExistingID: existing.ID, Existing: existing.Origin}
	}

	observability.LogRegistered(r.logger, key.Module, key.Name, display, reg.ID)
	r.metrics.RecordRegistration(ctx, key.Name, observability.ResultRegistered)
	r.record(reg)
	return nil
}

// record writes a registration to the catalog, if one is configured.
func (r *Registry[F]) record(reg *Registration[F]) {
	if r.catalog == nil {
		return
	}

	canonical := reg.Key.Signature.Canonical()
	prev, err := r.catalog.Get(r.name, reg.Key.Module, reg.Key.Name, canonical)
	if err == nil && prev.RegistryID != r.id {
		observability.LogCatalogReplaced(r.logger, reg.Key.Module, reg.Key.Name, reg.Key.Signature.String(), prev.RegistryID)
	}

	err = r.catalog.Save(catalog.Record{
		ID:           reg.ID,
		Registry:     r.name,
		RegistryID:   r.id,
		Module:       reg.Key.Module,
		Name:         reg.Key.Name,
		Signature:    canonical,
		Display:      reg.Key.Signature.String(),
		File:         reg.Origin.File,
		Line:         reg.Origin.Line,
		RegisteredAt: reg.RegisteredAt,
	})
	if err != nil {
		observability.LogCatalogError(r.logger, reg.Key.Name, "save", err)
	}
}

// Get returns the implementation registered for exactly (module, name, sig).
//
// When nothing matches, Get returns the fallback if one is set, and otherwise
// fails with a *MissError (matching ErrDispatchMiss) naming the function and
// signature. Matching is exact: there is no coercion or ranking.
func (r *Registry[F]) Get(module, name string, sig signature.Signature) (F, error) {
	impl, _, err := r.resolve(context.Background(), Key{Module: module, Name: name, Signature: sig})
	return impl, err
}

// GetKey is Get with the parts bundled in a Key.
func (r *Registry[F]) GetKey(key Key) (F, error) {
	impl, _, err := r.resolve(context.Background(), key)
	return impl, err
}

// resolve looks key up and reports which lookup outcome produced the result.
func (r *Registry[F]) resolve(ctx context.Context, key Key) (F, string, error) {
	if reg, ok := r.entries.Get(key.tableKey()); ok {
		r.metrics.RecordLookup(ctx, key.Name, observability.OutcomeHit)
		return reg.Impl, observability.OutcomeHit, nil
	}

	if r.hasFallback {
		observability.LogFallback(r.logger, key.Module, key.Name, key.Signature.String())
		r.metrics.RecordLookup(ctx, key.Name, observability.OutcomeFallback)
		return r.fallback, observability.OutcomeFallback, nil
	}

	observability.LogMiss(r.logger, key.Module, key.Name, key.Signature.String())
	r.metrics.RecordLookup(ctx, key.Name, observability.OutcomeMiss)
	var zero F
	return zero, observability.OutcomeMiss, &MissError{Module: key.Module, Name: key.Name, Signature: key.Signature}
}

// Lookup returns the implementation registered for exactly (module, name, sig).
// Unlike Get it never uses the fallback and records no metrics.
func (r *Registry[F]) Lookup(module, name string, sig signature.Signature) (F, bool) {
	reg, ok := r.entries.Get(tableKey{module: module, name: name, signature: sig.Canonical()})
	if !ok {
		var zero F
		return zero, false
	}
	return reg.Impl, true
}

// Has returns true if key is registered.
func (r *Registry[F]) Has(key Key) bool {
	return r.entries.Has(key.tableKey())
}

// Len returns the number of registered implementations.
func (r *Registry[F]) Len() int {
	return r.entries.Len()
}

// Registrations returns a snapshot of all registrations ordered by module,
// name and signature.
func (r *Registry[F]) Registrations() []Registration[F] {
	regs := r.entries.Values()
	out := make([]Registration[F], len(regs))
	for i, reg := range regs {
		out[i] = *reg
	}
	sort.Slice(out, func(i, j int) bool {
		return lessKey(out[i].Key, out[j].Key)
	})
	return out
}

// Signatures returns the signatures registered for one generic function,
// ordered by their canonical encoding.
func (r *Registry[F]) Signatures(module, name string) []signature.Signature {
	var sigs []signature.Signature
	r.entries.Range(func(k tableKey, reg *Registration[F]) bool {
		if k.module == module && k.name == name {
			sigs = append(sigs, reg.Key.Signature)
		}
		return true
	})
	sort.Slice(sigs, func(i, j int) bool {
		return sigs[i].Canonical() < sigs[j].Canonical()
	})
	return sigs
}

func lessKey(a, b Key) bool {
	if a.Module != b.Module {
		return a.Module < b.Module
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Signature.Canonical() < b.Signature.Canonical()
}

// isNil reports whether v is nil or a nil func, pointer, map, chan, slice or
// interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

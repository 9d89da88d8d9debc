package dispatch

import (
	"log/slog"

	"github.com/randalmurphal/dispatch/pkg/dispatch/catalog"
	"github.com/randalmurphal/dispatch/pkg/dispatch/observability"
)

// DefaultName is the registry name used when WithName is not given.
const DefaultName = "default"

// settings holds registry configuration.
type settings struct {
	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	catalog catalog.Store
}

func defaultSettings() settings {
	return settings{
		name:    DefaultName,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Registry.
type Option func(*settings)

// WithName names the registry in logs and catalog records.
// Default: "default"
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the logger. The logger is enriched with the registry name
// and ID. Default: nil (no logging).
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	r := dispatch.New[dispatch.Func](dispatch.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *settings) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used by Invoke.
// Default: observability.NoopSpanManager{}
func WithSpanManager(sm observability.SpanManager) Option {
	return func(s *settings) {
		if sm != nil {
			s.spans = sm
		}
	}
}

// WithCatalog records every successful registration in store.
// Catalog failures are logged and never fail a registration.
//
// Records are keyed by registry name. Registries sharing a store should use
// distinct names (WithName); otherwise a registration replaces the record
// another registry made for the same key, which is logged as a warning.
// The registry does not close the store.
func WithCatalog(store catalog.Store) Option {
	return func(s *settings) {
		s.catalog = store
	}
}

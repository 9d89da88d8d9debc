package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Lookup outcomes recorded by RecordLookup.
const (
	OutcomeHit      = "hit"
	OutcomeFallback = "fallback"
	OutcomeMiss     = "miss"
)

// Registration results recorded by RecordRegistration.
const (
	ResultRegistered = "registered"
	ResultConflict   = "conflict"
	ResultInvalid    = "invalid"
)

// MetricsRecorder records dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegistration records a registration attempt and its result.
	RecordRegistration(ctx context.Context, name, result string)

	// RecordLookup records a lookup and whether it hit, fell back, or missed.
	RecordLookup(ctx context.Context, name, outcome string)

	// RecordInvocation records an invocation with its duration and error status.
	RecordInvocation(ctx context.Context, name string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations metric.Int64Counter
	lookups       metric.Int64Counter
	invocations   metric.Int64Counter
	invokeLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("dispatch")

	registrations, err := meter.Int64Counter("dispatch.registrations",
		metric.WithDescription("Number of registration attempts"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter("dispatch.lookups",
		metric.WithDescription("Number of dispatch lookups"),
	)
	if err != nil {
		return nil, err
	}

	invocations, err := meter.Int64Counter("dispatch.invocations",
		metric.WithDescription("Number of dispatched invocations"),
	)
	if err != nil {
		return nil, err
	}

	invokeLatency, err := meter.Float64Histogram("dispatch.invoke.latency_ms",
		metric.WithDescription("Invocation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations: registrations,
		lookups:       lookups,
		invocations:   invocations,
		invokeLatency: invokeLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRegistration records a registration attempt.
func (m *otelMetrics) RecordRegistration(ctx context.Context, name, result string) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("function", name),
		attribute.String("result", result),
	))
}

// RecordLookup records a lookup.
func (m *otelMetrics) RecordLookup(ctx context.Context, name, outcome string) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("function", name),
		attribute.String("outcome", outcome),
	))
}

// RecordInvocation records an invocation.
func (m *otelMetrics) RecordInvocation(ctx context.Context, name string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("function", name),
		attribute.Bool("success", err == nil),
	)
	m.invocations.Add(ctx, 1, attrs)
	m.invokeLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs a tracer provider backed by an in-memory exporter.
func setupTracingTest(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	})

	return exporter
}

func TestStartInvokeSpan(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	ctx, span := sm.StartInvokeSpan(context.Background(), "mathmod", "math.add", "(x int)")
	require.NotNil(t, span)
	assert.True(t, span.SpanContext().IsValid())
	assert.NotEqual(t, context.Background(), ctx)
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "dispatch.invoke", s.Name)
	assert.Equal(t, codes.Ok, s.Status.Code)

	attrs := make(map[string]string)
	for _, attr := range s.Attributes {
		attrs[string(attr.Key)] = attr.Value.AsString()
	}
	assert.Equal(t, "mathmod", attrs["dispatch.module"])
	assert.Equal(t, "math.add", attrs["dispatch.function"])
	assert.Equal(t, "(x int)", attrs["dispatch.signature"])
}

func TestEndSpanWithError(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	_, span := sm.StartInvokeSpan(context.Background(), "m", "f", "()")
	sm.EndSpanWithError(span, errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)
	require.NotEmpty(t, spans[0].Events, "error should be recorded as an event")
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestEndSpanWithErrorNilSpan(t *testing.T) {
	sm := NewSpanManager()
	assert.NotPanics(t, func() {
		sm.EndSpanWithError(nil, errors.New("boom"))
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	ctx, span := sm.StartInvokeSpan(context.Background(), "m", "f", "()")
	sm.AddSpanEvent(ctx, "dispatch.fallback", attribute.String("reason", "no match"))
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "dispatch.fallback", spans[0].Events[0].Name)
}

func TestAddSpanEventWithoutSpan(t *testing.T) {
	sm := NewSpanManager()
	assert.NotPanics(t, func() {
		sm.AddSpanEvent(context.Background(), "orphan")
	})
}

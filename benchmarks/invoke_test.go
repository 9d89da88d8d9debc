package benchmarks

import (
	"context"
	"testing"

	"github.com/randalmurphal/dispatch/pkg/dispatch"
	"github.com/randalmurphal/dispatch/pkg/dispatch/observability"
)

// BenchmarkInvoke measures a dispatched call without observability.
func BenchmarkInvoke(b *testing.B) {
	r := buildRegistry(10)
	key := dispatch.NewKey("benchmod", "bench.f", sigFor(5))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dispatch.Invoke(ctx, r, key, i)
	}
}

// BenchmarkInvoke_WithObservability measures a dispatched call with OTel
// metrics and tracing against the global (no-op) providers.
func BenchmarkInvoke_WithObservability(b *testing.B) {
	r := buildRegistry(10,
		dispatch.WithMetrics(observability.NewMetricsRecorder()),
		dispatch.WithSpanManager(observability.NewSpanManager()),
	)
	key := dispatch.NewKey("benchmod", "bench.f", sigFor(5))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dispatch.Invoke(ctx, r, key, i)
	}
}

// BenchmarkDirectCall is the baseline for BenchmarkInvoke.
func BenchmarkDirectCall(b *testing.B) {
	var fn dispatch.Func = noopImpl
	for i := 0; i < b.N; i++ {
		_, _ = fn(i)
	}
}

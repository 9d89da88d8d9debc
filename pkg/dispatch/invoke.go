package dispatch

import (
	"context"
	"runtime/debug"

	"github.com/randalmurphal/dispatch/pkg/dispatch/observability"
	"go.opentelemetry.io/otel/attribute"
)

// Func is the unary implementation shape used by the shared registry and
// Invoke.
type Func func(arg any) (any, error)

// Invoke resolves key in r and calls the implementation with arg.
//
// Resolution follows Get, so the fallback is used when set. A miss returns
// the *MissError without calling anything. A panic in the implementation is
// returned as a *PanicError. When r has a span manager, the call runs inside
// a "dispatch.invoke" span.
func Invoke(ctx context.Context, r *Registry[Func], key Key, arg any) (any, error) {
	ctx, span := r.spans.StartInvokeSpan(ctx, key.Module, key.Name, key.Signature.String())

	fn, outcome, err := r.resolve(ctx, key)
	if err != nil {
		r.spans.EndSpanWithError(span, err)
		return nil, err
	}
	r.spans.AddSpanEvent(ctx, "dispatch.resolved", attribute.String("outcome", outcome))

	done := observability.TimedOperation()
	out, err := call(key, fn, arg)
	elapsed := done()

	r.metrics.RecordInvocation(ctx, key.Name, elapsed, err)
	if err != nil {
		observability.LogInvokeError(r.logger, key.Name, err, float64(elapsed.Microseconds())/1000)
	}
	r.spans.EndSpanWithError(span, err)
	return out, err
}

func call(key Key, fn Func, arg any) (out any, err error) {
	defer func() {
		if v := recover(); v != nil {
			out = nil
			err = &PanicError{Key: key, Value: v, Stack: string(debug.Stack())}
		}
	}()
	return fn(arg)
}

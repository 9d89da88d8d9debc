/*
Package dispatch provides a dispatch table for ad-hoc polymorphism: several
implementations of one generic function are registered under distinct
signatures, and callers fetch the implementation matching a signature at call
time.

# Overview

A Registry maps a Key to an implementation. A Key is the triple
(module, name, signature):

  - Module identifies where the implementation lives. The same normalized
    identifier is used to register and to look up; keys derived by
    introspection use the defining package's import path.
  - Name is the fully-qualified name of the generic function.
  - Signature is the ordered list of (name, type) pairs that tells the
    implementations of Name apart. See package signature.

Registration is append-only. Registering a key twice fails with a
*ConflictError and leaves the first implementation in place. Lookup is exact:
there is no coercion and no ranking between candidate signatures.

# Basic Usage

	sig := signature.New(
	    signature.P("x", "int"),
	    signature.P("y", "int"),
	    signature.P("return", "int"),
	)

	r := dispatch.New[func(x, y int) int]()
	err := r.Register(dispatch.NewKey("mathmod", "math.add", sig), func(x, y int) int {
	    return x + y
	})

	add, err := r.Get("mathmod", "math.add", sig)
	if err != nil {
	    // *MissError: no implementation and no fallback
	}
	fmt.Println(add(1, 2)) // 3

# Registering Functions

RegisterFunc derives module, signature and definition site from a function
value through signature.Describe; only the generic function's name is given:

	func addInts(x, y int) int { return x + y }

	key, err := r.RegisterFunc("math.add", addInts, "x", "y")

# Fallback

A registry built with NewWithFallback answers every unmatched lookup with the
fallback instead of a *MissError. The fallback can only be supplied at
construction.

	r := dispatch.NewWithFallback(func(x, y int) int { return 0 })

# Invocation

For the unary Func shape, Invoke resolves and calls in one step, recording
metrics and an OpenTelemetry span when the registry is configured with them:

	out, err := dispatch.Invoke(ctx, r, key, arg)

# Shared Registry

Shared returns a process-wide Registry[Func]. It is built on first use;
configure it from main with ConfigureShared before anything calls Shared.

# Observability

Options wire in a slog logger (WithLogger), OpenTelemetry metrics
(WithMetrics) and tracing (WithSpanManager), and a catalog of registrations
(WithCatalog). All are off by default. OptionsFromConfig builds the same
options from a YAML or JSON settings file.

# Thread Safety

All Registry methods are safe for concurrent use. Of several concurrent
registrations of one key, exactly one succeeds.
*/
package dispatch

/*
Package signature describes the dispatch discriminator of a generic function:
an ordered sequence of (name, type) pairs covering parameters and results.

# Overview

A Signature is immutable once built. Two signatures are equal when they hold
the same pairs in the same order, and Canonical returns an encoding that is
equal exactly when the signatures are, so it can key a map.

# Building Signatures

Spell types explicitly:

	sig := signature.New(
	    signature.P("x", "int"),
	    signature.P("y", "int"),
	    signature.P(signature.ReturnName, "int"),
	)

Or let TypeName produce the same spelling the introspection helpers use:

	sig := signature.New(
	    signature.P("x", signature.TypeName[int]()),
	    signature.P("return", signature.TypeName[int]()),
	)

# Introspection

Of derives a signature from a Go function value. Go does not keep parameter
names at runtime, so names are passed in order; missing names become argN.
A single result is named "return", several results are named return0,
return1, and so on.

	func add(x, y int) int { return x + y }

	sig, _ := signature.Of(add, "x", "y")
	fmt.Println(sig) // (x int, y int, return int)

Describe additionally reports where the function was defined: its package
import path (the module identifier used for dispatch), its name inside the
package, and its source file and line.
*/
package signature

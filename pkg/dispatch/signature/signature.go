package signature

import (
	"reflect"
	"strconv"
	"strings"
)

// ReturnName names the pair describing a function's single result.
const ReturnName = "return"

// Param is one (name, declared type) pair of a signature.
type Param struct {
	Name string
	Type string
}

// P is shorthand for Param{Name: name, Type: typ}.
func P(name, typ string) Param {
	return Param{Name: name, Type: typ}
}

// String returns "name type".
func (p Param) String() string {
	return p.Name + " " + p.Type
}

// Signature is an immutable, ordered list of parameter and result pairs.
// The zero value is the empty signature.
type Signature struct {
	params []Param
}

// New creates a Signature from params in order.
// The slice is copied, so later changes by the caller have no effect.
func New(params ...Param) Signature {
	if len(params) == 0 {
		return Signature{}
	}
	cp := make([]Param, len(params))
	copy(cp, params)
	return Signature{params: cp}
}

// Params returns a copy of the pairs in order.
func (s Signature) Params() []Param {
	if len(s.params) == 0 {
		return nil
	}
	cp := make([]Param, len(s.params))
	copy(cp, s.params)
	return cp
}

// Len returns the number of pairs.
func (s Signature) Len() int {
	return len(s.params)
}

// Equal reports whether both signatures hold the same pairs in the same order.
func (s Signature) Equal(other Signature) bool {
	if len(s.params) != len(other.params) {
		return false
	}
	for i := range s.params {
		if s.params[i] != other.params[i] {
			return false
		}
	}
	return true
}

// Return returns the pair named ReturnName, if present.
func (s Signature) Return() (Param, bool) {
	for _, p := range s.params {
		if p.Name == ReturnName {
			return p, true
		}
	}
	return Param{}, false
}

// Canonical returns a deterministic encoding of the signature.
// Every name and type is quoted, so distinct signatures never share an
// encoding. The empty signature encodes as "".
func (s Signature) Canonical() string {
	if len(s.params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range s.params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(p.Name))
		b.WriteByte(':')
		b.WriteString(strconv.Quote(p.Type))
	}
	return b.String()
}

// String returns a readable form such as "(x int, y int, return int)".
func (s Signature) String() string {
	parts := make([]string, len(s.params))
	for i, p := range s.params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TypeName returns the type spelling used by Of for T, e.g. "int",
// "[]string" or "*bytes.Buffer".
func TypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

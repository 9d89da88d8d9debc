package signature

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Sentinel errors for introspection.
var (
	// ErrNotFunc indicates the value passed for introspection is not a non-nil function.
	ErrNotFunc = errors.New("value is not a function")

	// ErrTooManyNames indicates more parameter names were given than the function has parameters.
	ErrTooManyNames = errors.New("more parameter names than parameters")

	// ErrUnresolved indicates the runtime could not resolve the function's symbol.
	ErrUnresolved = errors.New("cannot resolve function symbol")
)

// Descriptor is everything introspection knows about a function value.
type Descriptor struct {
	// Module is the import path of the package defining the function.
	Module string
	// Name is the function's name inside its package, e.g. "add",
	// "(*Codec).Encode" or "init.func1".
	Name string
	// Signature is the derived dispatch signature.
	Signature Signature
	// File and Line locate the definition.
	File string
	Line int
}

// Of derives a Signature from a function value.
// names label the parameters in order; unnamed parameters become argN.
func Of(fn any, names ...string) (Signature, error) {
	if fn == nil {
		return Signature{}, ErrNotFunc
	}
	return FromType(reflect.TypeOf(fn), names...)
}

// FromType derives a Signature from a function type.
func FromType(t reflect.Type, names ...string) (Signature, error) {
	if t == nil || t.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("%w: %v", ErrNotFunc, t)
	}
	if len(names) > t.NumIn() {
		return Signature{}, fmt.Errorf("%w: %d names for %d parameters", ErrTooManyNames, len(names), t.NumIn())
	}

	params := make([]Param, 0, t.NumIn()+t.NumOut())
	for i := 0; i < t.NumIn(); i++ {
		name := fmt.Sprintf("arg%d", i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		typ := t.In(i).String()
		if t.IsVariadic() && i == t.NumIn()-1 {
			typ = "..." + t.In(i).Elem().String()
		}
		params = append(params, Param{Name: name, Type: typ})
	}

	for i := 0; i < t.NumOut(); i++ {
		name := ReturnName
		if t.NumOut() > 1 {
			name = fmt.Sprintf("%s%d", ReturnName, i)
		}
		params = append(params, Param{Name: name, Type: t.Out(i).String()})
	}

	return Signature{params: params}, nil
}

// Describe derives the signature and definition site of a function value.
//
// Module comes from the runtime symbol, so a function in package main reports
// "main" in a built binary and the package import path in a test binary.
func Describe(fn any, names ...string) (Descriptor, error) {
	sig, err := Of(fn, names...)
	if err != nil {
		return Descriptor{}, err
	}

	v := reflect.ValueOf(fn)
	if v.IsNil() {
		return Descriptor{}, fmt.Errorf("%w: nil %T", ErrNotFunc, fn)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return Descriptor{}, ErrUnresolved
	}

	module, name := SplitSymbol(rf.Name())
	file, line := rf.FileLine(rf.Entry())

	return Descriptor{
		Module:    module,
		Name:      name,
		Signature: sig,
		File:      file,
		Line:      line,
	}, nil
}

// SplitSymbol splits a runtime symbol such as
// "github.com/acme/pkg.(*T).Method-fm" into its package import path and the
// name inside the package.
func SplitSymbol(symbol string) (module, name string) {
	lastSlash := strings.LastIndexByte(symbol, '/')
	dot := strings.IndexByte(symbol[lastSlash+1:], '.')
	if dot < 0 {
		return "", symbol
	}
	dot += lastSlash + 1

	// The linker escapes dots in the last path element, e.g. "yaml%2ev3".
	module = strings.ReplaceAll(symbol[:dot], "%2e", ".")
	name = strings.TrimSuffix(symbol[dot+1:], "-fm")
	return module, name
}

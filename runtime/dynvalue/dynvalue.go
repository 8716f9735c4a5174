// Package dynvalue specifies the host scripting runtime's dynamic value
// type at interface depth only. spec.md §2 treats the host object model as
// an opaque external collaborator; this package gives the code generator
// something concrete to emit conversions against (DynValue.ToInt,
// FromBuffer, …) without absorbing any particular host runtime's object
// model into this repository.
package dynvalue

import "github.com/regionc/regionc/runtime/buffer"

// DynValue is the generated extension module's dynamic value carrier: a
// value that can hold a native int32, a Buffer handle, or a list of
// further DynValues, the three shapes spec.md §3 lists for DynValue.
type DynValue interface {
	// ToInt returns the value as an int32, and false if it does not hold
	// one.
	ToInt() (int32, bool)
	// ToBuffer returns the value as a *buffer.Buffer, and false if it does
	// not hold one.
	ToBuffer() (*buffer.Buffer, bool)
	// ToList returns the value as a slice of DynValue, and false if it
	// does not hold one.
	ToList() ([]DynValue, bool)
	// ToString returns the value as a string, and false if it does not
	// hold one. Strings aren't part of spec.md §1's untyped-arithmetic
	// core, but StringLiteral is a surface expression the generator must
	// still emit something for.
	ToString() (string, bool)
	// Truthy reports whether the value is truthy, for If/IfElse condition
	// testing.
	Truthy() bool
	// String renders the value for diagnostics.
	String() string
}

// Factory constructs DynValues from native Go values. The code generator
// emits calls against a Factory rather than a concrete constructor so a
// real host runtime's own dynamic-value package can be swapped in without
// touching generated code shape.
type Factory interface {
	FromInt(int32) DynValue
	FromBuffer(*buffer.Buffer) DynValue
	FromList([]DynValue) DynValue
	FromString(string) DynValue
	Uninitialized() DynValue
}

// MustInt unwraps v as an int32, panicking if it does not hold one. This
// is the coercion spec.md §4.4 calls for at every site a native integer
// is required — Binary operands and a buffer method's size/index
// arguments.
func MustInt(v DynValue) int32 {
	n, ok := v.ToInt()
	if !ok {
		panic("dynvalue: expected an int, got " + v.String())
	}
	return n
}

// MustBuffer unwraps v as a *buffer.Buffer, panicking if it does not hold
// one — the "coerce obj to Buffer" step of MethodCall emission.
func MustBuffer(v DynValue) *buffer.Buffer {
	b, ok := v.ToBuffer()
	if !ok {
		panic("dynvalue: expected a buffer, got " + v.String())
	}
	return b
}

// BoolToInt renders a comparison result as the int32 the region language
// uses in place of a boolean literal: 1 for true, 0 for false.
func BoolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

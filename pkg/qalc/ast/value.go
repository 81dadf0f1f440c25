package ast

import (
	"strconv"
	"strings"

	"qalc-hq/qalc/pkg/linalg"
)

// Kind is the type tag of a runtime Value.
type Kind int

const (
	KindInteger Kind = iota // Exact integer
	KindComplex             // Single-precision complex scalar
	KindMatrix              // Dense complex matrix
	KindList                // Ordered list of values
)

// NumKinds is the number of value kinds. It sizes dispatch tables.
const NumKinds = 4

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindComplex:
		return "complex"
	case KindMatrix:
		return "matrix"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a tagged runtime value. Exactly one payload is meaningful,
// selected by Kind. Values are immutable; operations return new values
// stamped with the Location of the operation that produced them.
type Value struct {
	kind     Kind
	integer  int
	complex  linalg.Complex
	matrix   *linalg.Matrix
	list     []Value
	location Location
}

// IntValue creates an integer value.
func IntValue(i int, loc Location) Value {
	return Value{kind: KindInteger, integer: i, location: loc}
}

// ComplexValue creates a complex value.
func ComplexValue(c linalg.Complex, loc Location) Value {
	return Value{kind: KindComplex, complex: c, location: loc}
}

// MatrixValue creates a matrix value.
func MatrixValue(m *linalg.Matrix, loc Location) Value {
	return Value{kind: KindMatrix, matrix: m, location: loc}
}

// ListValue creates a list value. The slice is copied.
func ListValue(items []Value, loc Location) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...), location: loc}
}

// Kind returns the type tag.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload.
func (v Value) Int() int { return v.integer }

// Complex returns the complex payload.
func (v Value) Complex() linalg.Complex { return v.complex }

// Matrix returns the matrix payload.
func (v Value) Matrix() *linalg.Matrix { return v.matrix }

// List returns a copy of the list payload.
func (v Value) List() []Value { return append([]Value(nil), v.list...) }

// Len returns the number of list items, or 0 for non-list values.
func (v Value) Len() int { return len(v.list) }

// Location returns where the value was produced.
func (v Value) Location() Location { return v.location }

// WithLocation returns a copy of v stamped with loc.
func (v Value) WithLocation(loc Location) Value {
	v.location = loc
	return v
}

// AsComplex widens integers and complex values to a complex scalar.
func (v Value) AsComplex() (linalg.Complex, bool) {
	switch v.kind {
	case KindInteger:
		return linalg.Real(float32(v.integer)), true
	case KindComplex:
		return v.complex, true
	}
	return linalg.Complex{}, false
}

// Equal reports whether v and o hold the same kind and payload. Locations
// are ignored.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.integer == o.integer
	case KindComplex:
		return v.complex == o.complex
	case KindMatrix:
		return v.matrix.Equal(o.matrix)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String formats the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.Itoa(v.integer)
	case KindComplex:
		return v.complex.String()
	case KindMatrix:
		if v.matrix == nil {
			return "[]"
		}
		return v.matrix.String()
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "<invalid>"
}

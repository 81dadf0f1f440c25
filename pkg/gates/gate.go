package gates

import (
	"fmt"
	"strconv"
	"strings"

	"qalc-hq/qalc/pkg/linalg"
)

// Gate types with a fixed transform.
const (
	TypeI     = "i"
	TypeH     = "h"
	TypeX     = "x"
	TypeY     = "y"
	TypeZ     = "z"
	TypeS     = "s"
	TypeT     = "t"
	TypeSWAP  = "swap"
	TypeCNOT  = "cnot"
	TypeCCNOT = "ccnot"
	TypeMap   = "map"
)

// DuplicateIndexError reports a gate whose qubit indices are not pairwise
// distinct.
type DuplicateIndexError struct {
	Indices []int
}

// Error implements the error interface.
func (e *DuplicateIndexError) Error() string {
	return "Expected all different indices " + FormatIndices(e.Indices)
}

// FormatIndices formats indices as "[a, b, c]".
func FormatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// QuGate is an elementary transform applied to an ordered list of qubits.
// Transform has shape 2^k × 2^k where k = len(Indices); local qubit j of the
// transform is system qubit Indices[j].
type QuGate struct {
	Type      string
	Indices   []int
	Transform *linalg.Matrix
}

// NewGate creates a gate with an explicit transform.
func NewGate(typ string, transform *linalg.Matrix, indices ...int) (*QuGate, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("gate %s: no qubit indices", typ)
	}
	if err := CheckIndices(indices); err != nil {
		return nil, err
	}
	size := 1 << len(indices)
	if transform == nil || transform.Rows() != size || transform.Cols() != size {
		got := "nil"
		if transform != nil {
			got = transform.Shape()
		}
		return nil, fmt.Errorf("gate %s: transform shape %s does not match %d qubits", typ, got, len(indices))
	}
	return &QuGate{
		Type:      typ,
		Indices:   append([]int(nil), indices...),
		Transform: transform,
	}, nil
}

// Gate creates one of the named gates (i, h, x, y, z, s, t, swap, cnot, ccnot).
func Gate(typ string, indices ...int) (*QuGate, error) {
	name := strings.ToLower(typ)
	transform, arity, ok := namedTransform(name)
	if !ok {
		return nil, fmt.Errorf("unknown gate type %q", typ)
	}
	if len(indices) != arity {
		return nil, fmt.Errorf("gate %s requires %d indices: actual (%d)", name, arity, len(indices))
	}
	return NewGate(name, transform, indices...)
}

// NewMapGate creates a permutation gate from a mapper over len(indices) qubits.
func NewMapGate(mapper BitStateMapper, indices ...int) (*QuGate, error) {
	if mapper.NumBits() != len(indices) {
		return nil, fmt.Errorf("gate map: mapper width %d does not match %d indices", mapper.NumBits(), len(indices))
	}
	if err := mapper.Validate(); err != nil {
		return nil, err
	}
	transform, err := linalg.Permute(mapper.Permutation())
	if err != nil {
		return nil, err
	}
	return NewGate(TypeMap, transform, indices...)
}

// IsNamed reports whether typ is a gate type accepted by Gate.
func IsNamed(typ string) bool {
	_, _, ok := namedTransform(strings.ToLower(typ))
	return ok
}

// Arity returns the number of qubits a named gate acts on.
func Arity(typ string) (int, bool) {
	_, arity, ok := namedTransform(strings.ToLower(typ))
	return arity, ok
}

func namedTransform(name string) (*linalg.Matrix, int, bool) {
	switch name {
	case TypeI:
		return linalg.I(), 1, true
	case TypeH:
		return linalg.H(), 1, true
	case TypeX:
		return linalg.X(), 1, true
	case TypeY:
		return linalg.Y(), 1, true
	case TypeZ:
		return linalg.Z(), 1, true
	case TypeS:
		return linalg.S(), 1, true
	case TypeT:
		return linalg.T(), 1, true
	case TypeSWAP:
		return linalg.SWAP(), 2, true
	case TypeCNOT:
		return linalg.CNOT(), 2, true
	case TypeCCNOT:
		return linalg.CCNOT(), 3, true
	}
	return nil, 0, false
}

// CheckIndices verifies that indices are non-negative and pairwise distinct.
func CheckIndices(indices []int) error {
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 {
			return fmt.Errorf("negative qubit index %d", idx)
		}
		if seen[idx] {
			return &DuplicateIndexError{Indices: append([]int(nil), indices...)}
		}
		seen[idx] = true
	}
	return nil
}

// NumBits returns the smallest register width containing every index.
func (g *QuGate) NumBits() int {
	n := 0
	for _, idx := range g.Indices {
		n = max(n, idx+1)
	}
	return n
}

// String returns the gate as "type[indices]".
func (g *QuGate) String() string {
	return g.Type + FormatIndices(g.Indices)
}

// ComputeMap returns the qubit order placing indices first and the remaining
// qubits after them in their original relative order.
func ComputeMap(numBits int, indices []int) ([]int, error) {
	if err := CheckIndices(indices); err != nil {
		return nil, err
	}
	used := make([]bool, numBits)
	order := make([]int, 0, numBits)
	for _, idx := range indices {
		if idx >= numBits {
			return nil, fmt.Errorf("qubit index %d out of range for %d qubits", idx, numBits)
		}
		used[idx] = true
		order = append(order, idx)
	}
	for q := 0; q < numBits; q++ {
		if !used[q] {
			order = append(order, q)
		}
	}
	return order, nil
}

// Build returns the 2^numBits × 2^numBits matrix applying the gate to its
// qubits and the identity to every other qubit. Products go through mp, or
// linalg.DefaultMultiplier() when mp is nil.
func (g *QuGate) Build(mp *linalg.Multiplier, numBits int) (*linalg.Matrix, error) {
	if mp == nil {
		mp = linalg.DefaultMultiplier()
	}
	order, err := ComputeMap(numBits, g.Indices)
	if err != nil {
		return nil, fmt.Errorf("gate %s: %w", g, err)
	}

	forward := NewBitStateMapper(numBits).Remap(order).Permutation()
	inverse := linalg.InversePermutation(forward)

	lifted := g.Transform
	if rest := numBits - len(g.Indices); rest > 0 {
		lifted = lifted.Cross(linalg.Identity(1 << rest))
	}

	pf, err := linalg.Permute(forward)
	if err != nil {
		return nil, err
	}
	pi, err := linalg.Permute(inverse)
	if err != nil {
		return nil, err
	}

	tmp, err := mp.Mul(lifted, pf)
	if err != nil {
		return nil, err
	}
	return mp.Mul(pi, tmp)
}

// Compose returns gate_n · … · gate_1 over numBits qubits. An empty circuit
// yields the identity. Every product, including the ones inside Build, goes
// through mp.
func Compose(mp *linalg.Multiplier, numBits int, circuit []*QuGate) (*linalg.Matrix, error) {
	if mp == nil {
		mp = linalg.DefaultMultiplier()
	}
	if numBits <= 0 {
		return nil, fmt.Errorf("invalid register width %d", numBits)
	}
	result := linalg.Identity(1 << numBits)
	for i, g := range circuit {
		m, err := g.Build(mp, numBits)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		result, err = mp.Mul(m, result)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return result, nil
}

// Width returns the smallest register width holding every gate of circuit.
func Width(circuit []*QuGate) int {
	n := 0
	for _, g := range circuit {
		n = max(n, g.NumBits())
	}
	return n
}

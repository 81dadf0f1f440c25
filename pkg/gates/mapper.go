package gates

import "fmt"

// BitStateMapper is a pure function over the basis-state indices of a
// numBits-wide register. Mappers are immutable; every combinator returns a
// new mapper applying the extra operation after the existing ones.
type BitStateMapper struct {
	numBits int
	fn      func(int) int
}

// NewBitStateMapper returns the identity mapper over numBits qubits.
func NewBitStateMapper(numBits int) BitStateMapper {
	return BitStateMapper{numBits: numBits, fn: func(s int) int { return s }}
}

// NumBits returns the register width.
func (m BitStateMapper) NumBits() int { return m.numBits }

// Map applies the mapper to a basis-state index.
func (m BitStateMapper) Map(state int) int {
	return m.fn(state)
}

// X flips qubit q.
func (m BitStateMapper) X(q int) BitStateMapper {
	mask := m.mask(q)
	return m.then(func(s int) int { return s ^ mask })
}

// CNOT flips target when control is set.
func (m BitStateMapper) CNOT(control, target int) BitStateMapper {
	c, t := m.mask(control), m.mask(target)
	return m.then(func(s int) int {
		if s&c != 0 {
			return s ^ t
		}
		return s
	})
}

// CCNOT flips target when both controls are set.
func (m BitStateMapper) CCNOT(control1, control2, target int) BitStateMapper {
	c := m.mask(control1) | m.mask(control2)
	t := m.mask(target)
	return m.then(func(s int) int {
		if s&c == c {
			return s ^ t
		}
		return s
	})
}

// SWAP exchanges qubits a and b.
func (m BitStateMapper) SWAP(a, b int) BitStateMapper {
	ma, mb := m.mask(a), m.mask(b)
	return m.then(func(s int) int {
		if (s&ma != 0) == (s&mb != 0) {
			return s
		}
		return s ^ ma ^ mb
	})
}

// Remap moves qubit order[p] to position p for every p. order must list every
// qubit of the register exactly once.
func (m BitStateMapper) Remap(order []int) BitStateMapper {
	masks := make([]int, len(order))
	for p, q := range order {
		masks[p] = m.mask(q)
	}
	return m.then(func(s int) int {
		out := 0
		for p, mask := range masks {
			if s&mask != 0 {
				out |= m.mask(p)
			}
		}
		return out
	})
}

// Permutation tabulates the mapper over all 2^numBits basis states.
func (m BitStateMapper) Permutation() []int {
	size := 1 << m.numBits
	p := make([]int, size)
	for s := 0; s < size; s++ {
		p[s] = m.fn(s)
	}
	return p
}

// Validate reports an error when the mapper is not a bijection.
func (m BitStateMapper) Validate() error {
	p := m.Permutation()
	seen := make([]bool, len(p))
	for s, t := range p {
		if t < 0 || t >= len(p) || seen[t] {
			return fmt.Errorf("bit state mapper is not a permutation: state %d maps to %d", s, t)
		}
		seen[t] = true
	}
	return nil
}

func (m BitStateMapper) then(next func(int) int) BitStateMapper {
	prev := m.fn
	return BitStateMapper{numBits: m.numBits, fn: func(s int) int { return next(prev(s)) }}
}

// mask returns the bit of qubit q, qubit 0 being the most significant.
func (m BitStateMapper) mask(q int) int {
	return 1 << (m.numBits - 1 - q)
}

package linalg

import "math"

var invSqrt2 = float32(1 / math.Sqrt2)

// Basis-state permutations of the multi-qubit gates, with qubit 0 as the most
// significant bit of the basis index.
var (
	cnotPermutation  = []int{0, 1, 3, 2}
	swapPermutation  = []int{0, 2, 1, 3}
	ccnotPermutation = []int{0, 1, 2, 3, 4, 5, 7, 6}
)

// I returns the single-qubit identity.
func I() *Matrix { return Identity(2) }

// X returns the Pauli-X (NOT) gate.
func X() *Matrix {
	return MustNew(2, 2, Zero, One, One, Zero)
}

// Y returns the Pauli-Y gate.
func Y() *Matrix {
	return MustNew(2, 2, Zero, ImaginaryUnit.Neg(), ImaginaryUnit, Zero)
}

// Z returns the Pauli-Z gate.
func Z() *Matrix {
	return MustNew(2, 2, One, Zero, Zero, Real(-1))
}

// H returns the Hadamard gate.
func H() *Matrix {
	return MustNew(2, 2, Real(invSqrt2), Real(invSqrt2), Real(invSqrt2), Real(-invSqrt2))
}

// S returns the phase gate diag(1, i).
func S() *Matrix {
	return MustNew(2, 2, One, Zero, Zero, ImaginaryUnit)
}

// T returns the π/8 gate diag(1, e^{iπ/4}).
func T() *Matrix {
	return MustNew(2, 2, One, Zero, Zero, NewComplex(invSqrt2, invSqrt2))
}

// CNOT returns the controlled-NOT gate (control qubit 0, target qubit 1).
func CNOT() *Matrix { return mustPermute(cnotPermutation) }

// SWAP returns the gate exchanging two qubits.
func SWAP() *Matrix { return mustPermute(swapPermutation) }

// CCNOT returns the Toffoli gate (controls qubits 0 and 1, target qubit 2).
func CCNOT() *Matrix { return mustPermute(ccnotPermutation) }

// CNOTPermutation returns a copy of the CNOT basis-state permutation.
func CNOTPermutation() []int { return append([]int(nil), cnotPermutation...) }

// SWAPPermutation returns a copy of the SWAP basis-state permutation.
func SWAPPermutation() []int { return append([]int(nil), swapPermutation...) }

// CCNOTPermutation returns a copy of the CCNOT basis-state permutation.
func CCNOTPermutation() []int { return append([]int(nil), ccnotPermutation...) }

func mustPermute(p []int) *Matrix {
	m, err := Permute(p)
	if err != nil {
		panic(err)
	}
	return m
}

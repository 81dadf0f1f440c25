// Package linalg provides the complex scalar and dense complex matrix algebra
// used by the qalc runtime.
//
// # Core Types
//
// Complex: immutable pair of float32 values (real, imaginary)
//
// Matrix: immutable dense row-major matrix of Complex cells
//
// Multiplier: matrix product policy deciding between the sequential kernel
// and a bounded pool of workers computing disjoint blocks of the output
//
// # Basic Usage
//
//	h := linalg.H()
//	ket0 := linalg.Column(linalg.One, linalg.Zero)
//	plus, err := h.Mul(ket0)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(plus)
//
// Every operation returns a new value; no Matrix is modified after it is
// constructed, so matrices can be shared freely between goroutines.
//
// # Permutations
//
// Permute builds the 0/1 matrix sending basis vector j to basis vector p[j].
// Together with InversePermutation it turns arbitrary relabelings of the basis
// states into unitary matrices, which is how gates acting on arbitrary qubits
// are lifted to full-system operators (see package gates).
//
// # Concurrency
//
// Matrix products whose estimated cost per worker exceeds the configured
// threshold are split into disjoint output blocks and computed in parallel.
// Both paths share the same per-cell accumulation, so results are identical
// bit for bit.
package linalg

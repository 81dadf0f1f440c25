// Package gates builds full-system unitary matrices from gates acting on a
// subset of qubits.
//
// Qubit 0 is the most significant bit of a basis-state index, so in a
// two-qubit system the state |1,0> has index 2.
//
// A QuGate carries its own small transform (2^k × 2^k for k target qubits).
// Build lifts it to numBits qubits by moving the gate's qubits to the front
// with a basis-state permutation P, tensoring the transform with an identity
// on the remaining qubits, and conjugating: P⁻¹ · (U ⊗ I) · P.
//
//	cnot, err := gates.Gate("cnot", 2, 0)
//	if err != nil {
//	    return err
//	}
//	full, err := cnot.Build(nil, 3) // 8x8 unitary, default multiplier
//
// Compose multiplies the full-width matrices of a circuit in applied order,
// last gate leftmost, matching left-multiplication of a column state vector.
package gates

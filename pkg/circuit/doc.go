// Package circuit loads quantum circuits described as YAML documents and
// computes their unitary.
//
// # Document Format
//
// A circuit names its register width and an ordered list of gates. Gate
// types are the named gates of package gates; indices are system qubits,
// qubit 0 being the most significant bit of a basis index.
//
//	name: bell
//	qubits: 2
//	input: 0
//	gates:
//	  - type: h
//	    indices: [0]
//	  - type: cnot
//	    indices: [0, 1]
//
// qubits may be omitted, in which case the register is the smallest one
// holding every gate. input is an optional basis index the unitary is
// applied to.
//
// # Usage
//
//	c, err := circuit.Load("bell.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	state, err := c.Apply(nil, c.Input)
//	for _, a := range circuit.Amplitudes(state, c.Qubits, 1e-6) {
//	    fmt.Println(a)
//	}
//
// Structural problems are reported together as an *errors.ErrorList whose
// entries render with a caret under the offending YAML line.
package circuit

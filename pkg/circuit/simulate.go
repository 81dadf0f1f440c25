package circuit

import (
	"fmt"

	"qalc-hq/qalc/pkg/gates"
	"qalc-hq/qalc/pkg/linalg"
)

// Amplitude is one basis component of a state vector.
type Amplitude struct {
	Index       int
	Bits        string // Basis label, qubit 0 first
	Value       linalg.Complex
	Probability float32
}

// String formats the amplitude as "|bits> value p=probability".
func (a Amplitude) String() string {
	return fmt.Sprintf("|%s> %s p=%.6g", a.Bits, a.Value, a.Probability)
}

// Unitary returns gate_n · … · gate_1 over the circuit's register. Products
// go through mp, or linalg.DefaultMultiplier() when mp is nil.
func (c *Circuit) Unitary(mp *linalg.Multiplier) (*linalg.Matrix, error) {
	return gates.Compose(mp, c.Qubits, c.Gates)
}

// Apply returns the state reached from basis state input.
func (c *Circuit) Apply(mp *linalg.Multiplier, input int) (*linalg.Matrix, error) {
	if mp == nil {
		mp = linalg.DefaultMultiplier()
	}
	state, err := linalg.BasisState(1<<c.Qubits, input)
	if err != nil {
		return nil, err
	}
	u, err := c.Unitary(mp)
	if err != nil {
		return nil, err
	}
	return mp.Mul(u, state)
}

// Amplitudes lists the components of the column vector state whose modulus
// exceeds epsilon, in basis order.
func Amplitudes(state *linalg.Matrix, numBits int, epsilon float32) []Amplitude {
	var out []Amplitude
	for i := 0; i < state.Rows(); i++ {
		v := state.At(i, 0)
		if v.Module() <= epsilon {
			continue
		}
		out = append(out, Amplitude{
			Index:       i,
			Bits:        fmt.Sprintf("%0*b", numBits, i),
			Value:       v,
			Probability: v.Modulus2(),
		})
	}
	return out
}

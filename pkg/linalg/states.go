package linalg

import "math"

// Single-qubit states written |0>, |1>, |+>, |->, |i> and |-i>.

// Ket0 returns |0>.
func Ket0() *Matrix { return Column(One, Zero) }

// Ket1 returns |1>.
func Ket1() *Matrix { return Column(Zero, One) }

// KetPlus returns (|0> + |1>)/√2.
func KetPlus() *Matrix { return Column(Real(invSqrt2), Real(invSqrt2)) }

// KetMinus returns (|0> - |1>)/√2.
func KetMinus() *Matrix { return Column(Real(invSqrt2), Real(-invSqrt2)) }

// KetPlusI returns (|0> + i|1>)/√2.
func KetPlusI() *Matrix { return Column(Real(invSqrt2), NewComplex(0, invSqrt2)) }

// KetMinusI returns (|0> - i|1>)/√2.
func KetMinusI() *Matrix { return Column(Real(invSqrt2), NewComplex(0, -invSqrt2)) }

// Uniform returns the n-qubit uniform superposition, every amplitude 1/√(2^n).
func Uniform(numBits int) *Matrix {
	size := 1 << numBits
	amp := Real(float32(1 / math.Sqrt(float64(size))))
	m := Zeros(size, 1)
	for i := range m.cells {
		m.cells[i] = amp
	}
	return m
}

// Elementary returns the size×size matrix |i><j|, a single 1 at row i,
// column j.
func Elementary(size, i, j int) *Matrix {
	m := Zeros(size, size)
	m.cells[i*size+j] = One
	return m
}

// QubitProjector returns the 2^numBits × 2^numBits diagonal projector onto
// the basis states whose qubit q equals bit.
func QubitProjector(numBits, q, bit int) *Matrix {
	size := 1 << numBits
	mask := 1 << (numBits - 1 - q)
	m := Zeros(size, size)
	for s := 0; s < size; s++ {
		if (s&mask != 0) == (bit == 1) {
			m.cells[s*size+s] = One
		}
	}
	return m
}

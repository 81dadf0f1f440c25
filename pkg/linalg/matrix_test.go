package linalg

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// randomMatrix returns a matrix whose entries are multiples of 1/8 in [-1, 1],
// which keeps small products exact in float32.
func randomMatrix(rng *rand.Rand, rows, cols int) *Matrix {
	cells := make([]Complex, rows*cols)
	for i := range cells {
		cells[i] = NewComplex(float32(rng.Intn(17)-8)/8, float32(rng.Intn(17)-8)/8)
	}
	return MustNew(rows, cols, cells...)
}

func TestNewValidatesShape(t *testing.T) {
	if _, err := New(2, 2, make([]Complex, 3)); err == nil {
		t.Error("New() with 3 cells for 2x2 expected error, got nil")
	}
	if _, err := New(0, 2, nil); err == nil {
		t.Error("New() with zero rows expected error, got nil")
	}

	m, err := New(2, 3, make([]Complex, 6))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("Shape() = %s, want 2x3", m.Shape())
	}
}

func TestAddShapeMismatch(t *testing.T) {
	_, err := Identity(2).Add(Identity(4))
	if err == nil {
		t.Fatal("Add() expected error, got nil")
	}

	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Add() error type = %T, want *ShapeError", err)
	}
	if !strings.Contains(err.Error(), "2x2") || !strings.Contains(err.Error(), "4x4") {
		t.Errorf("Add() error = %q, want both shapes named", err.Error())
	}
}

func TestAddSub(t *testing.T) {
	a, _ := FromReal(2, 2, 1, 2, 3, 4)
	b, _ := FromReal(2, 2, 4, 3, 2, 1)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	want, _ := FromReal(2, 2, 5, 5, 5, 5)
	if !sum.Equal(want) {
		t.Errorf("Add() = %v, want %v", sum, want)
	}

	diff, err := sum.Sub(b)
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if !diff.Equal(a) {
		t.Errorf("Sub() = %v, want %v", diff, a)
	}
}

func TestDaggerAndTranspose(t *testing.T) {
	m := MustNew(2, 3,
		NewComplex(1, 1), NewComplex(2, 0), NewComplex(0, 3),
		NewComplex(4, -1), NewComplex(5, 5), NewComplex(6, 0))

	tr := m.Transpose()
	if tr.Rows() != 3 || tr.Cols() != 2 {
		t.Fatalf("Transpose() shape = %s, want 3x2", tr.Shape())
	}
	if tr.At(2, 0) != NewComplex(0, 3) {
		t.Errorf("Transpose().At(2,0) = %v, want (0, 3)", tr.At(2, 0))
	}

	dg := m.Dagger()
	if dg.At(0, 1) != NewComplex(4, 1) {
		t.Errorf("Dagger().At(0,1) = %v, want (4, 1)", dg.At(0, 1))
	}
	if !dg.Equal(m.Conj().Transpose()) {
		t.Error("Dagger() != Conj().Transpose()")
	}
}

func TestCrossIndexMapping(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomMatrix(rng, 2, 2)
	b := randomMatrix(rng, 3, 3)

	c := a.Cross(b)
	if c.Rows() != 6 || c.Cols() != 6 {
		t.Fatalf("Cross() shape = %s, want 6x6", c.Shape())
	}
	for i := 0; i < 2; i++ {
		for k := 0; k < 2; k++ {
			for j := 0; j < 3; j++ {
				for l := 0; l < 3; l++ {
					want := a.At(i, k).Mul(b.At(j, l))
					if got := c.At(i*3+j, k*3+l); got != want {
						t.Errorf("Cross().At(%d,%d) = %v, want %v", i*3+j, k*3+l, got, want)
					}
				}
			}
		}
	}
}

func TestMulAssociativeAndDistributive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := randomMatrix(rng, 4, 3)
	b := randomMatrix(rng, 3, 5)
	c := randomMatrix(rng, 5, 2)
	d := randomMatrix(rng, 3, 5)

	ab, _ := a.Mul(b)
	left, _ := ab.Mul(c)
	bc, _ := b.Mul(c)
	right, _ := a.Mul(bc)
	if !left.IsClose(right, 1e-6) {
		t.Errorf("(AB)C != A(BC)\n%v\n%v", left, right)
	}

	bd, _ := b.Add(d)
	lhs, _ := a.Mul(bd)
	ad, _ := a.Mul(d)
	rhs, _ := ab.Add(ad)
	if !lhs.IsClose(rhs, 1e-6) {
		t.Errorf("A(B+D) != AB+AD\n%v\n%v", lhs, rhs)
	}
}

func TestTensorBilinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := randomMatrix(rng, 2, 2)
	b := randomMatrix(rng, 4, 4)
	v := randomMatrix(rng, 2, 1)
	w := randomMatrix(rng, 4, 1)

	lhs, err := a.Cross(b).Mul(v.Cross(w))
	if err != nil {
		t.Fatalf("Mul() error = %v", err)
	}
	av, _ := a.Mul(v)
	bw, _ := b.Mul(w)
	rhs := av.Cross(bw)

	if !lhs.IsClose(rhs, 1e-6) {
		t.Errorf("(A⊗B)(v⊗w) != (Av)⊗(Bw)\n%v\n%v", lhs, rhs)
	}
}

func TestNamedGatesAreUnitary(t *testing.T) {
	gates := map[string]*Matrix{
		"I": I(), "X": X(), "Y": Y(), "Z": Z(), "H": H(), "S": S(), "T": T(),
		"CNOT": CNOT(), "SWAP": SWAP(), "CCNOT": CCNOT(),
	}
	for name, g := range gates {
		prod, err := g.Dagger().Mul(g)
		if err != nil {
			t.Fatalf("%s: Mul() error = %v", name, err)
		}
		if !prod.IsClose(Identity(g.Rows()), 1e-6) {
			t.Errorf("%s†%s = %v, want identity", name, name, prod)
		}
	}
}

func TestNorm(t *testing.T) {
	v := Column(Real(3), NewComplex(0, 4))
	if got := v.Norm(); got != 5 {
		t.Errorf("Norm() = %v, want 5", got)
	}
}

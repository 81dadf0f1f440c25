package gates

import (
	"errors"
	"testing"
	"time"

	"qalc-hq/qalc/pkg/linalg"
)

func basis(t *testing.T, numBits, index int) *linalg.Matrix {
	t.Helper()
	v, err := linalg.BasisState(1<<numBits, index)
	if err != nil {
		t.Fatalf("BasisState() error = %v", err)
	}
	return v
}

func apply(t *testing.T, g *QuGate, numBits, index int) *linalg.Matrix {
	t.Helper()
	m, err := g.Build(nil, numBits)
	if err != nil {
		t.Fatalf("Build(%d) error = %v", numBits, err)
	}
	out, err := m.Mul(basis(t, numBits, index))
	if err != nil {
		t.Fatalf("Mul() error = %v", err)
	}
	return out
}

func TestSwapOnTwoQubits(t *testing.T) {
	g, err := Gate("swap", 0, 1)
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}

	// |1,0> is index 2, |0,1> is index 1.
	got := apply(t, g, 2, 2)
	if want := basis(t, 2, 1); !got.Equal(want) {
		t.Errorf("SWAP|1,0> = %v, want |0,1>", got)
	}
}

func TestBuildPlacesGateOnQubits(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		indices []int
		numBits int
		in      int
		want    int
	}{
		{"x on qubit 1 of 3", "x", []int{1}, 3, 0b000, 0b010},
		{"x on qubit 2 of 3", "x", []int{2}, 3, 0b000, 0b001},
		{"cnot 0->1", "cnot", []int{0, 1}, 2, 0b10, 0b11},
		{"cnot 1->0", "cnot", []int{1, 0}, 2, 0b01, 0b11},
		{"cnot 1->0 control clear", "cnot", []int{1, 0}, 2, 0b10, 0b10},
		{"cnot 2->0 of 3", "cnot", []int{2, 0}, 3, 0b001, 0b101},
		{"ccnot 0,2->1", "ccnot", []int{0, 2, 1}, 3, 0b101, 0b111},
		{"swap 0,2 of 3", "swap", []int{0, 2}, 3, 0b100, 0b001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Gate(tt.typ, tt.indices...)
			if err != nil {
				t.Fatalf("Gate() error = %v", err)
			}
			got := apply(t, g, tt.numBits, tt.in)
			if want := basis(t, tt.numBits, tt.want); !got.Equal(want) {
				t.Errorf("%s|%b> = %v, want |%b>", g, tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildIsUnitary(t *testing.T) {
	for _, typ := range []string{"h", "y", "t"} {
		g, err := Gate(typ, 1)
		if err != nil {
			t.Fatalf("Gate() error = %v", err)
		}
		m, err := g.Build(nil, 3)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		prod, _ := m.Dagger().Mul(m)
		if !prod.IsClose(linalg.Identity(8), 1e-6) {
			t.Errorf("%s on qubit 1 of 3 is not unitary", typ)
		}
	}
}

func TestBuildMatchesTensorProduct(t *testing.T) {
	// H on qubit 1 of 2 is I ⊗ H.
	g, _ := Gate("h", 1)
	got, err := g.Build(nil, 2)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := linalg.I().Cross(linalg.H())
	if !got.IsClose(want, 1e-6) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestComposeAppliesInOrder(t *testing.T) {
	// Bell circuit: H(0) then CNOT(0,1) maps |00> to (|00> + |11>)/√2.
	h, _ := Gate("h", 0)
	cnot, _ := Gate("cnot", 0, 1)

	m, err := Compose(nil, 2, []*QuGate{h, cnot})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	out, _ := m.Mul(basis(t, 2, 0))

	amp := float32(0.70710677)
	want := linalg.Column(linalg.Real(amp), linalg.Zero, linalg.Zero, linalg.Real(amp))
	if !out.IsClose(want, 1e-6) {
		t.Errorf("Bell state = %v, want %v", out, want)
	}

	// Reversed order gives a different operator.
	rev, _ := Compose(nil, 2, []*QuGate{cnot, h})
	if rev.IsClose(m, 1e-6) {
		t.Error("Compose() ignored gate order")
	}
}

type countingObserver struct {
	calls int
}

func (o *countingObserver) ObserveMul(string, int, time.Duration) { o.calls++ }

func TestComposeUsesMultiplier(t *testing.T) {
	h, _ := Gate("h", 0)
	cnot, _ := Gate("cnot", 0, 2)

	obs := &countingObserver{}
	mp := linalg.NewMultiplier(linalg.WithObserver(obs))
	if _, err := cnot.Build(mp, 3); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// Both permutation products of the lift.
	if obs.calls != 2 {
		t.Errorf("Build() observed %d products, want 2", obs.calls)
	}

	obs.calls = 0
	if _, err := Compose(mp, 3, []*QuGate{h, cnot}); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	// Two lifts of two products each and one accumulation per gate.
	if obs.calls != 6 {
		t.Errorf("Compose() observed %d products, want 6", obs.calls)
	}
}

func TestComposeEmptyIsIdentity(t *testing.T) {
	m, err := Compose(nil, 3, nil)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !m.Equal(linalg.Identity(8)) {
		t.Error("Compose(nil, 3, nil) is not the identity")
	}
}

func TestDuplicateIndices(t *testing.T) {
	_, err := Gate("cnot", 0, 0)
	if err == nil {
		t.Fatal("Gate() expected error, got nil")
	}
	var dup *DuplicateIndexError
	if !errors.As(err, &dup) {
		t.Fatalf("Gate() error type = %T, want *DuplicateIndexError", err)
	}
	if want := "Expected all different indices [0, 0]"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGateValidation(t *testing.T) {
	if _, err := Gate("h", 0, 1); err == nil {
		t.Error("Gate(h, 0, 1) expected arity error, got nil")
	}
	if _, err := Gate("rz", 0); err == nil {
		t.Error("Gate(rz) expected unknown gate error, got nil")
	}
	if _, err := NewGate("custom", linalg.Identity(2), 0, 1); err == nil {
		t.Error("NewGate() with 2x2 transform on 2 qubits expected error, got nil")
	}
	g, _ := Gate("x", 3)
	if _, err := g.Build(nil, 2); err == nil {
		t.Error("Build() with index out of range expected error, got nil")
	}
}

func TestComputeMap(t *testing.T) {
	order, err := ComputeMap(5, []int{3, 1})
	if err != nil {
		t.Fatalf("ComputeMap() error = %v", err)
	}
	want := []int{3, 1, 0, 2, 4}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("ComputeMap() = %v, want %v", order, want)
		}
	}
}

func TestMapGate(t *testing.T) {
	mapper := NewBitStateMapper(2).X(0).CNOT(0, 1)
	g, err := NewMapGate(mapper, 1, 0)
	if err != nil {
		t.Fatalf("NewMapGate() error = %v", err)
	}
	if g.Type != TypeMap {
		t.Errorf("Type = %q, want %q", g.Type, TypeMap)
	}
	// Local qubit 0 is system qubit 1: |00> -> local |11> -> system |11>.
	got := apply(t, g, 2, 0)
	if want := basis(t, 2, 3); !got.Equal(want) {
		t.Errorf("map gate|00> = %v, want |11>", got)
	}
}

func TestWidth(t *testing.T) {
	a, _ := Gate("x", 0)
	b, _ := Gate("cnot", 4, 2)
	if got := Width([]*QuGate{a, b}); got != 5 {
		t.Errorf("Width() = %d, want 5", got)
	}
}

package runtime

import (
	"testing"

	"qalc-hq/qalc/pkg/gates"
	"qalc-hq/qalc/pkg/linalg"
	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/errors"
)

func call(t *testing.T, name string, args ...ast.Value) ast.Value {
	t.Helper()
	v, err := newTestContext().Call(testLoc, name, args)
	if err != nil {
		t.Fatalf("%s() error = %v", name, err)
	}
	return v
}

func TestBuiltinRegistry(t *testing.T) {
	arities := map[string]int{
		"sqrt": 1, "I": 1, "H": 1, "X": 1, "Y": 1, "Z": 1, "S": 1, "T": 1,
		"SWAP": 2, "CNOT": 2, "CCNOT": 3,
		"ary": 2, "sim": 1, "eps": 3, "qubit0": 2, "qubit1": 2, "normalise": 1,
	}
	if got := len(Builtins()); got != len(arities) {
		t.Errorf("len(Builtins()) = %d, want %d", got, len(arities))
	}
	for name, want := range arities {
		b, ok := LookupBuiltin(name)
		if !ok {
			t.Errorf("LookupBuiltin(%q) not found", name)
			continue
		}
		if b.Arity != want {
			t.Errorf("%s arity = %d, want %d", name, b.Arity, want)
		}
	}

	names := BuiltinNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("BuiltinNames() not sorted: %v", names)
		}
	}
}

func TestSqrt(t *testing.T) {
	tests := []struct {
		name string
		arg  ast.Value
		want ast.Value
	}{
		{"negative integer", intV(-4), complexV(0, 2)},
		{"negated real", ast.ComplexValue(linalg.Real(4).Neg(), ast.Location{}), complexV(0, 2)},
		{"positive integer", intV(9), complexV(3, 0)},
		{"imaginary", complexV(0, 2), complexV(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := call(t, "sqrt", tt.arg)
			if !got.Complex().IsClose(tt.want.Complex(), 1e-6) {
				t.Errorf("sqrt(%v) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestGateBuiltins(t *testing.T) {
	// H(1) spans two qubits and equals I ⊗ H.
	h := call(t, "H", intV(1))
	if !h.Matrix().IsClose(linalg.I().Cross(linalg.H()), 1e-6) {
		t.Errorf("H(1) = %v, want I x H", h)
	}

	cnot := call(t, "CNOT", intV(0), intV(1))
	if !cnot.Matrix().Equal(linalg.CNOT()) {
		t.Errorf("CNOT(0, 1) = %v, want CNOT", cnot)
	}

	g, _ := gates.Gate(gates.TypeCCNOT, 2, 0, 1)
	want, _ := g.Build(nil, 3)
	if got := call(t, "CCNOT", intV(2), intV(0), intV(1)); !got.Matrix().Equal(want) {
		t.Errorf("CCNOT(2, 0, 1) = %v, want %v", got, want)
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name    string
		fn      string
		args    []ast.Value
		message string
	}{
		{"duplicate indices", "CNOT", []ast.Value{intV(0), intV(0)}, "Expected all different indices [0, 0]"},
		{"complex index", "H", []ast.Value{complexV(1, 0)}, "Argument should be an integer: actual ((1, 0))"},
		{"negative index", "X", []ast.Value{intV(-1)}, "Qubit index out of range [0, 10): actual (-1)"},
		{"wrong arity", "SWAP", []ast.Value{intV(0)}, "SWAP requires 2 arguments: actual (1)"},
		{"unknown function", "QFT", []ast.Value{intV(0)}, "Undefined function QFT"},
		{"ary out of range", "ary", []ast.Value{intV(2), intV(4)}, "Argument out of range [0, 4): actual (4)"},
		{"qubit past register", "qubit0", []ast.Value{intV(2), intV(2)}, "Argument out of range [0, 2): actual (2)"},
		{"zero qubits", "sim", []ast.Value{intV(0)}, "Argument out of range [1, 11): actual (0)"},
		{"sqrt of matrix", "sqrt", []ast.Value{matrixV(linalg.X())}, "Argument should be a scalar: actual ([[(0, 0), (1, 0)],\n [(1, 0), (0, 0)]])"},
		{"normalise zero", "normalise", []ast.Value{intV(0)}, "Cannot normalise a zero value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestContext().Call(testLoc, tt.fn, tt.args)
			e, ok := errors.As(err)
			if !ok {
				t.Fatalf("Call() error = %v, want *errors.Error", err)
			}
			if e.Message != tt.message {
				t.Errorf("Message = %q, want %q", e.Message, tt.message)
			}
		})
	}
}

func TestStateBuiltins(t *testing.T) {
	ary := call(t, "ary", intV(2), intV(2))
	want, _ := linalg.BasisState(4, 2)
	if !ary.Matrix().Equal(want) {
		t.Errorf("ary(2, 2) = %v, want |10>", ary)
	}

	sim := call(t, "sim", intV(2))
	half := linalg.Real(0.5)
	if !sim.Matrix().IsClose(linalg.Column(half, half, half, half), 1e-6) {
		t.Errorf("sim(2) = %v, want uniform amplitudes 0.5", sim)
	}

	eps := call(t, "eps", intV(1), intV(0), intV(1))
	if !eps.Matrix().Equal(linalg.MustNew(2, 2, linalg.Zero, linalg.One, linalg.Zero, linalg.Zero)) {
		t.Errorf("eps(1, 0, 1) = %v, want |0><1|", eps)
	}

	p0 := call(t, "qubit0", intV(1), intV(0))
	if !p0.Matrix().Equal(linalg.MustNew(2, 2, linalg.One, linalg.Zero, linalg.Zero, linalg.Zero)) {
		t.Errorf("qubit0(1, 0) = %v, want |0><0|", p0)
	}
}

func TestNormalise(t *testing.T) {
	v := call(t, "normalise", matrixV(linalg.Column(linalg.Real(3), linalg.Real(4))))
	if !v.Matrix().IsClose(linalg.Column(linalg.Real(0.6), linalg.Real(0.8)), 1e-6) {
		t.Errorf("normalise([3, 4]) = %v, want [0.6, 0.8]", v)
	}

	c := call(t, "normalise", complexV(0, -2))
	if !c.Complex().IsClose(linalg.NewComplex(0, -1), 1e-6) {
		t.Errorf("normalise((0, -2)) = %v, want (0, -1)", c)
	}
}

package circuit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"qalc-hq/qalc/pkg/linalg"
	qerrors "qalc-hq/qalc/pkg/qalc/errors"
)

const bell = `name: bell
qubits: 2
input: 0
gates:
  - type: h
    indices: [0]
  - type: cnot
    indices: [0, 1]
`

type countingObserver struct {
	calls int
}

func (o *countingObserver) ObserveMul(string, int, time.Duration) { o.calls++ }

func TestParseBell(t *testing.T) {
	c, err := NewLoader().Parse([]byte(bell), "bell.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Name != "bell" || c.Qubits != 2 || !c.HasInput || c.Input != 0 || len(c.Gates) != 2 {
		t.Fatalf("Parse() = %+v", c)
	}
	if got := c.Gates[1].String(); got != "cnot[0, 1]" {
		t.Errorf("Gates[1] = %s, want cnot[0, 1]", got)
	}

	obs := &countingObserver{}
	state, err := c.Apply(linalg.NewMultiplier(linalg.WithObserver(obs)), c.Input)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	// Two products lifting each gate, one accumulating each gate and the
	// final state product.
	if obs.calls != 7 {
		t.Errorf("observer saw %d products, want 7", obs.calls)
	}

	amps := Amplitudes(state, c.Qubits, 1e-6)
	if len(amps) != 2 {
		t.Fatalf("Amplitudes() = %v, want two entries", amps)
	}
	for i, want := range []string{"00", "11"} {
		if amps[i].Bits != want {
			t.Errorf("amps[%d].Bits = %s, want %s", i, amps[i].Bits, want)
		}
		if p := amps[i].Probability; p < 0.4999 || p > 0.5001 {
			t.Errorf("amps[%d].Probability = %v, want 0.5", i, p)
		}
	}
}

func TestUnitaryMatchesCompose(t *testing.T) {
	c, err := NewLoader().Parse([]byte(bell), "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := c.Unitary(nil)
	if err != nil {
		t.Fatalf("Unitary() error = %v", err)
	}
	want, err := linalg.CNOT().Mul(linalg.H().Cross(linalg.I()))
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsClose(want, 1e-6) {
		t.Errorf("Unitary() = %v, want %v", got, want)
	}
}

func TestInferredWidth(t *testing.T) {
	c, err := NewLoader().Parse([]byte("gates:\n  - type: x\n    indices: [2]\n"), "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Qubits != 3 || c.HasInput {
		t.Errorf("Qubits = %d, HasInput = %v, want 3, false", c.Qubits, c.HasInput)
	}
	state, err := c.Apply(nil, 0)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	amps := Amplitudes(state, c.Qubits, 1e-6)
	if len(amps) != 1 || amps[0].Bits != "001" {
		t.Errorf("Amplitudes() = %v, want |001>", amps)
	}
}

func TestMapGate(t *testing.T) {
	src := `qubits: 3
input: 2
gates:
  - type: map
    indices: [2, 1]
    map:
      - swap 0 1
      - cnot 1 0
`
	c, err := NewLoader().Parse([]byte(src), "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(c.Gates) != 1 || c.Gates[0].Type != "map" {
		t.Fatalf("Gates = %v, want one map gate", c.Gates)
	}
	// |010>: the swap moves the set bit to qubit 2, leaving the cnot control clear.
	state, err := c.Apply(nil, c.Input)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	amps := Amplitudes(state, c.Qubits, 1e-6)
	if len(amps) != 1 || amps[0].Bits != "001" {
		t.Errorf("Amplitudes() = %v, want |001>", amps)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		count    int
		contains string
	}{
		{
			name: "gate errors are collected",
			yaml: `qubits: 2
gates:
  - type: h
    indices: [0]
  - type: cnot
    indices: [1, 1]
  - type: qft
    indices: [0]
  - type: x
    indices: [3]
`,
			count:    3,
			contains: "Expected all different indices [1, 1]",
		},
		{"no gates", "qubits: 1\n", 1, "Circuit has no gates"},
		{"too wide", "qubits: 11\ngates:\n  - type: h\n    indices: [0]\n", 1, "Qubits out of range [1, 10]: actual (11)"},
		{"input out of range", "qubits: 1\ninput: 2\ngates:\n  - type: h\n    indices: [0]\n", 1, "Input out of range [0, 2): actual (2)"},
		{"wrong arity", "gates:\n  - type: swap\n    indices: [0]\n", 1, "gate swap requires 2 indices: actual (1)"},
		{"map without steps", "gates:\n  - type: map\n    indices: [0, 1]\n", 1, "gate map: no mapper steps"},
		{"unknown map step", "gates:\n  - type: map\n    indices: [0]\n    map: [h 0]\n", 1, `unknown mapper step "h"`},
		{"map step out of range", "gates:\n  - type: map\n    indices: [0, 1]\n    map: [cnot 0 2]\n", 1, "local index 2 out of range [0, 2)"},
		{"map step arity", "gates:\n  - type: map\n    indices: [0, 1, 2]\n    map: [remap 1 0]\n", 1, "step remap requires 3 indices: actual (2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Parse([]byte(tt.yaml), "")
			list, ok := err.(*qerrors.ErrorList)
			if !ok {
				t.Fatalf("Parse() error = %v, want *errors.ErrorList", err)
			}
			if list.Count() != tt.count {
				t.Errorf("Count() = %d, want %d: %v", list.Count(), tt.count, list)
			}
			if !strings.Contains(list.Error(), tt.contains) {
				t.Errorf("Error() = %q, want it to contain %q", list.Error(), tt.contains)
			}
		})
	}
}

func TestErrorLocation(t *testing.T) {
	src := "qubits: 2\ngates:\n  - type: cnot\n    indices: [1, 1]\n"
	_, err := NewLoader().Parse([]byte(src), "")
	list, ok := err.(*qerrors.ErrorList)
	if !ok || list.Count() != 1 {
		t.Fatalf("Parse() error = %v", err)
	}
	loc := list.Errors[0].Location
	if loc.Line != 3 || loc.Column != 4 || loc.Token != "cnot" {
		t.Errorf("Location = %+v, want line 3 column 4 token cnot", loc)
	}
	want := "3:  - type: cnot\n :----^ Expected all different indices [1, 1] token(\"cnot\")"
	if got := list.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}
}

func TestInvalidYAML(t *testing.T) {
	_, err := NewLoader().Parse([]byte("gates: [\n"), "")
	if !qerrors.Is(err, qerrors.ErrorTypeSyntax) {
		t.Errorf("Parse() error = %v, want syntax error", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.yaml")
	if err := os.WriteFile(path, []byte(bell), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Source != path {
		t.Errorf("Source = %q, want %q", c.Source, path)
	}

	if _, err := NewLoader().WithMaxFileSize(8).Load(path); err == nil {
		t.Error("Load() over the size limit expected error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
}

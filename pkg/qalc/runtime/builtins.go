package runtime

import (
	"slices"
	"strings"

	"qalc-hq/qalc/pkg/gates"
	"qalc-hq/qalc/pkg/linalg"
	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/errors"
)

// MaxQubits bounds the register width a builtin may allocate.
const MaxQubits = 10

// BuiltinFunc implements a builtin. args has exactly Arity elements.
type BuiltinFunc func(ec *ExecutionContext, loc ast.Location, args []ast.Value) (ast.Value, error)

// Builtin describes a function callable from qalc source.
type Builtin struct {
	Name    string
	Arity   int
	Summary string
	Func    BuiltinFunc
}

var builtins = map[string]Builtin{}

func register(name string, arity int, summary string, fn BuiltinFunc) {
	builtins[name] = Builtin{Name: name, Arity: arity, Summary: summary, Func: fn}
}

func init() {
	register("sqrt", 1, "principal complex square root", builtinSqrt)

	register("I", 1, "identity on qubit i", gateBuiltin(gates.TypeI))
	register("H", 1, "Hadamard on qubit i", gateBuiltin(gates.TypeH))
	register("X", 1, "Pauli-X on qubit i", gateBuiltin(gates.TypeX))
	register("Y", 1, "Pauli-Y on qubit i", gateBuiltin(gates.TypeY))
	register("Z", 1, "Pauli-Z on qubit i", gateBuiltin(gates.TypeZ))
	register("S", 1, "phase gate on qubit i", gateBuiltin(gates.TypeS))
	register("T", 1, "pi/8 gate on qubit i", gateBuiltin(gates.TypeT))
	register("SWAP", 2, "swap qubits a and b", gateBuiltin(gates.TypeSWAP))
	register("CNOT", 2, "controlled NOT, control c, target t", gateBuiltin(gates.TypeCNOT))
	register("CCNOT", 3, "Toffoli, controls c1 c2, target t", gateBuiltin(gates.TypeCCNOT))

	register("ary", 2, "basis state |k> of n qubits", builtinAry)
	register("sim", 1, "uniform superposition of n qubits", builtinSim)
	register("eps", 3, "elementary matrix |i><j| on n qubits", builtinEps)
	register("qubit0", 2, "projector onto qubit k = 0 of n qubits", qubitProjector(0))
	register("qubit1", 2, "projector onto qubit k = 1 of n qubits", qubitProjector(1))
	register("normalise", 1, "scale to unit norm", builtinNormalise)
}

// LookupBuiltin returns the builtin registered under name.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// Builtins returns every builtin, sorted by name.
func Builtins() []Builtin {
	list := make([]Builtin, 0, len(builtins))
	for _, b := range builtins {
		list = append(list, b)
	}
	slices.SortFunc(list, func(a, b Builtin) int { return strings.Compare(a.Name, b.Name) })
	return list
}

// BuiltinNames returns the names of every builtin, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// intArg extracts an integer argument.
func intArg(loc ast.Location, v ast.Value) (int, error) {
	if v.Kind() != ast.KindInteger {
		return 0, errors.Execution(loc, "Argument should be an integer: actual (%s)", v)
	}
	return v.Int(), nil
}

// rangeArg extracts an integer argument in [lo, hi).
func rangeArg(loc ast.Location, v ast.Value, lo, hi int) (int, error) {
	n, err := intArg(loc, v)
	if err != nil {
		return 0, err
	}
	if n < lo || n >= hi {
		return 0, errors.Execution(loc, "Argument out of range [%d, %d): actual (%d)", lo, hi, n)
	}
	return n, nil
}

// qubitsArg extracts a register width in [1, MaxQubits].
func qubitsArg(loc ast.Location, v ast.Value) (int, error) {
	return rangeArg(loc, v, 1, MaxQubits+1)
}

func builtinSqrt(_ *ExecutionContext, loc ast.Location, args []ast.Value) (ast.Value, error) {
	c, ok := args[0].AsComplex()
	if !ok {
		return ast.Value{}, errors.Execution(loc, "Argument should be a scalar: actual (%s)", args[0])
	}
	return ast.ComplexValue(c.Sqrt(), loc), nil
}

// gateBuiltin returns a builtin building the full unitary of a named gate
// over the smallest register holding its indices.
func gateBuiltin(typ string) BuiltinFunc {
	return func(ec *ExecutionContext, loc ast.Location, args []ast.Value) (ast.Value, error) {
		indices := make([]int, len(args))
		for i, arg := range args {
			n, err := intArg(loc, arg)
			if err != nil {
				return ast.Value{}, err
			}
			if n < 0 || n >= MaxQubits {
				return ast.Value{}, errors.Execution(loc, "Qubit index out of range [0, %d): actual (%d)", MaxQubits, n)
			}
			indices[i] = n
		}
		if err := gates.CheckIndices(indices); err != nil {
			return ast.Value{}, errors.Execution(loc, "%s", err.Error())
		}

		g, err := gates.Gate(typ, indices...)
		if err != nil {
			return ast.Value{}, errors.Execution(loc, "%s", err.Error())
		}
		m, err := g.Build(ec.Multiplier(), g.NumBits())
		if err != nil {
			return ast.Value{}, errors.Execution(loc, "%s", err.Error())
		}
		return ast.MatrixValue(m, loc), nil
	}
}

func builtinAry(_ *ExecutionContext, loc ast.Location, args []ast.Value) (ast.Value, error) {
	n, err := qubitsArg(loc, args[0])
	if err != nil {
		return ast.Value{}, err
	}
	k, err := rangeArg(loc, args[1], 0, 1<<n)
	if err != nil {
		return ast.Value{}, err
	}
	m, err := linalg.BasisState(1<<n, k)
	if err != nil {
		return ast.Value{}, errors.Execution(loc, "%s", err.Error())
	}
	return ast.MatrixValue(m, loc), nil
}

func builtinSim(_ *ExecutionContext, loc ast.Location, args []ast.Value) (ast.Value, error) {
	n, err := qubitsArg(loc, args[0])
	if err != nil {
		return ast.Value{}, err
	}
	return ast.MatrixValue(linalg.Uniform(n), loc), nil
}

func builtinEps(_ *ExecutionContext, loc ast.Location, args []ast.Value) (ast.Value, error) {
	n, err := qubitsArg(loc, args[0])
	if err != nil {
		return ast.Value{}, err
	}
	i, err := rangeArg(loc, args[1], 0, 1<<n)
	if err != nil {
		return ast.Value{}, err
	}
	j, err := rangeArg(loc, args[2], 0, 1<<n)
	if err != nil {
		return ast.Value{}, err
	}
	return ast.MatrixValue(linalg.Elementary(1<<n, i, j), loc), nil
}

func qubitProjector(bit int) BuiltinFunc {
	return func(_ *ExecutionContext, loc ast.Location, args []ast.Value) (ast.Value, error) {
		n, err := qubitsArg(loc, args[0])
		if err != nil {
			return ast.Value{}, err
		}
		k, err := rangeArg(loc, args[1], 0, n)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.MatrixValue(linalg.QubitProjector(n, k, bit), loc), nil
	}
}

func builtinNormalise(_ *ExecutionContext, loc ast.Location, args []ast.Value) (ast.Value, error) {
	v := args[0]
	switch v.Kind() {
	case ast.KindMatrix:
		norm := v.Matrix().Norm()
		if norm == 0 {
			return ast.Value{}, errors.Execution(loc, "Cannot normalise a zero value")
		}
		return ast.MatrixValue(v.Matrix().Scale(1/norm), loc), nil
	case ast.KindInteger, ast.KindComplex:
		c, _ := v.AsComplex()
		if c.IsZero() {
			return ast.Value{}, errors.Execution(loc, "Cannot normalise a zero value")
		}
		return ast.ComplexValue(c.Scale(1/c.Module()), loc), nil
	}
	return ast.Value{}, errors.Execution(loc, "Unexpected %s argument", v.Kind())
}

package validator

import (
	"qalc-hq/qalc/pkg/gates"
	"qalc-hq/qalc/pkg/qalc/ast"
	qerrors "qalc-hq/qalc/pkg/qalc/errors"
	"qalc-hq/qalc/pkg/qalc/runtime"
)

// CallValidator checks gate calls whose qubit indices are integer literals.
// Calls with computed indices are left to evaluation.
type CallValidator struct {
	errors *qerrors.ErrorList
}

// NewCallValidator creates a new call validator.
func NewCallValidator() *CallValidator {
	return &CallValidator{
		errors: qerrors.NewErrorList(),
	}
}

// Validate checks every gate call in program.
func (v *CallValidator) Validate(program *ast.CommandList) error {
	v.errors = qerrors.NewErrorList()

	ast.Walk(program, func(n ast.Node, _ int) bool {
		if call, ok := n.(*ast.Call); ok && gates.IsNamed(call.Name) {
			v.checkGate(call)
		}
		return true
	})

	return v.errors.ToError()
}

func (v *CallValidator) checkGate(call *ast.Call) {
	indices := make([]int, 0, call.Args.Len())
	for _, arg := range call.Args.Items {
		lit, ok := arg.(*ast.Literal)
		if !ok || lit.Value.Kind() != ast.KindInteger {
			return
		}
		n := lit.Value.Int()
		if n < 0 || n >= runtime.MaxQubits {
			v.errors.Add(qerrors.Semantic(call.Loc, "Qubit index out of range [0, %d): actual (%d)", runtime.MaxQubits, n))
			return
		}
		indices = append(indices, n)
	}
	if err := gates.CheckIndices(indices); err != nil {
		v.errors.Add(qerrors.Semantic(call.Loc, "%s", err.Error()))
	}
}

package validator

import (
	"maps"
	"slices"

	"qalc-hq/qalc/pkg/qalc/ast"
	qerrors "qalc-hq/qalc/pkg/qalc/errors"
)

// ScopeValidator reports variables that are read while undefined.
//
// Statements are visited in evaluation order: the right-hand side of a let
// is checked before its name is bound, and clear() forgets every name,
// including predefined ones.
type ScopeValidator struct {
	predefined []string
	defined    map[string]bool
	errors     *qerrors.ErrorList
}

// NewScopeValidator creates a new scope validator.
func NewScopeValidator() *ScopeValidator {
	return &ScopeValidator{
		errors: qerrors.NewErrorList(),
	}
}

// Validate checks every variable reference in program.
func (v *ScopeValidator) Validate(program *ast.CommandList) error {
	v.errors = qerrors.NewErrorList()
	v.defined = make(map[string]bool, len(v.predefined))
	for _, name := range v.predefined {
		v.defined[name] = true
	}

	v.visit(program)
	return v.errors.ToError()
}

func (v *ScopeValidator) visit(n ast.Node) {
	switch node := n.(type) {
	case *ast.Assign:
		v.visit(node.Expr)
		v.defined[node.Name] = true
	case *ast.Clear:
		clear(v.defined)
	case *ast.VarRef:
		if !v.defined[node.Name] {
			err := qerrors.Semantic(node.Loc, "Undefined variable %s", node.Name)
			err.Suggestion = qerrors.SuggestName(node.Name, slices.Sorted(maps.Keys(v.defined)))
			v.errors.Add(err)
		}
	default:
		for _, child := range n.Children() {
			v.visit(child)
		}
	}
}

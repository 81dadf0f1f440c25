package validator

import (
	"qalc-hq/qalc/pkg/qalc/ast"
	qerrors "qalc-hq/qalc/pkg/qalc/errors"
)

// Validator orchestrates the validation passes.
type Validator struct {
	scope *ScopeValidator
	calls *CallValidator
}

// Option configures a Validator.
type Option func(*Validator)

// WithPredefined declares variables that exist before the program starts,
// such as those of an interactive session.
func WithPredefined(names ...string) Option {
	return func(v *Validator) {
		v.scope.predefined = append(v.scope.predefined, names...)
	}
}

// NewValidator creates a new validator with all validation passes.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		scope: NewScopeValidator(),
		calls: NewCallValidator(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs all validation passes on a program and returns an
// *errors.ErrorList ordered by pass, or nil.
func (v *Validator) Validate(program *ast.CommandList) error {
	errs := qerrors.NewErrorList()
	collect(errs, v.scope.Validate(program))
	collect(errs, v.calls.Validate(program))
	return errs.ToError()
}

// ValidateScope runs only the scope pass.
func (v *Validator) ValidateScope(program *ast.CommandList) error {
	return v.scope.Validate(program)
}

// ValidateCalls runs only the call pass.
func (v *Validator) ValidateCalls(program *ast.CommandList) error {
	return v.calls.Validate(program)
}

func collect(into *qerrors.ErrorList, err error) {
	if list, ok := err.(*qerrors.ErrorList); ok {
		into.Errors = append(into.Errors, list.Errors...)
	}
}

// Package runtime evaluates compiled qalc programs.
//
// ExecutionContext implements ast.Context. Binary operators are dispatched
// through one table per operator keyed by the kinds of both operands; a pair
// with no entry is an execution error naming both kinds. Builtin functions
// live in a registry that the compiler consults for arity checks.
//
// An ExecutionContext owns a single variable environment and is not safe for
// concurrent use.
package runtime

import (
	"log/slog"
	"math/bits"
	"slices"
	"strings"

	"github.com/google/uuid"

	"qalc-hq/qalc/pkg/linalg"
	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/errors"
)

// Variable is a named entry of the environment.
type Variable struct {
	Name  string
	Value ast.Value
}

// ExecutionContext holds the environment and the services an evaluation
// needs.
type ExecutionContext struct {
	vars       map[string]ast.Value
	multiplier *linalg.Multiplier
	logger     *slog.Logger
	sessionID  string
}

// Option configures an ExecutionContext.
type Option func(*ExecutionContext)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ec *ExecutionContext) {
		if logger != nil {
			ec.logger = logger
		}
	}
}

// WithMultiplier sets the matrix multiplier used by the * operator. The
// default is linalg.DefaultMultiplier().
func WithMultiplier(mp *linalg.Multiplier) Option {
	return func(ec *ExecutionContext) {
		if mp != nil {
			ec.multiplier = mp
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(ec *ExecutionContext) {
		if id != "" {
			ec.sessionID = id
		}
	}
}

// NewExecutionContext creates a context with an empty environment.
func NewExecutionContext(opts ...Option) *ExecutionContext {
	ec := &ExecutionContext{
		vars:       make(map[string]ast.Value),
		multiplier: linalg.DefaultMultiplier(),
		logger:     slog.Default(),
		sessionID:  uuid.New().String(),
	}
	for _, opt := range opts {
		opt(ec)
	}
	ec.logger = ec.logger.With("session_id", ec.sessionID)
	return ec
}

// SessionID returns the id identifying this context in logs and metrics.
func (ec *ExecutionContext) SessionID() string {
	return ec.sessionID
}

// Multiplier returns the matrix multiplier.
func (ec *ExecutionContext) Multiplier() *linalg.Multiplier {
	return ec.multiplier
}

// Variables returns the environment sorted by name.
func (ec *ExecutionContext) Variables() []Variable {
	vars := make([]Variable, 0, len(ec.vars))
	for name, v := range ec.vars {
		vars = append(vars, Variable{Name: name, Value: v})
	}
	slices.SortFunc(vars, func(a, b Variable) int { return strings.Compare(a.Name, b.Name) })
	return vars
}

// Lookup returns the value bound to name.
func (ec *ExecutionContext) Lookup(name string) (ast.Value, bool) {
	v, ok := ec.vars[name]
	return v, ok
}

func (ec *ExecutionContext) Add(loc ast.Location, l, r ast.Value) (ast.Value, error) {
	return tables[ast.OpAdd].apply(ec, loc, l, r)
}

func (ec *ExecutionContext) Sub(loc ast.Location, l, r ast.Value) (ast.Value, error) {
	return tables[ast.OpSub].apply(ec, loc, l, r)
}

// Mul is the "." operator: the tensor product for two matrices and scalar
// multiplication otherwise.
func (ec *ExecutionContext) Mul(loc ast.Location, l, r ast.Value) (ast.Value, error) {
	return tables[ast.OpMul].apply(ec, loc, l, r)
}

// Mul0 is the "*" operator: the matrix product for two matrices and scalar
// multiplication otherwise.
func (ec *ExecutionContext) Mul0(loc ast.Location, l, r ast.Value) (ast.Value, error) {
	return tables[ast.OpMul0].apply(ec, loc, l, r)
}

func (ec *ExecutionContext) Div(loc ast.Location, l, r ast.Value) (ast.Value, error) {
	return tables[ast.OpDiv].apply(ec, loc, l, r)
}

func (ec *ExecutionContext) Cross(loc ast.Location, l, r ast.Value) (ast.Value, error) {
	return tables[ast.OpCross].apply(ec, loc, l, r)
}

func (ec *ExecutionContext) Negate(loc ast.Location, v ast.Value) (ast.Value, error) {
	switch v.Kind() {
	case ast.KindInteger:
		return ast.IntValue(-v.Int(), loc), nil
	case ast.KindComplex:
		return ast.ComplexValue(v.Complex().Neg(), loc), nil
	case ast.KindMatrix:
		return ast.MatrixValue(v.Matrix().Neg(), loc), nil
	}
	return ast.Value{}, errors.Execution(loc, "Unexpected %s argument", v.Kind())
}

// Dagger returns the conjugate transpose. Integers are their own adjoint.
func (ec *ExecutionContext) Dagger(loc ast.Location, v ast.Value) (ast.Value, error) {
	switch v.Kind() {
	case ast.KindInteger:
		return v.WithLocation(loc), nil
	case ast.KindComplex:
		return ast.ComplexValue(v.Complex().Conj(), loc), nil
	case ast.KindMatrix:
		return ast.MatrixValue(v.Matrix().Dagger(), loc), nil
	}
	return ast.Value{}, errors.Execution(loc, "Unexpected %s argument", v.Kind())
}

// Basis turns an integer k into the column basis vector |k> over the
// smallest register holding k, at least one qubit.
func (ec *ExecutionContext) Basis(loc ast.Location, v ast.Value) (ast.Value, error) {
	k, err := intArg(loc, v)
	if err != nil {
		return ast.Value{}, err
	}
	if k < 0 {
		return ast.Value{}, errors.Execution(loc, "Basis index should be non-negative: actual (%d)", k)
	}
	numBits := max(1, bits.Len(uint(k)))
	if numBits > MaxQubits {
		return ast.Value{}, errors.Execution(loc, "Basis index needs %d qubits, more than %d", numBits, MaxQubits)
	}
	m, err := linalg.BasisState(1<<numBits, k)
	if err != nil {
		return ast.Value{}, errors.Execution(loc, "%s", err.Error())
	}
	return ast.MatrixValue(m, loc), nil
}

// Assign binds name and returns the value stamped with the assignment's
// location.
func (ec *ExecutionContext) Assign(loc ast.Location, name string, v ast.Value) (ast.Value, error) {
	v = v.WithLocation(loc)
	ec.vars[name] = v
	ec.logger.Debug("variable assigned", "name", name, "kind", v.Kind().String())
	return v, nil
}

// Retrieve returns the value bound to name with the location it was
// assigned at.
func (ec *ExecutionContext) Retrieve(loc ast.Location, name string) (ast.Value, error) {
	v, ok := ec.vars[name]
	if !ok {
		err := errors.Execution(loc, "Undefined variable %s", name)
		err.Suggestion = errors.SuggestName(name, ec.names())
		return ast.Value{}, err
	}
	return v, nil
}

// Clear empties the environment and returns 0.
func (ec *ExecutionContext) Clear(loc ast.Location) (ast.Value, error) {
	n := len(ec.vars)
	clear(ec.vars)
	ec.logger.Debug("environment cleared", "variables", n)
	return ast.IntValue(0, loc), nil
}

// Call invokes the builtin name. The compiler has already checked the
// arity; it is checked again for callers building trees by hand.
func (ec *ExecutionContext) Call(loc ast.Location, name string, args []ast.Value) (ast.Value, error) {
	b, ok := LookupBuiltin(name)
	if !ok {
		err := errors.Execution(loc, "Undefined function %s", name)
		err.Suggestion = errors.SuggestName(name, BuiltinNames())
		return ast.Value{}, err
	}
	if len(args) != b.Arity {
		return ast.Value{}, errors.Execution(loc, "%s requires %d arguments: actual (%d)", name, b.Arity, len(args))
	}
	return b.Func(ec, loc, args)
}

func (ec *ExecutionContext) names() []string {
	names := make([]string, 0, len(ec.vars))
	for name := range ec.vars {
		names = append(names, name)
	}
	return names
}

var _ ast.Context = (*ExecutionContext)(nil)

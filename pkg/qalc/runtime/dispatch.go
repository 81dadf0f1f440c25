package runtime

import (
	"qalc-hq/qalc/pkg/linalg"
	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/errors"
)

// binaryFunc implements one (left kind, right kind) cell of an operator.
type binaryFunc func(ec *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error)

// dispatchTable maps every pair of value kinds to the function implementing
// an operator for that pair. Empty cells report a type mismatch.
type dispatchTable struct {
	cells [ast.NumKinds][ast.NumKinds]binaryFunc
}

func newDispatchTable() *dispatchTable {
	return &dispatchTable{}
}

func (t *dispatchTable) on(l, r ast.Kind, fn binaryFunc) *dispatchTable {
	t.cells[l][r] = fn
	return t
}

// scalars fills the four scalar cells. Two integers use intFn; every other
// scalar pair is widened to complex.
func (t *dispatchTable) scalars(intFn func(loc ast.Location, a, b int) (ast.Value, error), complexFn func(loc ast.Location, a, b linalg.Complex) (ast.Value, error)) *dispatchTable {
	widened := func(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
		a, _ := l.AsComplex()
		b, _ := r.AsComplex()
		return complexFn(loc, a, b)
	}
	t.on(ast.KindInteger, ast.KindComplex, widened)
	t.on(ast.KindComplex, ast.KindInteger, widened)
	t.on(ast.KindComplex, ast.KindComplex, widened)
	t.on(ast.KindInteger, ast.KindInteger, func(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
		return intFn(loc, l.Int(), r.Int())
	})
	return t
}

// scaling fills the scalar×matrix and matrix×scalar cells with fn.
func (t *dispatchTable) scaling(fn func(m *linalg.Matrix, c linalg.Complex) *linalg.Matrix) *dispatchTable {
	left := func(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
		c, _ := l.AsComplex()
		return collapse(fn(r.Matrix(), c), loc), nil
	}
	right := func(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
		c, _ := r.AsComplex()
		return collapse(fn(l.Matrix(), c), loc), nil
	}
	t.on(ast.KindInteger, ast.KindMatrix, left)
	t.on(ast.KindComplex, ast.KindMatrix, left)
	t.on(ast.KindMatrix, ast.KindInteger, right)
	t.on(ast.KindMatrix, ast.KindComplex, right)
	return t
}

func (t *dispatchTable) apply(ec *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
	fn := t.cells[l.Kind()][r.Kind()]
	if fn == nil {
		return ast.Value{}, errors.Execution(loc, "Unexpected %s, %s arguments", l.Kind(), r.Kind())
	}
	return fn(ec, loc, l, r)
}

// collapse turns a 1×1 matrix into a complex scalar.
func collapse(m *linalg.Matrix, loc ast.Location) ast.Value {
	if m.IsScalar() {
		return ast.ComplexValue(m.At(0, 0), loc)
	}
	return ast.MatrixValue(m, loc)
}

func complexResult(loc ast.Location, c linalg.Complex) (ast.Value, error) {
	return ast.ComplexValue(c, loc), nil
}

func shapeError(loc ast.Location, err error) error {
	return errors.Execution(loc, "%s", err.Error())
}

// tables holds one dispatch table per binary operator.
var tables = map[ast.BinaryOp]*dispatchTable{
	ast.OpAdd: newDispatchTable().
		scalars(intAdd, complexAdd).
		on(ast.KindMatrix, ast.KindMatrix, matrixAdd),
	ast.OpSub: newDispatchTable().
		scalars(intSub, complexSub).
		on(ast.KindMatrix, ast.KindMatrix, matrixSub),
	ast.OpMul0: newDispatchTable().
		scalars(intMul, complexMul).
		scaling((*linalg.Matrix).MulScalar).
		on(ast.KindMatrix, ast.KindMatrix, matrixProduct),
	ast.OpMul: newDispatchTable().
		scalars(intMul, complexMul).
		scaling((*linalg.Matrix).MulScalar).
		on(ast.KindMatrix, ast.KindMatrix, matrixTensor),
	ast.OpDiv: newDispatchTable().
		scalars(intDiv, complexDiv).
		on(ast.KindMatrix, ast.KindInteger, matrixDiv).
		on(ast.KindMatrix, ast.KindComplex, matrixDiv),
	ast.OpCross: newDispatchTable().
		on(ast.KindMatrix, ast.KindMatrix, matrixCross),
}

func intAdd(loc ast.Location, a, b int) (ast.Value, error) {
	return ast.IntValue(a+b, loc), nil
}

func complexAdd(loc ast.Location, a, b linalg.Complex) (ast.Value, error) {
	return complexResult(loc, a.Add(b))
}

func intSub(loc ast.Location, a, b int) (ast.Value, error) {
	return ast.IntValue(a-b, loc), nil
}

func complexSub(loc ast.Location, a, b linalg.Complex) (ast.Value, error) {
	return complexResult(loc, a.Sub(b))
}

func matrixAdd(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
	m, err := l.Matrix().Add(r.Matrix())
	if err != nil {
		return ast.Value{}, shapeError(loc, err)
	}
	return ast.MatrixValue(m, loc), nil
}

func matrixSub(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
	m, err := l.Matrix().Sub(r.Matrix())
	if err != nil {
		return ast.Value{}, shapeError(loc, err)
	}
	return ast.MatrixValue(m, loc), nil
}

// matrixProduct is the standard product; a 1×1 result collapses to a scalar.
func matrixProduct(ec *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
	m, err := ec.multiplier.Mul(l.Matrix(), r.Matrix())
	if err != nil {
		return ast.Value{}, shapeError(loc, err)
	}
	return collapse(m, loc), nil
}

// matrixTensor is the Kronecker product; a 1×1 result collapses to a scalar.
func matrixTensor(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
	return collapse(l.Matrix().Cross(r.Matrix()), loc), nil
}

func matrixCross(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
	return ast.MatrixValue(l.Matrix().Cross(r.Matrix()), loc), nil
}

func intMul(loc ast.Location, a, b int) (ast.Value, error) {
	return ast.IntValue(a*b, loc), nil
}

func complexMul(loc ast.Location, a, b linalg.Complex) (ast.Value, error) {
	return complexResult(loc, a.Mul(b))
}

// intDiv keeps exact quotients integral.
func intDiv(loc ast.Location, a, b int) (ast.Value, error) {
	if b == 0 {
		return ast.Value{}, errors.Execution(loc, "Division by zero")
	}
	if a%b == 0 {
		return ast.IntValue(a/b, loc), nil
	}
	return complexResult(loc, linalg.Real(float32(a)/float32(b)))
}

func complexDiv(loc ast.Location, a, b linalg.Complex) (ast.Value, error) {
	if b.IsZero() {
		return ast.Value{}, errors.Execution(loc, "Division by zero")
	}
	return complexResult(loc, a.Div(b))
}

func matrixDiv(_ *ExecutionContext, loc ast.Location, l, r ast.Value) (ast.Value, error) {
	c, _ := r.AsComplex()
	if c.IsZero() {
		return ast.Value{}, errors.Execution(loc, "Division by zero")
	}
	return ast.MatrixValue(l.Matrix().DivScalar(c), loc), nil
}

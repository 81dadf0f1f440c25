package linalg

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is an immutable dense complex matrix stored in row-major order.
// The invariant len(cells) == rows*cols holds for every Matrix built by this
// package.
type Matrix struct {
	rows  int
	cols  int
	cells []Complex
}

// ShapeError reports operands whose dimensions do not fit an operation.
type ShapeError struct {
	Op    string
	Left  string
	Right string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Right == "" {
		return fmt.Sprintf("%s: invalid shape %s", e.Op, e.Left)
	}
	return fmt.Sprintf("%s: shapes %s and %s do not match", e.Op, e.Left, e.Right)
}

// New creates a rows×cols matrix from row-major cells. The slice is copied.
func New(rows, cols int, cells []Complex) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, &ShapeError{Op: "new", Left: shape(rows, cols)}
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("new: %d cells do not fill a %s matrix", len(cells), shape(rows, cols))
	}
	data := make([]Complex, len(cells))
	copy(data, cells)
	return &Matrix{rows: rows, cols: cols, cells: data}, nil
}

// MustNew is like New but panics on invalid dimensions. It is intended for
// package-level constants built from literals.
func MustNew(rows, cols int, cells ...Complex) *Matrix {
	m, err := New(rows, cols, cells)
	if err != nil {
		panic(err)
	}
	return m
}

// FromReal creates a rows×cols matrix with real entries.
func FromReal(rows, cols int, values ...float32) (*Matrix, error) {
	cells := make([]Complex, len(values))
	for i, v := range values {
		cells[i] = Real(v)
	}
	return New(rows, cols, cells)
}

// Column creates a column vector from the given amplitudes.
func Column(values ...Complex) *Matrix {
	return MustNew(len(values), 1, values...)
}

// Zeros creates a rows×cols zero matrix.
func Zeros(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, cells: make([]Complex, rows*cols)}
}

// Identity creates the n×n identity matrix.
func Identity(n int) *Matrix {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m.cells[i*n+i] = One
	}
	return m
}

// BasisState returns the column vector of length size with a single 1 at index.
func BasisState(size, index int) (*Matrix, error) {
	if index < 0 || index >= size {
		return nil, fmt.Errorf("basis state %d out of range [0, %d)", index, size)
	}
	m := Zeros(size, 1)
	m.cells[index] = One
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) Complex {
	return m.cells[i*m.cols+j]
}

// Cells returns a copy of the row-major cells.
func (m *Matrix) Cells() []Complex {
	out := make([]Complex, len(m.cells))
	copy(out, m.cells)
	return out
}

// Shape returns the dimensions formatted as "rowsxcols".
func (m *Matrix) Shape() string {
	return shape(m.rows, m.cols)
}

// IsSquare reports whether the matrix has as many rows as columns.
func (m *Matrix) IsSquare() bool {
	return m.rows == m.cols
}

// IsScalar reports whether the matrix is 1×1.
func (m *Matrix) IsScalar() bool {
	return m.rows == 1 && m.cols == 1
}

// Add returns m + o. Both operands must have the same shape.
func (m *Matrix) Add(o *Matrix) (*Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return nil, &ShapeError{Op: "add", Left: m.Shape(), Right: o.Shape()}
	}
	return m.zip(o, Complex.Add), nil
}

// Sub returns m - o. Both operands must have the same shape.
func (m *Matrix) Sub(o *Matrix) (*Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return nil, &ShapeError{Op: "sub", Left: m.Shape(), Right: o.Shape()}
	}
	return m.zip(o, Complex.Sub), nil
}

// Scale multiplies every cell by the real factor f.
func (m *Matrix) Scale(f float32) *Matrix {
	return m.mapCells(func(c Complex) Complex { return c.Scale(f) })
}

// MulScalar multiplies every cell by c.
func (m *Matrix) MulScalar(c Complex) *Matrix {
	return m.mapCells(func(x Complex) Complex { return x.Mul(c) })
}

// DivScalar divides every cell by c.
func (m *Matrix) DivScalar(c Complex) *Matrix {
	return m.mapCells(func(x Complex) Complex { return x.Div(c) })
}

// Neg returns -m.
func (m *Matrix) Neg() *Matrix {
	return m.mapCells(Complex.Neg)
}

// Conj returns the element-wise complex conjugate.
func (m *Matrix) Conj() *Matrix {
	return m.mapCells(Complex.Conj)
}

// Transpose returns the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	out := Zeros(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.cells[j*m.rows+i] = m.cells[i*m.cols+j]
		}
	}
	return out
}

// Dagger returns the conjugate transpose of m.
func (m *Matrix) Dagger() *Matrix {
	out := Zeros(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.cells[j*m.rows+i] = m.cells[i*m.cols+j].Conj()
		}
	}
	return out
}

// Mul returns the matrix product m·o using the default Multiplier.
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	return DefaultMultiplier().Mul(m, o)
}

// Cross returns the tensor (Kronecker) product m ⊗ o. Cell (i,k) of m and
// cell (j,l) of o produce cell (i·o.rows+j, k·o.cols+l) of the result.
func (m *Matrix) Cross(o *Matrix) *Matrix {
	rows := m.rows * o.rows
	cols := m.cols * o.cols
	out := Zeros(rows, cols)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			a := m.cells[i*m.cols+k]
			if a.IsZero() {
				continue
			}
			for j := 0; j < o.rows; j++ {
				row := (i*o.rows + j) * cols
				for l := 0; l < o.cols; l++ {
					out.cells[row+k*o.cols+l] = a.Mul(o.cells[j*o.cols+l])
				}
			}
		}
	}
	return out
}

// Norm returns the Frobenius norm of m.
func (m *Matrix) Norm() float32 {
	var sum float64
	for _, c := range m.cells {
		sum += float64(c.Modulus2())
	}
	return float32(math.Sqrt(sum))
}

// Equal reports whether m and o have the same shape and identical cells.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// IsClose reports whether m and o have the same shape and every pair of
// cells is within eps.
func (m *Matrix) IsClose(o *Matrix, eps float32) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.cells {
		if !m.cells[i].IsClose(o.cells[i], eps) {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(",\n ")
		}
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.cells[i*m.cols+j].String())
		}
		sb.WriteString("]")
	}
	sb.WriteString("]")
	return sb.String()
}

func (m *Matrix) mapCells(f func(Complex) Complex) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, cells: make([]Complex, len(m.cells))}
	for i, c := range m.cells {
		out.cells[i] = f(c)
	}
	return out
}

func (m *Matrix) zip(o *Matrix, f func(Complex, Complex) Complex) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, cells: make([]Complex, len(m.cells))}
	for i := range m.cells {
		out.cells[i] = f(m.cells[i], o.cells[i])
	}
	return out
}

func shape(rows, cols int) string {
	return fmt.Sprintf("%dx%d", rows, cols)
}

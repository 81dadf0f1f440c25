package cli

import (
	"strconv"
	"strings"

	"qalc-hq/qalc/pkg/qalc/ast"
)

// ValueRecord is the printable form of one statement result.
type ValueRecord struct {
	Statement int    `json:"statement"`
	Line      int    `json:"line,omitempty"`
	Kind      string `json:"kind"`
	Shape     string `json:"shape,omitempty"`
	Value     string `json:"value"`
}

// ValueReport holds the results of running one source.
type ValueReport struct {
	Source string        `json:"source,omitempty"`
	Values []ValueRecord `json:"values"`
	Error  string        `json:"error,omitempty"`
}

// NewValueReport records values, one per completed statement, and the error
// that stopped the run, if any.
func NewValueReport(source string, values []ast.Value, err error) *ValueReport {
	r := &ValueReport{
		Source: source,
		Values: make([]ValueRecord, len(values)),
	}
	for i, v := range values {
		rec := ValueRecord{
			Statement: i + 1,
			Line:      v.Location().Line,
			Kind:      v.Kind().String(),
			Value:     v.String(),
		}
		if v.Kind() == ast.KindMatrix && v.Matrix() != nil {
			rec.Shape = v.Matrix().Shape()
		}
		r.Values[i] = rec
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// String prints one value per line. Errors are left to the caller, which
// writes them to stderr.
func (r *ValueReport) String() string {
	lines := make([]string, len(r.Values))
	for i, v := range r.Values {
		lines[i] = v.Value
	}
	return strings.Join(lines, "\n")
}

// Header implements Table.
func (r *ValueReport) Header() []string {
	return []string{"source", "statement", "line", "kind", "shape", "value"}
}

// Rows implements Table.
func (r *ValueReport) Rows() [][]string {
	rows := make([][]string, len(r.Values))
	for i, v := range r.Values {
		rows[i] = []string{
			r.Source,
			strconv.Itoa(v.Statement),
			strconv.Itoa(v.Line),
			v.Kind,
			v.Shape,
			v.Value,
		}
	}
	return rows
}

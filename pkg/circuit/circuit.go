package circuit

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"qalc-hq/qalc/pkg/gates"
	"qalc-hq/qalc/pkg/qalc/ast"
	qerrors "qalc-hq/qalc/pkg/qalc/errors"
	"qalc-hq/qalc/pkg/qalc/runtime"
)

// DefaultMaxFileSize bounds the size of a circuit document.
const DefaultMaxFileSize = 1 << 20

// Circuit is an ordered gate sequence over a fixed register.
type Circuit struct {
	Name     string
	Source   string
	Qubits   int
	Input    int  // Basis index to apply the unitary to
	HasInput bool // Whether the document named an input
	Gates    []*gates.QuGate
}

// Loader reads circuit documents.
type Loader struct {
	maxFileSize int64
}

// NewLoader creates a loader with the default size limit.
func NewLoader() *Loader {
	return &Loader{maxFileSize: DefaultMaxFileSize}
}

// WithMaxFileSize sets the maximum document size in bytes.
func (l *Loader) WithMaxFileSize(size int64) *Loader {
	l.maxFileSize = size
	return l
}

// Load reads the circuit stored at path.
func Load(path string) (*Circuit, error) {
	return NewLoader().Load(path)
}

// Load reads the circuit stored at path.
func (l *Loader) Load(path string) (*Circuit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access circuit file: %w", err)
	}
	if info.Size() > l.maxFileSize {
		return nil, fmt.Errorf("circuit file size %d exceeds maximum %d bytes", info.Size(), l.maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read circuit file: %w", err)
	}
	return l.Parse(data, path)
}

// Parse builds a circuit from YAML data. source names the document in the
// returned Circuit.
func (l *Loader) Parse(data []byte, source string) (*Circuit, error) {
	if int64(len(data)) > l.maxFileSize {
		return nil, fmt.Errorf("circuit size %d exceeds maximum %d bytes", len(data), l.maxFileSize)
	}
	doc, err := parseYAML(data)
	if err != nil {
		return nil, qerrors.Syntax(ast.Location{}, "YAML parsing failed: %v", err)
	}
	return build(doc, newSourceLines(data), source)
}

func build(doc *document, lines sourceLines, source string) (*Circuit, error) {
	errs := qerrors.NewErrorList()
	c := &Circuit{Name: doc.Name, Source: source}

	if len(doc.Gates) == 0 {
		errs.Add(qerrors.Semantic(lines.location(doc.qubitsPos, "gates"), "Circuit has no gates"))
	}

	width := 0
	for _, entry := range doc.Gates {
		loc := lines.location(entry.pos, entry.Type)
		g, err := newGate(entry)
		if err != nil {
			errs.Add(qerrors.Semantic(loc, "%s", err.Error()))
			continue
		}
		width = max(width, g.NumBits())
		c.Gates = append(c.Gates, g)
	}

	c.Qubits = doc.Qubits
	if c.Qubits == 0 {
		c.Qubits = max(width, 1)
	}
	qubitsLoc := lines.location(doc.qubitsPos, strconv.Itoa(doc.Qubits))
	validWidth := false
	switch {
	case c.Qubits < 1 || c.Qubits > runtime.MaxQubits:
		errs.Add(qerrors.Semantic(qubitsLoc, "Qubits out of range [1, %d]: actual (%d)", runtime.MaxQubits, c.Qubits))
	case width > c.Qubits:
		errs.Add(qerrors.Semantic(qubitsLoc, "Gates need %d qubits, register has %d", width, c.Qubits))
	default:
		validWidth = true
	}

	if doc.Input != nil {
		c.Input, c.HasInput = *doc.Input, true
		size := 1 << max(c.Qubits, 0)
		if validWidth && (c.Input < 0 || c.Input >= size) {
			loc := lines.location(doc.inputPos, strconv.Itoa(c.Input))
			errs.Add(qerrors.Semantic(loc, "Input out of range [0, %d): actual (%d)", size, c.Input))
		}
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return c, nil
}

// mapperArity lists the mapper steps of a map gate. remap takes one index per
// gate qubit.
var mapperArity = map[string]int{
	gates.TypeX:     1,
	gates.TypeCNOT:  2,
	gates.TypeSWAP:  2,
	gates.TypeCCNOT: 3,
	"remap":         0,
}

func newGate(entry gateEntry) (*gates.QuGate, error) {
	if !strings.EqualFold(entry.Type, gates.TypeMap) {
		return gates.Gate(entry.Type, entry.Indices...)
	}
	mapper, err := parseMapper(len(entry.Indices), entry.Map)
	if err != nil {
		return nil, err
	}
	return gates.NewMapGate(mapper, entry.Indices...)
}

// parseMapper builds a mapper from steps such as "cnot 0 1". Step indices are
// local to the gate: 0 is the gate's first qubit.
func parseMapper(numBits int, steps []string) (gates.BitStateMapper, error) {
	m := gates.NewBitStateMapper(numBits)
	if numBits == 0 {
		return m, fmt.Errorf("gate map: no qubit indices")
	}
	if len(steps) == 0 {
		return m, fmt.Errorf("gate map: no mapper steps")
	}
	for _, step := range steps {
		fields := strings.Fields(step)
		if len(fields) == 0 {
			return m, fmt.Errorf("gate map: empty mapper step")
		}
		op := strings.ToLower(fields[0])
		args := make([]int, 0, len(fields)-1)
		for _, f := range fields[1:] {
			q, err := strconv.Atoi(f)
			if err != nil || q < 0 || q >= numBits {
				return m, fmt.Errorf("gate map: step %q: local index %s out of range [0, %d)", step, f, numBits)
			}
			args = append(args, q)
		}
		want, ok := mapperArity[op]
		if op == "remap" {
			want = numBits
		}
		if !ok {
			return m, fmt.Errorf("gate map: unknown mapper step %q", fields[0])
		}
		if len(args) != want {
			return m, fmt.Errorf("gate map: step %s requires %d indices: actual (%d)", op, want, len(args))
		}
		if err := gates.CheckIndices(args); err != nil {
			return m, err
		}
		switch op {
		case gates.TypeX:
			m = m.X(args[0])
		case gates.TypeCNOT:
			m = m.CNOT(args[0], args[1])
		case gates.TypeSWAP:
			m = m.SWAP(args[0], args[1])
		case gates.TypeCCNOT:
			m = m.CCNOT(args[0], args[1], args[2])
		default:
			m = m.Remap(args)
		}
	}
	return m, nil
}

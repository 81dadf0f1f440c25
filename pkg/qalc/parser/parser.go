package parser

import (
	"fmt"
	"os"

	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/lexer"
)

// DefaultMaxSourceSize is the largest source accepted by a new Parser.
const DefaultMaxSourceSize = 1 << 20

// Parser compiles qalc sources. A Parser holds only configuration and is
// safe for concurrent use.
type Parser struct {
	maxSourceSize int64
}

// NewParser creates a parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxSourceSize: DefaultMaxSourceSize,
	}
}

// WithMaxSourceSize sets the maximum source size in bytes.
func (p *Parser) WithMaxSourceSize(size int64) *Parser {
	p.maxSourceSize = size
	return p
}

// Parse compiles the file at path.
func (p *Parser) Parse(path string) (*ast.CommandList, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.Size() > p.maxSourceSize {
		return nil, fmt.Errorf("%s: size %d exceeds maximum %d bytes", path, info.Size(), p.maxSourceSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.ParseString(string(data))
}

// ParseString compiles src.
func (p *Parser) ParseString(src string) (*ast.CommandList, error) {
	if int64(len(src)) > p.maxSourceSize {
		return nil, fmt.Errorf("source size %d exceeds maximum %d bytes", len(src), p.maxSourceSize)
	}
	g, err := qalcGrammar()
	if err != nil {
		return nil, fmt.Errorf("qalc grammar: %w", err)
	}
	c := &compiler{}
	return c.parse(g, lexer.New(src))
}

// ParseMulti compiles several files into one program whose statements run
// in file order.
func (p *Parser) ParseMulti(paths []string) (*ast.CommandList, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no source files provided")
	}

	program, err := p.Parse(paths[0])
	if err != nil {
		return nil, err
	}
	for _, path := range paths[1:] {
		more, err := p.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, item := range more.Items {
			program.Append(item)
		}
	}
	return program, nil
}

// Compile compiles src with a default Parser.
func Compile(src string) (*ast.CommandList, error) {
	return NewParser().ParseString(src)
}

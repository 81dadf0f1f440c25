package qalc

import (
	"context"

	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/parser"
	"qalc-hq/qalc/pkg/qalc/validator"
)

// Compile parses src into a program without running any checks.
func Compile(src string) (*ast.CommandList, error) {
	return parser.Compile(src)
}

// CompileFile parses the program stored at path.
func CompileFile(path string) (*ast.CommandList, error) {
	return parser.NewParser().Parse(path)
}

// Check compiles src and runs the static checks on it.
func Check(src string) (*ast.CommandList, error) {
	program, err := parser.Compile(src)
	if err != nil {
		return nil, err
	}
	if err := validator.NewValidator().Validate(program); err != nil {
		return program, err
	}
	return program, nil
}

// Run compiles and evaluates src in a fresh environment and returns one
// value per statement.
func Run(src string) ([]ast.Value, error) {
	return NewSession().Eval(context.Background(), "", src)
}

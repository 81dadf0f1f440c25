// Package parser compiles qalc source text into an AST.
//
// The qalc grammar is declared with the grammar package's combinators and
// bound once per process. Compilation drives the grammar over a lexer and
// folds every completed rule into an operand stack of ast nodes; the result
// is the top-level ast.CommandList with one node per statement.
//
// Calls to builtins are checked against the runtime registry while parsing,
// so an argument-count mismatch is reported as a syntax error before any
// statement runs.
//
// # Basic Usage
//
// Compile a string:
//
//	program, err := parser.Compile("let bell = CNOT(0, 1) * H(0); bell * |0>;")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Compile a file with a size limit:
//
//	p := parser.NewParser().WithMaxSourceSize(64 * 1024)
//	program, err := p.Parse("circuits/bell.qc")
package parser

// Package qalc is the entry point to the qalc quantum-circuit algebra
// language.
//
// A qalc program is a sequence of statements over integers, complex numbers
// and complex matrices. Gates, kets and bras are values; `*` multiplies
// matrices, `x` takes their tensor product and `^` their conjugate transpose:
//
//	let bell = CNOT(0, 1) * (H(0) . I(1));
//	bell * |0> x |0>;
//
// # Architecture
//
// The package is organized into subpackages:
//
//   - lexer: source text to tokens with line and column information
//   - grammar: rule-table combinators driving a recursive-descent parse
//   - parser: the qalc rule table and the actions that build the AST
//   - ast: program nodes and the Value type
//   - runtime: the ExecutionContext, operator dispatch and builtins
//   - validator: static checks over a compiled program
//   - errors: caret diagnostics shared by every stage
//
// # Basic Usage
//
// One-shot evaluation with a fresh environment:
//
//	values, err := qalc.Run("let a = 1; a + 1;")
//
// A Session keeps its variables between calls and reports to the
// configured logger, metrics collector and tracer:
//
//	s := qalc.NewSession(qalc.WithLogger(logger), qalc.WithCollector(collector))
//	values, err := s.Eval(ctx, "<stdin>", "let psi = H(0) * |0>;")
//	values, err = s.Eval(ctx, "<stdin>", "psi^ * psi;")
package qalc

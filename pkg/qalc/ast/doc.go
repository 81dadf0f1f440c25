// Package ast defines the syntax tree and runtime values of the qalc
// circuit algebra language.
//
// Nodes are produced by the parser and are operation-agnostic: evaluating a
// node only walks its children and hands the results to a Context, which owns
// every arithmetic rule. Every node and every Value carries the Location of
// the source token that produced it so diagnostics can point back at the
// offending lexeme.
//
// # Core Types
//
// Node: a compiled expression or statement (Literal, VarRef, Assign, Clear,
// Unary, Binary, Call, CommandList)
//
// Value: a tagged runtime value (integer, complex, matrix, list)
//
// Context: the evaluator a Node delegates to
//
// Location: source token, line text, line and column
//
// # Basic Usage
//
//	list, err := parser.Compile("let a = H(0); a * |0>;")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := list.Evaluate(runtime.NewExecutionContext())
//	fmt.Println(v)
package ast

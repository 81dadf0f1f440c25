package parser

import (
	"slices"
	"sync"

	"qalc-hq/qalc/pkg/qalc/grammar"
	"qalc-hq/qalc/pkg/qalc/runtime"
)

// Keywords and operator words that can never name a variable.
var keywords = []string{"let", "clear", "i", "pi", "e", "x"}

// Reserved returns every identifier that cannot be used as a variable name.
func Reserved() []string {
	reserved := append(slices.Clone(keywords), runtime.BuiltinNames()...)
	slices.Sort(reserved)
	return reserved
}

// qalcGrammar is built once; a binding error here is a defect in the rule
// table below.
var qalcGrammar = sync.OnceValues(buildGrammar)

// buildGrammar registers the qalc rules:
//
//	program    := statement* EOF
//	statement  := "let" IDENT "=" expression ";" | "clear" "(" ")" ";" | expression ";"
//	expression := term (("+" | "-") term)*
//	term       := factor (("*" | "." | "/") factor)*
//	factor     := operand ("x" operand)*
//	operand    := "-" value | "+" value | value
//	value      := primary "^"*
//	primary    := "(" expression ")" | "<" state "|" | "|" state ">" | "i" | "pi" | "e"
//	            | FUNCTION "(" arguments ")" | IDENT | INT | REAL
//	state      := "i" | "+" | "-" "i"? | expression
func buildGrammar() (*grammar.Grammar, error) {
	b := grammar.NewBuilder()

	b.Require("program", "open program", "statements", "end of input").
		Empty("open program").
		Repeat("statements", "statement").
		EndOfInput("end of input").
		Alternatives("statement", "let", "clear", "expression statement")

	b.SequenceIf("let", "let keyword", "variable", "=", "expression", ";").
		IdentifierIn("let keyword", "let").
		SequenceIf("clear", "clear keyword", "(", ")", ";").
		IdentifierIn("clear keyword", "clear").
		SequenceIf("expression statement", "expression", ";")

	b.SequenceIf("expression", "term", "additions").
		Repeat("additions", "addition").
		Alternatives("addition", "add", "sub").
		SequenceIf("add", "+", "term").
		SequenceIf("sub", "-", "term")

	b.SequenceIf("term", "factor", "products").
		Repeat("products", "product").
		Alternatives("product", "mul0", "mul", "div").
		SequenceIf("mul0", "*", "factor").
		SequenceIf("mul", ".", "factor").
		SequenceIf("div", "/", "factor")

	b.SequenceIf("factor", "operand", "tensors").
		Repeat("tensors", "tensor").
		SequenceIf("tensor", "x", "operand").
		IdentifierIn("x", "x")

	b.Alternatives("operand", "negation", "plus sign", "value").
		SequenceIf("negation", "-", "value").
		SequenceIf("plus sign", "+", "value").
		SequenceIf("value", "primary", "daggers").
		Repeat("daggers", "^")

	b.Alternatives("primary", "group", "bra", "ket", "constant", "call", "variable", "integer", "real").
		SequenceIf("group", "(", "expression", ")").
		SequenceIf("bra", "<", "state", "|").
		SequenceIf("ket", "|", "state", ">").
		Alternatives("constant", "i", "pi", "e").
		IdentifierIn("i", "i").
		IdentifierIn("pi", "pi").
		IdentifierIn("e", "e").
		IdentifierNotIn("variable", Reserved()...).
		IntLiteral("integer").
		RealLiteral("real")

	b.Alternatives("state", "state i", "state plus", "state minus", "state expression").
		IdentifierIn("state i", "i").
		SequenceIf("state plus", "+").
		SequenceIf("state minus", "-", "minus phase").
		Alternatives("minus phase", "minus i", "minus real").
		IdentifierIn("minus i", "i").
		Empty("minus real").
		SequenceIf("state expression", "expression")

	b.SequenceIf("call", "function", "(", "open arguments", "arguments", ")").
		IdentifierIn("function", runtime.BuiltinNames()...).
		Empty("open arguments").
		Alternatives("arguments", "argument list", "no arguments").
		SequenceIf("argument list", "argument", "more arguments").
		Repeat("more arguments", "next argument").
		SequenceIf("next argument", ",", "argument").
		SequenceIf("argument", "expression").
		Empty("no arguments")

	for _, op := range []string{"(", ")", "<", ">", "|", "+", "-", "*", ".", "/", "^", "=", ";", ","} {
		b.Operator(op)
	}

	return b.Build("program")
}

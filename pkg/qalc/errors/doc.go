// Package errors provides the diagnostic error type shared by the qalc
// lexer, grammar, compiler and runtime.
//
// Every error carries the Location of the token that caused it and renders
// as a two-line caret diagnostic:
//
//	1:let a = H(0) + ;
//	 :---------------^ Missing term token(";")
//
// The first line is the line number and the source line. The second line
// pads the line-number width, then draws one dash per column before the
// caret, followed by the message and the offending lexeme.
//
// # Error Types
//
// ErrorTypeBinding: grammar construction errors (duplicate or unknown rule)
//
// ErrorTypeSyntax: lexing and parsing errors, including arity checks
//
// ErrorTypeExecution: evaluation errors (type mismatch, undefined variable)
//
// ErrorTypeSemantic: static checks run before evaluation (use before
// assignment, invalid literal gate indices)
//
// Static checks report every problem they find at once through an ErrorList.
//
// # Basic Usage
//
//	err := errors.Execution(loc, "Undefined variable %s", name)
//	fmt.Println(err.Error())
//
// Suggestions are kept apart from the diagnostic so that callers control
// whether to show them:
//
//	err.Suggestion = errors.SuggestName(name, known)
package errors

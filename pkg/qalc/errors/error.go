package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"qalc-hq/qalc/pkg/qalc/ast"
)

// ErrorType categorizes the stage that produced an error.
type ErrorType string

const (
	ErrorTypeBinding   ErrorType = "binding"   // Grammar rule binding error
	ErrorTypeSyntax    ErrorType = "syntax"    // Lexing or parsing error
	ErrorTypeExecution ErrorType = "execution" // Evaluation error
	ErrorTypeSemantic  ErrorType = "semantic"  // Static check error
)

// Error is a diagnostic anchored at a source token.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Location   ast.Location // Offending token
	Suggestion string       // Suggested fix (optional, not part of Error())
}

// New creates an error of the given type.
func New(typ ErrorType, loc ast.Location, format string, args ...any) *Error {
	return &Error{
		Type:     typ,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// Binding creates a grammar binding error.
func Binding(format string, args ...any) *Error {
	return New(ErrorTypeBinding, ast.Location{}, format, args...)
}

// Syntax creates a syntax error at loc.
func Syntax(loc ast.Location, format string, args ...any) *Error {
	return New(ErrorTypeSyntax, loc, format, args...)
}

// Semantic creates a static check error at loc.
func Semantic(loc ast.Location, format string, args ...any) *Error {
	return New(ErrorTypeSemantic, loc, format, args...)
}

// Execution creates an execution error at loc.
func Execution(loc ast.Location, format string, args ...any) *Error {
	return New(ErrorTypeExecution, loc, format, args...)
}

// Error implements the error interface. Errors without a source line render
// as the bare message.
func (e *Error) Error() string {
	if !e.Location.IsValid() {
		return e.Message
	}
	return Render(e.Location, e.Message)
}

// Render formats message as a two-line caret diagnostic pointing at loc.
func Render(loc ast.Location, message string) string {
	line := strconv.Itoa(loc.Line)

	var sb strings.Builder
	sb.WriteString(line)
	sb.WriteString(":")
	sb.WriteString(loc.LineText)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(line)))
	sb.WriteString(":")
	sb.WriteString(strings.Repeat("-", loc.Column))
	sb.WriteString("^ ")
	sb.WriteString(message)
	sb.WriteString(" token(")
	sb.WriteString(strconv.Quote(loc.Token))
	sb.WriteString(")")
	return sb.String()
}

// Is reports whether err is an *Error of the given type.
func Is(err error, typ ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == typ
}

// As returns err as an *Error when it is one.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

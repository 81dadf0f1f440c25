package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"qalc-hq/qalc/pkg/qalc/ast"
	qerrors "qalc-hq/qalc/pkg/qalc/errors"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "format",
		Message: "missing required field",
	}

	expected := "config error in format: missing required field"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("field", "message")
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Message != "message" {
		t.Errorf("Message = %q, want %q", err.Message, "message")
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := &CommandError{
		Command: "run",
		Err:     underlyingErr,
	}

	expected := "command run failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := &CommandError{
		Command: "run",
		Err:     underlyingErr,
	}

	unwrapped := err.Unwrap()
	if unwrapped != underlyingErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, underlyingErr)
	}

	// Test with errors.Is
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestNewCommandError(t *testing.T) {
	underlyingErr := errors.New("test")
	err := NewCommandError("command", underlyingErr)

	if err.Command != "command" {
		t.Errorf("Command = %q, want %q", err.Command, "command")
	}
	if err.Err != underlyingErr {
		t.Errorf("Err = %v, want %v", err.Err, underlyingErr)
	}
}

func TestExitCode(t *testing.T) {
	syntax := qerrors.Syntax(ast.Location{Line: 1, Token: ";"}, "Missing term")
	list := qerrors.NewErrorList()
	list.Add(qerrors.Semantic(ast.Location{}, "Undefined variable a"))

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"syntax", syntax, ExitInvalid},
		{"wrapped syntax", NewCommandError("run", syntax), ExitInvalid},
		{"error list", list, ExitInvalid},
		{"execution", qerrors.Execution(ast.Location{}, "Division by zero"), ExitFailure},
		{"plain", fmt.Errorf("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	undefined := qerrors.Semantic(ast.Location{}, "Undefined variable psj")
	undefined.Suggestion = "Did you mean 'psi'?"
	list := qerrors.NewErrorList()
	list.Add(undefined)
	list.Add(qerrors.Semantic(ast.Location{}, "Undefined variable zz"))

	if got := Hints(NewCommandError("run", undefined)); len(got) != 1 || got[0] != undefined.Suggestion {
		t.Errorf("Hints(wrapped) = %v, want [%s]", got, undefined.Suggestion)
	}
	if got := Hints(fmt.Errorf("boom")); len(got) != 0 {
		t.Errorf("Hints(plain) = %v, want none", got)
	}

	var buf bytes.Buffer
	PrintError(&buf, list)
	want := list.Error() + "\nhint: Did you mean 'psi'?\n"
	if got := buf.String(); got != want {
		t.Errorf("PrintError() =\n%s\nwant\n%s", got, want)
	}
}

package cli

import (
	"errors"
	"fmt"
	"io"

	qerrors "qalc-hq/qalc/pkg/qalc/errors"
)

// Process exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInvalid = 2 // Program rejected before evaluation
)

// ConfigError represents an invalid flag or configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var list *qerrors.ErrorList
	if errors.As(err, &list) {
		return ExitInvalid
	}
	if qerrors.Is(err, qerrors.ErrorTypeSyntax) || qerrors.Is(err, qerrors.ErrorTypeSemantic) {
		return ExitInvalid
	}
	return ExitFailure
}

// Hints returns the suggestions attached to err, in order.
func Hints(err error) []string {
	var errs []*qerrors.Error
	var list *qerrors.ErrorList
	if errors.As(err, &list) {
		errs = list.Errors
	} else if e, ok := qerrors.As(err); ok {
		errs = []*qerrors.Error{e}
	}

	var hints []string
	for _, e := range errs {
		if e.Suggestion != "" {
			hints = append(hints, e.Suggestion)
		}
	}
	return hints
}

// PrintError writes err followed by its hints.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	for _, hint := range Hints(err) {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
}

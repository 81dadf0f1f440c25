package ast

import "fmt"

// Location identifies the source token an AST node or value came from.
// It carries enough of the source to render a diagnostic without re-reading
// the input.
type Location struct {
	Token    string // Raw lexeme
	LineText string // Full text of the source line holding the token
	Line     int    // Line number (1-based)
	Column   int    // Column number (0-based, in runes)
}

// String returns a human-readable representation of the location.
// Format: "line:column"
func (l Location) String() string {
	if !l.IsValid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// IsValid returns true if the location points into a source line.
func (l Location) IsValid() bool {
	return l.Line > 0
}

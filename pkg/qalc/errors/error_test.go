package errors

import (
	"fmt"
	"testing"

	"qalc-hq/qalc/pkg/qalc/ast"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		loc     ast.Location
		message string
		want    string
	}{
		{
			name:    "first column",
			loc:     ast.Location{Token: "x", LineText: "x;", Line: 1, Column: 0},
			message: "Undefined variable x",
			want:    "1:x;\n :^ Undefined variable x token(\"x\")",
		},
		{
			name:    "two digit line",
			loc:     ast.Location{Token: ";", LineText: "H(0) + ;", Line: 12, Column: 7},
			message: "Missing expression",
			want:    "12:H(0) + ;\n  :-------^ Missing expression token(\";\")",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.loc, tt.message); got != tt.want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestErrorWithoutLocation(t *testing.T) {
	err := Binding("Duplicate rule %s", "expr")
	if got := err.Error(); got != "Duplicate rule expr" {
		t.Errorf("Error() = %q, want %q", got, "Duplicate rule expr")
	}
	if err.Type != ErrorTypeBinding {
		t.Errorf("Type = %q, want %q", err.Type, ErrorTypeBinding)
	}
}

func TestIsAndAs(t *testing.T) {
	loc := ast.Location{Token: "a", LineText: "a;", Line: 1}
	wrapped := fmt.Errorf("run: %w", Execution(loc, "Undefined variable a"))

	if !Is(wrapped, ErrorTypeExecution) {
		t.Error("Is(execution) = false, want true")
	}
	if Is(wrapped, ErrorTypeSyntax) {
		t.Error("Is(syntax) = true, want false")
	}
	e, ok := As(wrapped)
	if !ok || e.Message != "Undefined variable a" {
		t.Errorf("As() = %v, %v", e, ok)
	}
}

func TestSuggestName(t *testing.T) {
	known := []string{"alpha", "beta", "psi", "phi"}
	tests := []struct {
		unknown string
		want    string
	}{
		{"alpa", "Did you mean 'alpha'?"},
		{"bta", "Did you mean 'beta'?"},
		{"omega", ""},
		{"psi", ""},
	}
	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			if got := SuggestName(tt.unknown, known); got != tt.want {
				t.Errorf("SuggestName(%q) = %q, want %q", tt.unknown, got, tt.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"psi", "phi", 1},
	}
	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

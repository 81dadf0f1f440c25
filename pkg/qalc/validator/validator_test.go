package validator

import (
	"testing"

	qerrors "qalc-hq/qalc/pkg/qalc/errors"
	"qalc-hq/qalc/pkg/qalc/parser"
)

func validate(t *testing.T, src string, opts ...Option) []*qerrors.Error {
	t.Helper()
	program, err := parser.Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", src, err)
	}
	err = NewValidator(opts...).Validate(program)
	if err == nil {
		return nil
	}
	list, ok := err.(*qerrors.ErrorList)
	if !ok {
		t.Fatalf("Validate() error type = %T, want *errors.ErrorList", err)
	}
	return list.Errors
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		messages []string
		tokens   []string
	}{
		{"valid program", "let a = H(0); a * |0>;", nil, nil},
		{"use before assignment", "a; let a = 1;", []string{"Undefined variable a"}, []string{"a"}},
		{"self reference", "let a = a + 1;", []string{"Undefined variable a"}, []string{"a"}},
		{"cleared", "let a = 1; clear(); a + 1;", []string{"Undefined variable a"}, []string{"a"}},
		{"redefined after clear", "let a = 1; clear(); let a = 2; a;", nil, nil},
		{"several", "b * c;", []string{"Undefined variable b", "Undefined variable c"}, []string{"b", "c"}},
		{"duplicate indices", "CNOT(1, 1);", []string{"Expected all different indices [1, 1]"}, []string{"CNOT"}},
		{"index out of range", "H(12);", []string{"Qubit index out of range [0, 10): actual (12)"}, []string{"H"}},
		{"computed indices skipped", "let q = 1; CNOT(q, q);", nil, nil},
		{"nested call", "let u = (H(0) . X(3)) * CCNOT(2, 2, 0);", []string{"Expected all different indices [2, 2, 0]"}, []string{"CCNOT"}},
		{"both passes", "x0 * SWAP(4, 4);", []string{"Undefined variable x0", "Expected all different indices [4, 4]"}, []string{"x0", "SWAP"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validate(t, tt.src)
			if len(errs) != len(tt.messages) {
				t.Fatalf("Validate() = %v, want %d errors", errs, len(tt.messages))
			}
			for i, e := range errs {
				if e.Type != qerrors.ErrorTypeSemantic {
					t.Errorf("errs[%d].Type = %q, want semantic", i, e.Type)
				}
				if e.Message != tt.messages[i] {
					t.Errorf("errs[%d].Message = %q, want %q", i, e.Message, tt.messages[i])
				}
				if e.Location.Token != tt.tokens[i] {
					t.Errorf("errs[%d].Token = %q, want %q", i, e.Location.Token, tt.tokens[i])
				}
			}
		})
	}
}

func TestValidate_Predefined(t *testing.T) {
	if errs := validate(t, "psi * 2;", WithPredefined("psi")); errs != nil {
		t.Errorf("Validate() with predefined psi = %v, want none", errs)
	}
	if errs := validate(t, "clear(); psi;", WithPredefined("psi")); len(errs) != 1 {
		t.Errorf("Validate() after clear = %v, want 1 error", errs)
	}
}

func TestValidate_Suggestion(t *testing.T) {
	errs := validate(t, "let alpha = 1; alpah;")
	if len(errs) != 1 {
		t.Fatalf("Validate() = %v, want 1 error", errs)
	}
	if errs[0].Suggestion != "Did you mean 'alpha'?" {
		t.Errorf("Suggestion = %q", errs[0].Suggestion)
	}
}

func TestValidate_SinglePasses(t *testing.T) {
	program, err := parser.Compile("a * CNOT(0, 0);")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	v := NewValidator()
	if err := v.ValidateScope(program); err == nil {
		t.Error("ValidateScope() expected error")
	}
	if err := v.ValidateCalls(program); err == nil {
		t.Error("ValidateCalls() expected error")
	}
	// Passes reset between runs.
	ok, _ := parser.Compile("let a = 1; a;")
	if err := v.Validate(ok); err != nil {
		t.Errorf("Validate() after failing run = %v", err)
	}
}

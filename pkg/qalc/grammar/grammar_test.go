package grammar

import (
	"strings"
	"testing"

	"qalc-hq/qalc/pkg/qalc/errors"
	"qalc-hq/qalc/pkg/qalc/lexer"
)

// sumGrammar accepts "n (+ n)* ;" sequences, e.g. "1 + 2; 3;".
func sumGrammar(t *testing.T) *Grammar {
	t.Helper()
	g, err := NewBuilder().
		Require("program", "statements", "end").
		Repeat("statements", "statement").
		SequenceIf("statement", "sum", ";").
		SequenceIf("sum", "number", "terms").
		Repeat("terms", "term").
		SequenceIf("term", "+", "number").
		IntLiteral("number").
		Operator("+").
		Operator(";").
		EndOfInput("end").
		Build("program")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

// evaluator folds actions into integer sums with an operand stack.
type evaluator struct {
	stack   []int
	results []int
	trace   []string
}

func (e *evaluator) action(id string, tok lexer.Token) error {
	e.trace = append(e.trace, id)
	switch id {
	case "number":
		e.stack = append(e.stack, tok.Int)
	case "term":
		n := len(e.stack)
		e.stack = append(e.stack[:n-2], e.stack[n-2]+e.stack[n-1])
	case "statement":
		e.results = append(e.results, e.stack[len(e.stack)-1])
		e.stack = e.stack[:len(e.stack)-1]
	}
	return nil
}

func TestParseInvokesActions(t *testing.T) {
	g := sumGrammar(t)
	e := &evaluator{}
	if err := g.Parse(lexer.New("1 + 2 + 3; 10;"), e.action); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(e.results) != 2 || e.results[0] != 6 || e.results[1] != 10 {
		t.Errorf("results = %v, want [6 10]", e.results)
	}
	// Repeat rules never report completion.
	for _, id := range e.trace {
		if id == "statements" || id == "terms" {
			t.Errorf("action invoked for repeat rule %q", id)
		}
	}
}

func TestParseMissingRule(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		column  int
	}{
		{"missing number after plus", "1 + ;", "Missing number", 4},
		{"missing semicolon", "1 + 2", "Missing ;", 5},
		{"trailing garbage", "1; +", "Missing end", 3},
	}

	g := sumGrammar(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Parse(lexer.New(tt.src), nil)
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			e, ok := errors.As(err)
			if !ok {
				t.Fatalf("Parse() error type = %T, want *errors.Error", err)
			}
			if e.Type != errors.ErrorTypeSyntax {
				t.Errorf("Type = %q, want syntax", e.Type)
			}
			if e.Message != tt.message {
				t.Errorf("Message = %q, want %q", e.Message, tt.message)
			}
			if e.Location.Column != tt.column {
				t.Errorf("Column = %d, want %d", e.Location.Column, tt.column)
			}
		})
	}
}

func TestAlternativesFirstMatchWins(t *testing.T) {
	var trace []string
	g, err := NewBuilder().
		Require("root", "choice", "end").
		Alternatives("choice", "keyword", "name", "empty").
		IdentifierIn("keyword", "let").
		IdentifierNotIn("name", "let").
		Empty("empty").
		EndOfInput("end").
		Build("root")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		src  string
		want string
	}{
		{"let", "keyword,choice,end,root"},
		{"psi", "name,choice,end,root"},
		{"", "empty,choice,end,root"},
	}
	for _, tt := range tests {
		trace = nil
		err := g.Parse(lexer.New(tt.src), func(id string, _ lexer.Token) error {
			trace = append(trace, id)
			return nil
		})
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.src, err)
		}
		if got := strings.Join(trace, ","); got != tt.want {
			t.Errorf("Parse(%q) trace = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestActionReceivesStartToken(t *testing.T) {
	g, err := NewBuilder().
		SequenceIf("pair", "(", "number", ")").
		Operator("(").
		Operator(")").
		IntLiteral("number").
		Build("pair")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var got lexer.Token
	err = g.Parse(lexer.New("(7)"), func(id string, tok lexer.Token) error {
		if id == "pair" {
			got = tok
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Text != "(" {
		t.Errorf("pair action token = %v, want operator(\"(\")", got)
	}
}

func TestActionErrorStopsParse(t *testing.T) {
	g := sumGrammar(t)
	want := errors.Syntax(lexer.Token{}.Location, "rejected")
	err := g.Parse(lexer.New("1 + 2;"), func(id string, _ lexer.Token) error {
		if id == "term" {
			return want
		}
		return nil
	})
	if err != want {
		t.Errorf("Parse() error = %v, want %v", err, want)
	}
}

func TestBindingErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Grammar, error)
		message string
	}{
		{
			name: "duplicate id",
			build: func() (*Grammar, error) {
				return NewBuilder().IntLiteral("n").RealLiteral("n").Build("n")
			},
			message: `Duplicate rule "n"`,
		},
		{
			name: "undefined child",
			build: func() (*Grammar, error) {
				return NewBuilder().Require("root", "missing").Build("root")
			},
			message: `Rule "root" refers to undefined rule "missing"`,
		},
		{
			name: "undefined root",
			build: func() (*Grammar, error) {
				return NewBuilder().IntLiteral("n").Build("program")
			},
			message: `Undefined root rule "program"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if !errors.Is(err, errors.ErrorTypeBinding) {
				t.Fatalf("Build() error = %v, want binding error", err)
			}
			if err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestRepeatStopsOnEmptyMatch(t *testing.T) {
	g, err := NewBuilder().
		Require("root", "loop", "end").
		Repeat("loop", "nothing").
		Empty("nothing").
		EndOfInput("end").
		Build("root")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := g.Parse(lexer.New(""), nil); err != nil {
		t.Errorf("Parse() error = %v", err)
	}
}

func TestRecursiveRules(t *testing.T) {
	// nested := "(" nested ")" | number
	g, err := NewBuilder().
		Alternatives("nested", "group", "number").
		SequenceIf("group", "(", "nested", ")").
		Operator("(").
		Operator(")").
		IntLiteral("number").
		Build("nested")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := g.Parse(lexer.New("(((4)))"), nil); err != nil {
		t.Errorf("Parse() error = %v", err)
	}
	if err := g.Parse(lexer.New("((4)"), nil); err == nil {
		t.Error("Parse() expected error for unbalanced input, got nil")
	}

	desc, ok := g.Describe("group")
	if !ok || desc != "sequence-if [( nested )]" {
		t.Errorf("Describe(group) = %q, %v", desc, ok)
	}
}

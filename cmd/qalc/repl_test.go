package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	return &repl{session: testApp(t).newSession(), out: &out, errOut: &errOut}, &out, &errOut
}

func TestREPLKeepsVariables(t *testing.T) {
	r, out, errOut := newTestREPL(t)
	ctx := context.Background()

	if r.handle(ctx, "let psi = |1>") {
		t.Fatal("handle() ended the session")
	}
	out.Reset()
	r.handle(ctx, "<1| * psi")
	if got := strings.TrimSpace(out.String()); got != "(1, 0)" {
		t.Errorf("<1| * psi = %q, want (1, 0)", got)
	}

	out.Reset()
	r.handle(ctx, ":vars")
	if !strings.HasPrefix(out.String(), "psi (line 1) = ") {
		t.Errorf(":vars = %q", out.String())
	}

	r.handle(ctx, ":clear")
	r.handle(ctx, "psi")
	if !strings.Contains(errOut.String(), "Undefined variable psi") {
		t.Errorf("stderr = %q, want undefined variable after :clear", errOut.String())
	}
}

func TestREPLCommands(t *testing.T) {
	r, out, errOut := newTestREPL(t)
	ctx := context.Background()

	r.handle(ctx, ":help")
	if !strings.Contains(out.String(), "CNOT") {
		t.Errorf(":help output = %q", out.String())
	}
	r.handle(ctx, ":nope")
	if !strings.Contains(errOut.String(), "unknown command :nope") {
		t.Errorf("stderr = %q", errOut.String())
	}
	for _, quit := range []string{":quit", ":q", ":EXIT"} {
		if !r.handle(ctx, quit) {
			t.Errorf("handle(%q) did not end the session", quit)
		}
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1 + 1", false},
		{"1 + 1;", false},
		{"let a = (1 +", true},
		{"CNOT(0,", true},
		{"1 + ;", false},
		{")", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := incomplete(tt.src); got != tt.want {
			t.Errorf("incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestComplete(t *testing.T) {
	r, _, _ := newTestREPL(t)
	r.handle(context.Background(), "let cnotTable = 1")

	got := r.complete("x = CN")
	if !slices.Equal(got, []string{"x = CNOT"}) {
		t.Errorf("complete(CN) = %v", got)
	}
	got = r.complete("cno")
	if !slices.Equal(got, []string{"cnotTable"}) {
		t.Errorf("complete(cno) = %v", got)
	}
	if got := r.complete("1 + "); got != nil {
		t.Errorf("complete with no prefix = %v, want nil", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got, want := expandHome("~/.qalc_history"), filepath.Join(home, ".qalc_history"); got != want {
		t.Errorf("expandHome() = %q, want %q", got, want)
	}
	if got := expandHome("/tmp/h"); got != "/tmp/h" {
		t.Errorf("expandHome(/tmp/h) = %q", got)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"qalc-hq/qalc/pkg/cli"
	"qalc-hq/qalc/pkg/config"
	"qalc-hq/qalc/pkg/qalc"
	qerrors "qalc-hq/qalc/pkg/qalc/errors"
	"qalc-hq/qalc/pkg/qalc/parser"
	"qalc-hq/qalc/pkg/qalc/runtime"
)

const continuationPrompt = "....> "

var replFlags struct {
	metrics bool
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive session. Variables persist between inputs. A
statement may span several lines; it is submitted once it ends with ';', and
the ';' may be omitted on single-line input.

Commands:
  :help    list builtin functions
  :vars    list variables with the line that defined them
  :clear   forget every variable
  :quit    leave the session

With --metrics, Prometheus metrics are served on metrics.listen_address for
the lifetime of the session.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replFlags.metrics, "metrics", false, "serve Prometheus metrics while the session runs")
}

// repl evaluates inputs against one session.
type repl struct {
	session *qalc.Session
	out     io.Writer
	errOut  io.Writer
}

func runREPL(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(func(cfg *config.Config) {
		if replFlags.metrics {
			cfg.Metrics.Enabled = true
		}
	})
	if err != nil {
		return err
	}
	defer a.close()

	errOut := cmd.ErrOrStderr()
	if a.collector != nil {
		srv, err := a.collector.Serve()
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		fmt.Fprintf(errOut, "metrics at http://%s%s\n", srv.Addr(), a.cfg.Metrics.Path)
	}

	r := &repl{session: a.newSession(), out: cmd.OutOrStdout(), errOut: errOut}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(r.complete)

	histPath := expandHome(a.cfg.REPL.HistoryFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(r.out, "qalc %s, :help for builtins, :quit to exit\n", Version)
	ctx := cmd.Context()
	for {
		input, ok := readInput(ln, a.cfg.REPL.Prompt)
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if r.handle(ctx, input) {
			return nil
		}
	}
}

// readInput reads lines until they form a complete statement. It returns
// false on end of input or Ctrl+C.
func readInput(ln *liner.State, prompt string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = continuationPrompt
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return b.String(), true
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if b.Len() > 0 {
			// An empty continuation line submits what was typed.
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src stops in the middle of a statement: it
// fails at end of input both as typed and with a ';' appended.
func incomplete(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	if _, err := parser.Compile(src); !failsAtEnd(err) {
		return false
	}
	_, err := parser.Compile(src + ";")
	return err != nil
}

func failsAtEnd(err error) bool {
	e, ok := qerrors.As(err)
	return ok && e.Type == qerrors.ErrorTypeSyntax && e.Location.Token == ""
}

// handle runs one input and reports whether the session should end.
func (r *repl) handle(ctx context.Context, input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		return r.command(trimmed)
	}

	values, err := r.session.Eval(ctx, "", terminate(input))
	for _, v := range values {
		fmt.Fprintln(r.out, v)
	}
	if err != nil {
		cli.PrintError(r.errOut, err)
	}
	return false
}

func (r *repl) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		for _, b := range runtime.Builtins() {
			fmt.Fprintf(r.out, "  %-10s %d  %s\n", b.Name, b.Arity, b.Summary)
		}
	case ":vars":
		vars := r.session.Variables()
		if len(vars) == 0 {
			fmt.Fprintln(r.out, "no variables")
		}
		for _, v := range vars {
			fmt.Fprintf(r.out, "%s (line %d) = %s\n", v.Name, v.Value.Location().Line, v.Value)
		}
	case ":clear":
		r.session.Reset()
		fmt.Fprintln(r.out, "variables cleared")
	default:
		fmt.Fprintf(r.errOut, "unknown command %s, try :help\n", cmd)
	}
	return false
}

// complete offers builtins, keywords and session variables matching the
// identifier under the cursor.
func (r *repl) complete(line string) []string {
	start := strings.LastIndexFunc(line, func(c rune) bool {
		return !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
	}) + 1
	prefix := line[start:]
	if prefix == "" {
		return nil
	}

	names := parser.Reserved()
	for _, v := range r.session.Variables() {
		names = append(names, v.Name)
	}
	slices.Sort(names)

	var out []string
	for _, name := range slices.Compact(names) {
		if strings.HasPrefix(name, prefix) {
			out = append(out, line[:start]+name)
		}
	}
	return out
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

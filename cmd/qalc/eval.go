package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"qalc-hq/qalc/pkg/cli"
	"qalc-hq/qalc/pkg/qalc"
	"qalc-hq/qalc/pkg/qalc/ast"
)

var evalFlags struct {
	format string
	ast    bool
}

var evalCmd = &cobra.Command{
	Use:   "eval SOURCE...",
	Short: "Evaluate inline qalc source",
	Long: `Evaluate qalc source given on the command line. Arguments are joined
with spaces and a final ';' is added when missing.

Examples:
  qalc eval "<0| * H(0) * |0>"
  qalc eval "let p = |+>; p^ * p"
  qalc eval --ast "a - b x c^"`,
	Args: cobra.MinimumNArgs(1),
	RunE: evalSource,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalFlags.format, "format", "f", "text", "output format: text, json, csv")
	evalCmd.Flags().BoolVar(&evalFlags.ast, "ast", false, "print the syntax tree instead of evaluating")
}

// terminate appends the statement terminator when src lacks one.
func terminate(src string) string {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || strings.HasSuffix(trimmed, ";") {
		return src
	}
	return trimmed + ";"
}

func evalSource(cmd *cobra.Command, args []string) error {
	src := terminate(strings.Join(args, " "))

	if evalFlags.ast {
		program, err := qalc.Compile(src)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ast.Dump(program))
		return nil
	}

	format, err := cli.ParseFormat(evalFlags.format)
	if err != nil {
		return err
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	values, err := a.newSession().Eval(cmd.Context(), "", src)
	if e := writeReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), cli.NewFormatter(format), format, cli.NewValueReport("", values, err), err); e != nil {
		return e
	}
	if err != nil {
		return &reportedError{err: err}
	}
	return nil
}

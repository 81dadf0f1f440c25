package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"qalc-hq/qalc/pkg/cli"
	"qalc-hq/qalc/pkg/qalc"
	"qalc-hq/qalc/pkg/watch"
)

var runFlags struct {
	format string
	watch  bool
	check  bool
}

var runCmd = &cobra.Command{
	Use:   "run FILE...",
	Short: "Evaluate qalc scripts",
	Long: `Evaluate one or more qalc scripts and print one value per statement.

Scripts run in order in a single session, so later files see the variables
defined by earlier ones. Evaluation stops at the first error; the values of
the statements that completed are still printed.

Examples:
  # Run a script
  qalc run bell.qc

  # Run with static checks first, JSON output
  qalc run --check --format json bell.qc

  # Re-run whenever a script changes
  qalc run --watch lib.qc main.qc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScripts,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.format, "format", "f", "text", "output format: text, json, csv")
	runCmd.Flags().BoolVarP(&runFlags.watch, "watch", "w", false, "re-run when a script changes")
	runCmd.Flags().BoolVar(&runFlags.check, "check", false, "run static checks before evaluating")
}

func runScripts(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(runFlags.format)
	if err != nil {
		return err
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	// mu serialises re-runs and guards a, which a config reload replaces.
	var mu sync.Mutex
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		a.close()
	}()

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	runErr := runFiles(ctx, a, out, errOut, format, args)
	if !runFlags.watch {
		return runErr
	}

	// The config file is watched too; a change rebuilds the app from it.
	paths := args
	if cfgFile != "" {
		paths = append(slices.Clone(args), cfgFile)
	}
	w, err := watch.New(watch.FromConfig(a.cfg.Watch, paths...), a.logger.Slog())
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	fmt.Fprintf(errOut, "watching %d file(s), press Ctrl+C to stop\n", len(args))
	return w.Watch(ctx, func(ctx context.Context, changed []string) error {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(errOut, "\n%s changed, re-running\n", strings.Join(changed, ", "))
		a = a.reload(changed, errOut)
		_ = runFiles(ctx, a, out, errOut, format, args)
		return nil
	})
}

// runFiles evaluates paths in one fresh session, printing a report per file.
// It stops at the first failing file.
func runFiles(ctx context.Context, a *app, out, errOut io.Writer, format cli.OutputFormat, paths []string) error {
	session := a.newSession(qalc.WithValidation(runFlags.check))
	formatter := cli.NewFormatter(format)

	for _, path := range paths {
		values, err := session.EvalFile(ctx, path)
		if e := writeReport(out, errOut, formatter, format, cli.NewValueReport(path, values, err), err); e != nil {
			return e
		}
		if err != nil {
			return &reportedError{err: cli.NewCommandError("run", err)}
		}
	}
	return nil
}

// writeReport prints report. In text mode the values go to out and err to
// errOut; structured formats carry the error inside the report.
func writeReport(out, errOut io.Writer, formatter cli.Formatter, format cli.OutputFormat, report *cli.ValueReport, err error) error {
	if format != cli.FormatText {
		return formatter.FormatTo(out, report)
	}
	if len(report.Values) > 0 {
		if e := formatter.FormatTo(out, report); e != nil {
			return e
		}
	}
	if err != nil {
		if report.Source != "" {
			fmt.Fprintf(errOut, "%s:\n", report.Source)
		}
		cli.PrintError(errOut, err)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"qalc-hq/qalc/pkg/cli"
	"qalc-hq/qalc/pkg/qalc"
	"qalc-hq/qalc/pkg/qalc/parser"
)

var checkFlags struct {
	progress bool
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check qalc scripts without running them",
	Long: `Compile each script and run the static checks: undefined variables and
gate calls with constant qubit indices that are out of range or repeated.
Every problem found is reported, not only the first.

Each file is checked on its own, so a file that uses variables defined in
another one reports them as undefined.

Examples:
  qalc check bell.qc
  qalc check --progress scripts/*.qc`,
	Args: cobra.MinimumNArgs(1),
	RunE: checkScripts,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFlags.progress, "progress", false, "show a progress bar on stderr")
}

func checkScripts(cmd *cobra.Command, args []string) error {
	var progress cli.ProgressReporter
	if checkFlags.progress {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr(), "files")
		progress.Start(int64(len(args)))
	}

	failed := checkFiles(cmd.OutOrStdout(), args, func(done int) {
		if progress != nil {
			progress.Update(int64(done))
		}
	})
	if progress != nil {
		progress.Finish()
	}

	if failed != nil {
		return &reportedError{err: failed}
	}
	return nil
}

// checkFiles checks every path, printing one verdict per file, and returns
// the first failure.
func checkFiles(out io.Writer, paths []string, onDone func(done int)) error {
	var first error
	for i, path := range paths {
		err := checkFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s: FAIL\n", path)
			cli.PrintError(out, err)
			if first == nil {
				first = err
			}
		} else {
			fmt.Fprintf(out, "%s: ok\n", path)
		}
		onDone(i + 1)
	}
	return first
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > parser.DefaultMaxSourceSize {
		return fmt.Errorf("source file too large: %d bytes (max %d)", info.Size(), parser.DefaultMaxSourceSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = qalc.Check(string(data))
	return err
}

/*
Package cli provides command-line helpers for the qalc command.

Output Formatting:

Statement results are collected into a ValueReport and printed with one of
the formatters (text, JSON, CSV):

	formatter := cli.NewFormatter(cli.FormatJSON)
	report := cli.NewValueReport("bell.qc", values, err)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Progress Reporting:

Commands that walk many files report progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr, "files")
	progress.Start(int64(len(paths)))
	for i, path := range paths {
		check(path)
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

Exit Codes:

ExitCode maps a command error to the process exit status: 2 for programs
rejected by the compiler or the static checks, 1 for everything else.
*/
package cli

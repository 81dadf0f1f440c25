package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qalc-hq/qalc/pkg/cli"
)

var (
	// Global flags
	cfgFile  string
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "qalc",
	Short: "qalc - quantum-circuit algebra interpreter",
	Long: `qalc evaluates programs written in a small algebra language for quantum
circuits: complex scalars, kets and bras, tensor and matrix products, and the
standard gates (H, X, Y, Z, S, T, SWAP, CNOT, CCNOT) placed on numbered qubits.

Configuration is read from --config when given and from QALC_* environment
variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// reportedError marks an error whose details a command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when omitted)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

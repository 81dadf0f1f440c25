// Package logging provides structured logging for qalc.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON, text, and console output formats
//   - Context-aware logging with session, script and trace identifiers
//   - Configurable log levels (debug, info, warn, error)
//
// Logs are written to stderr by default so they never mix with the values a
// program prints on stdout.
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Logging, os.Stderr))
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithScript(ctx, "bell.qc")
//	logger.InfoContext(ctx, "program evaluated", "statements", 3)
//
// The engine takes a *slog.Logger; pass logger.Slog().
package logging

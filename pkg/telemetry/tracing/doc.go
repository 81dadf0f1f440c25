// Package tracing provides OpenTelemetry tracing for qalc.
//
// # Overview
//
// A run of a qalc program produces one span for compilation and one for
// evaluation, nested under the caller's span when there is one. Spans carry
// the source path and size, the number of statements and, on failure, the
// error category and position.
//
// Spans are exported over OTLP/gRPC when tracing is enabled. When it is
// disabled, New returns a tracer backed by a noop provider.
//
// # Sampling Strategies
//
//   - always: Sample all runs
//   - never: Sample no runs
//   - ratio: Sample a fraction of runs
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, tracing.SpanEvaluate)
//	defer span.End()
package tracing

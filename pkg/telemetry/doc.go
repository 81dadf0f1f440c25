// Package telemetry groups the observability packages used by qalc.
//
// # Components
//
//   - logging: slog-based structured logging with session and script context
//   - metrics: Prometheus counters and histograms for compilation, evaluation
//     and matrix products
//   - tracing: OpenTelemetry spans around compile, evaluate and circuit runs
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, err := logging.New(logging.FromConfig(cfg.Logging, os.Stderr))
//	tracer, err := tracing.New(&cfg.Tracing)
//	collector := metrics.NewCollector(&cfg.Metrics, prometheus.NewRegistry())
//
//	session := qalc.NewSession(
//	    qalc.WithLogger(logger),
//	    qalc.WithTracer(tracer),
//	    qalc.WithCollector(collector),
//	)
//
// Every component is inert when disabled: a disabled collector records
// nothing and a disabled tracer hands out no-op spans.
package telemetry

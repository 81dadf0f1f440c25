// Package metrics provides Prometheus metrics collection for qalc.
//
// # Metrics Categories
//
//   - Program Metrics: compilations and evaluations by status, their
//     durations, and the number of statements evaluated
//   - Matrix Product Metrics: products by mode, their durations, and the
//     partitioning of parallel products
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//
//	// Observe matrix products
//	mp := linalg.NewMultiplier(linalg.WithObserver(collector))
//
//	// Expose the registry
//	srv, err := collector.Serve()
//	defer srv.Shutdown(ctx)
//
// All names are prefixed with the configured namespace and subsystem, for
// example qalc_engine_evaluations_total.
package metrics

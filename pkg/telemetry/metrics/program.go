package metrics

import (
	"qalc-hq/qalc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Default histogram buckets, in seconds, for compile and evaluate durations.
var defaultDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// ProgramMetrics tracks compilation and evaluation of qalc programs.
//
// Metrics:
//   - qalc_engine_compilations_total: Compilations by status
//   - qalc_engine_compile_duration_seconds: Compile duration histogram
//   - qalc_engine_evaluations_total: Evaluations by status
//   - qalc_engine_evaluation_duration_seconds: Evaluation duration histogram
//   - qalc_engine_statements_total: Statements evaluated successfully
type ProgramMetrics struct {
	compilationsTotal  *prometheus.CounterVec
	compileDuration    prometheus.Histogram
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	statementsTotal    prometheus.Counter
}

// NewProgramMetrics creates and registers program metrics with the provided registry.
func NewProgramMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProgramMetrics {
	pm := &ProgramMetrics{
		compilationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compilations_total",
				Help:      "Total number of program compilations",
			},
			[]string{"status"},
		),

		compileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compile_duration_seconds",
				Help:      "Duration of program compilation in seconds",
				Buckets:   defaultDurationBuckets,
			},
		),

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of program evaluations",
			},
			[]string{"status"},
		),

		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of program evaluation in seconds",
				Buckets:   defaultDurationBuckets,
			},
		),

		statementsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "statements_total",
				Help:      "Total number of statements evaluated",
			},
		),
	}

	registry.MustRegister(
		pm.compilationsTotal,
		pm.compileDuration,
		pm.evaluationsTotal,
		pm.evaluationDuration,
		pm.statementsTotal,
	)

	return pm
}

package metrics

import (
	"qalc-hq/qalc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// MatMulMetrics tracks matrix products computed by the algebra engine.
//
// Metrics:
//   - qalc_engine_matmul_total: Products by mode (sequential, parallel)
//   - qalc_engine_matmul_duration_seconds: Product duration by mode
//   - qalc_engine_matmul_partitions: Row blocks per parallel product
type MatMulMetrics struct {
	total      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	partitions prometheus.Histogram
}

// NewMatMulMetrics creates and registers matrix product metrics with the provided registry.
func NewMatMulMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *MatMulMetrics {
	mm := &MatMulMetrics{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "matmul_total",
				Help:      "Total number of matrix products",
			},
			[]string{"mode"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "matmul_duration_seconds",
				Help:      "Duration of matrix products in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"mode"},
		),

		partitions: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "matmul_partitions",
				Help:      "Number of row blocks a parallel product was split into",
				Buckets:   prometheus.LinearBuckets(1, 1, 16),
			},
		),
	}

	registry.MustRegister(mm.total, mm.duration, mm.partitions)

	return mm
}

package metrics

import (
	"time"

	"qalc-hq/qalc/pkg/config"
	"qalc-hq/qalc/pkg/linalg"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Collector owns every qalc metric and the registry they are exposed from.
//
// A disabled collector accepts every call and records nothing, so callers
// never need to check whether metrics are on.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	programMetrics *ProgramMetrics
	matmulMetrics  *MatMulMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "qalc",
//		Subsystem: "engine",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:         cfg,
		registry:       registry,
		programMetrics: NewProgramMetrics(cfg, registry),
		matmulMetrics:  NewMatMulMetrics(cfg, registry),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordCompile records one compilation.
//
// Example:
//
//	start := time.Now()
//	program, err := parser.Compile(src)
//	collector.RecordCompile(time.Since(start), err)
func (c *Collector) RecordCompile(duration time.Duration, err error) {
	if !c.Enabled() {
		return
	}
	c.programMetrics.compilationsTotal.WithLabelValues(status(err)).Inc()
	c.programMetrics.compileDuration.Observe(duration.Seconds())
}

// RecordEvaluation records one program evaluation and the number of
// statements it completed.
func (c *Collector) RecordEvaluation(duration time.Duration, statements int, err error) {
	if !c.Enabled() {
		return
	}
	c.programMetrics.evaluationsTotal.WithLabelValues(status(err)).Inc()
	c.programMetrics.evaluationDuration.Observe(duration.Seconds())
	c.programMetrics.statementsTotal.Add(float64(statements))
}

// ObserveMul records one matrix product. It makes the collector a
// linalg.MulObserver.
func (c *Collector) ObserveMul(mode string, partitions int, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	c.matmulMetrics.total.WithLabelValues(mode).Inc()
	c.matmulMetrics.duration.WithLabelValues(mode).Observe(duration.Seconds())
	if mode == linalg.ModeParallel {
		c.matmulMetrics.partitions.Observe(float64(partitions))
	}
}

var _ linalg.MulObserver = (*Collector)(nil)

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

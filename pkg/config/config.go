package config

import "time"

// Config is the root configuration structure for qalc.
// It is loaded from a YAML file and can be overridden by environment variables.
type Config struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Algebra contains configuration for the matrix engine.
	Algebra AlgebraConfig `yaml:"algebra"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// REPL contains interactive session configuration.
	REPL REPLConfig `yaml:"repl"`

	// Watch contains configuration for re-running scripts on change.
	Watch WatchConfig `yaml:"watch"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// AlgebraConfig tunes matrix arithmetic.
type AlgebraConfig struct {
	// ParallelThreshold is the per-worker cost, in multiply-accumulate steps,
	// above which a matrix product is split across workers.
	// Default: 32768
	ParallelThreshold int64 `yaml:"parallel_threshold"`

	// Workers is the size of the multiplication worker pool.
	// 0 selects the number of CPUs.
	// Default: 0
	Workers int `yaml:"workers"`

	// Epsilon is the tolerance used when comparing and printing amplitudes.
	// Default: 1e-6
	Epsilon float64 `yaml:"epsilon"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "qalc"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "engine"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is the address of the metrics HTTP endpoint used by
	// long-running commands such as the REPL.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// TracingConfig contains tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter determines the span exporter.
	// Options: "otlp"
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the trace collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "qalc"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS on the collector connection.
	// Default: true
	Insecure bool `yaml:"insecure"`
}

// REPLConfig contains interactive session configuration.
type REPLConfig struct {
	// Prompt is shown before each input line.
	// Default: "qalc> "
	Prompt string `yaml:"prompt"`

	// HistoryFile stores line history between sessions. Empty disables history.
	// Default: "~/.qalc_history"
	HistoryFile string `yaml:"history_file"`
}

// WatchConfig controls `qalc run --watch`.
type WatchConfig struct {
	// DebounceInterval collapses bursts of file events into one re-run.
	// Default: 200ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Extensions lists the file extensions that trigger a re-run.
	// Default: [".qc", ".qalc"]
	Extensions []string `yaml:"extensions"`
}

package config

import "time"

// Default values for configuration fields.
const (
	// Logging defaults
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	// Algebra defaults
	DefaultParallelThreshold int64 = 1 << 15
	DefaultWorkers                 = 0
	DefaultEpsilon                 = 1e-6

	// Metrics defaults
	DefaultMetricsNamespace     = "qalc"
	DefaultMetricsSubsystem     = "engine"
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"

	// Tracing defaults
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingExporter    = "otlp"
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingServiceName = "qalc"
	DefaultTracingInsecure    = true

	// REPL defaults
	DefaultPrompt      = "qalc> "
	DefaultHistoryFile = "~/.qalc_history"

	// Watch defaults
	DefaultDebounceInterval = 200 * time.Millisecond
)

// DefaultExtensions are the script extensions watched by default.
var DefaultExtensions = []string{".qc", ".qalc"}

// ApplyDefaults fills in zero-valued fields with their defaults.
// Fields that are already set are left unchanged.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Algebra.ParallelThreshold == 0 {
		cfg.Algebra.ParallelThreshold = DefaultParallelThreshold
	}
	if cfg.Algebra.Epsilon == 0 {
		cfg.Algebra.Epsilon = DefaultEpsilon
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	applyTracingDefaults(cfg)

	if cfg.REPL.Prompt == "" {
		cfg.REPL.Prompt = DefaultPrompt
	}
	if cfg.REPL.HistoryFile == "" {
		cfg.REPL.HistoryFile = DefaultHistoryFile
	}

	if cfg.Watch.DebounceInterval == 0 {
		cfg.Watch.DebounceInterval = DefaultDebounceInterval
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultExtensions...)
	}
}

// applyTracingDefaults fills the tracing section. Insecure is only defaulted
// when the section is otherwise empty, so an explicit "insecure: false" next
// to an endpoint survives.
func applyTracingDefaults(cfg *Config) {
	t := &cfg.Tracing
	if t.Exporter == "" && t.Endpoint == "" && t.ServiceName == "" {
		t.Insecure = DefaultTracingInsecure
	}
	if t.Sampler == "" {
		t.Sampler = DefaultTracingSampler
	}
	if t.SampleRatio == 0 && t.Sampler != "ratio" {
		t.SampleRatio = DefaultTracingSampleRatio
	}
	if t.Exporter == "" {
		t.Exporter = DefaultTracingExporter
	}
	if t.Endpoint == "" {
		t.Endpoint = DefaultTracingEndpoint
	}
	if t.ServiceName == "" {
		t.ServiceName = DefaultTracingServiceName
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

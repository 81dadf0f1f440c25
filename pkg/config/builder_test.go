package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with defaults applied.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// MinimalConfig returns a valid configuration with only defaults set.
func MinimalConfig() *Config {
	return NewTestConfig().Build()
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Logging.Level = level
	return b
}

func (b *ConfigBuilder) WithWorkers(workers int) *ConfigBuilder {
	b.cfg.Algebra.Workers = workers
	return b
}

func (b *ConfigBuilder) WithEpsilon(epsilon float64) *ConfigBuilder {
	b.cfg.Algebra.Epsilon = epsilon
	return b
}

func (b *ConfigBuilder) WithMetrics(addr, path string) *ConfigBuilder {
	b.cfg.Metrics.Enabled = true
	b.cfg.Metrics.ListenAddress = addr
	b.cfg.Metrics.Path = path
	return b
}

func (b *ConfigBuilder) WithTracing(endpoint string) *ConfigBuilder {
	b.cfg.Tracing.Enabled = true
	b.cfg.Tracing.Endpoint = endpoint
	return b
}

func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.DebounceInterval = d
	return b
}

func (b *ConfigBuilder) WithExtensions(exts ...string) *ConfigBuilder {
	b.cfg.Watch.Extensions = exts
	return b
}

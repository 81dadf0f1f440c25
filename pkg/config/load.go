package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention QALC_SECTION_FIELD (e.g., QALC_LOGGING_LEVEL).
// Environment variables always take precedence over file-based configuration.
//
// An empty path or a file that does not exist yields the defaults, so qalc
// runs without any configuration file.
//
// The loading sequence is:
// 1. Load YAML from file (or start from defaults)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		loaded, err := LoadConfig(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			cfg = Default()
		case err != nil:
			return nil, err
		default:
			cfg = loaded
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format QALC_SECTION_FIELD. Values that fail to
// parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Logging overrides
	if val := env.Str("QALC_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := env.Str("QALC_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
	if env.Has("QALC_LOGGING_ADD_SOURCE") {
		cfg.Logging.AddSource = env.Bool("QALC_LOGGING_ADD_SOURCE")
	}

	// Algebra overrides
	if env.Has("QALC_ALGEBRA_WORKERS") {
		cfg.Algebra.Workers = env.Int("QALC_ALGEBRA_WORKERS", cfg.Algebra.Workers)
	}
	if env.Has("QALC_ALGEBRA_PARALLEL_THRESHOLD") {
		cfg.Algebra.ParallelThreshold = int64(env.Int("QALC_ALGEBRA_PARALLEL_THRESHOLD", int(cfg.Algebra.ParallelThreshold)))
	}
	if env.Has("QALC_ALGEBRA_EPSILON") {
		cfg.Algebra.Epsilon = env.Float64("QALC_ALGEBRA_EPSILON", cfg.Algebra.Epsilon)
	}

	// Metrics overrides
	if env.Has("QALC_METRICS_ENABLED") {
		cfg.Metrics.Enabled = env.Bool("QALC_METRICS_ENABLED")
	}
	if val := env.Str("QALC_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}
	if val := env.Str("QALC_METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}

	// Tracing overrides
	if env.Has("QALC_TRACING_ENABLED") {
		cfg.Tracing.Enabled = env.Bool("QALC_TRACING_ENABLED")
	}
	if val := env.Str("QALC_TRACING_ENDPOINT"); val != "" {
		cfg.Tracing.Endpoint = val
	}
	if val := env.Str("QALC_TRACING_SERVICE_NAME"); val != "" {
		cfg.Tracing.ServiceName = val
	}
	if env.Has("QALC_TRACING_INSECURE") {
		cfg.Tracing.Insecure = env.Bool("QALC_TRACING_INSECURE")
	}

	// REPL overrides
	if val := env.Str("QALC_REPL_PROMPT"); val != "" {
		cfg.REPL.Prompt = val
	}
	if val := env.Str("QALC_REPL_HISTORY_FILE"); val != "" {
		cfg.REPL.HistoryFile = val
	}

	// Watch overrides
	if val := env.Str("QALC_WATCH_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.DebounceInterval = d
		}
	}
	if val := env.Str("QALC_WATCH_EXTENSIONS"); val != "" {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		cfg.Watch.Extensions = exts
	}
}

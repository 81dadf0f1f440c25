// Package config provides configuration management for qalc.
//
// Configuration is read from an optional YAML file, completed with defaults
// and overridden by environment variables:
//
//	logging:
//	  level: info
//	  format: text
//	algebra:
//	  parallel_threshold: 32768
//	  workers: 4
//	  epsilon: 1e-6
//	metrics:
//	  enabled: true
//	  listen_address: 127.0.0.1:9464
//	tracing:
//	  enabled: false
//	repl:
//	  prompt: "qalc> "
//	  history_file: ~/.qalc_history
//	watch:
//	  debounce_interval: 200ms
//	  extensions: [.qc, .qalc]
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention QALC_SECTION_FIELD.
// For example:
//
//   - QALC_LOGGING_LEVEL overrides logging.level
//   - QALC_ALGEBRA_WORKERS overrides algebra.workers
//   - QALC_WATCH_EXTENSIONS overrides watch.extensions (comma separated)
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// The CLI initializes the global configuration once at startup:
//
//	if err := config.Initialize(path); err != nil {
//	    return err
//	}
//	cfg := config.GetConfig()
package config

package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := MinimalConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}
	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		errorField string
	}{
		{"invalid level", NewTestConfig().WithLogLevel("trace").Build(), "logging.level"},
		{"negative workers", NewTestConfig().WithWorkers(-1).Build(), "algebra.workers"},
		{"epsilon too large", NewTestConfig().WithEpsilon(2).Build(), "algebra.epsilon"},
		{"metrics path", NewTestConfig().WithMetrics("127.0.0.1:9464", "metrics").Build(), "metrics.path"},
		{"metrics address", NewTestConfig().WithMetrics("nohost", "/metrics").Build(), "metrics.listen_address"},
		{"negative debounce", NewTestConfig().WithDebounce(-time.Second).Build(), "watch.debounce_interval"},
		{"extension without dot", NewTestConfig().WithExtensions(".qc", "qalc").Build(), "watch.extensions[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.errorField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.errorField, validationErr.Errors)
			}
		})
	}
}

func TestValidate_Tracing(t *testing.T) {
	cfg := NewTestConfig().WithTracing("localhost:4317").Build()
	if err := Validate(cfg); err != nil {
		t.Errorf("expected tracing config to be valid, got %v", err)
	}

	cfg.Tracing.Exporter = "zipkin"
	cfg.Tracing.Sampler = "sometimes"
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"tracing.exporter", "tracing.sampler"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestFieldError(t *testing.T) {
	err := FieldError{Field: "algebra.workers", Message: "must be >= 0"}
	if got := err.Error(); got != "algebra.workers: must be >= 0" {
		t.Errorf("Error() = %q", got)
	}
}

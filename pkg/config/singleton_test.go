package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetGlobal() {
	globalConfig = nil
	initOnce = *new(sync.Once)
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	defer resetGlobal()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  format: json\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if err := Initialize(configPath); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config after initialization")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging format %q, got %q", "json", cfg.Logging.Format)
	}

	// Subsequent calls are ignored.
	if err := Initialize(filepath.Join(t.TempDir(), "other.yaml")); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}
	if GetConfig() != cfg {
		t.Error("expected second Initialize() to keep the first config")
	}
}

func TestInitialize_InvalidConfig(t *testing.T) {
	resetGlobal()
	defer resetGlobal()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  format: xml\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if err := Initialize(configPath); err == nil {
		t.Fatal("expected error for invalid config")
	}
	if GetConfig() != nil {
		t.Error("expected nil config after failed initialization")
	}
}

func TestSetConfigAndReload(t *testing.T) {
	resetGlobal()
	defer resetGlobal()

	SetConfig(MinimalConfig())
	if GetConfig().Metrics.Path != DefaultMetricsPath {
		t.Errorf("expected default metrics path, got %q", GetConfig().Metrics.Path)
	}

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("metrics:\n  enabled: true\n  path: metrics\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	before := GetConfig()
	if err := ReloadConfig(configPath); err == nil {
		t.Fatal("expected reload error")
	}
	if GetConfig() != before {
		t.Error("expected failed reload to keep the existing config")
	}

	if err := os.WriteFile(configPath, []byte("logging:\n  format: json\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if err := ReloadConfig(configPath); err != nil {
		t.Fatalf("ReloadConfig() error = %v", err)
	}
	if GetConfig() == before || GetConfig().Logging.Format != "json" {
		t.Errorf("Logging.Format = %q after reload, want json", GetConfig().Logging.Format)
	}
}

func TestGetConfig_Concurrent(t *testing.T) {
	resetGlobal()
	defer resetGlobal()
	SetConfig(MinimalConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if GetConfig() == nil {
				t.Error("expected non-nil config")
			}
		}()
	}
	wg.Wait()
}

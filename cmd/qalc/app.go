package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"qalc-hq/qalc/pkg/cli"
	"qalc-hq/qalc/pkg/config"
	"qalc-hq/qalc/pkg/linalg"
	"qalc-hq/qalc/pkg/qalc"
	"qalc-hq/qalc/pkg/telemetry/logging"
	"qalc-hq/qalc/pkg/telemetry/metrics"
	"qalc-hq/qalc/pkg/telemetry/tracing"
)

// app holds the services shared by every command.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	collector *metrics.Collector
	tracer    *tracing.Tracer
}

// loadApp loads the configuration, applies flag overrides and builds the
// logger, tracer and, when metrics are enabled, the collector.
func loadApp(overrides ...func(*config.Config)) (*app, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, cli.NewConfigError("config", "configuration not initialized")
	}

	applyFlags(cfg, overrides...)
	return newApp(cfg)
}

// applyFlags applies the persistent logging flags and command overrides.
func applyFlags(cfg *config.Config, overrides ...func(*config.Config)) {
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	for _, override := range overrides {
		override(cfg)
	}
}

// reload re-reads the --config file when it is among changed and returns an
// app built from it. The current app is returned, untouched, when the file
// did not change or the new configuration is rejected.
func (a *app) reload(changed []string, errOut io.Writer) *app {
	if cfgFile == "" {
		return a
	}
	target, err := filepath.Abs(cfgFile)
	if err != nil {
		return a
	}
	if !slices.ContainsFunc(changed, func(p string) bool {
		abs, err := filepath.Abs(p)
		return err == nil && abs == target
	}) {
		return a
	}

	if err := config.ReloadConfig(cfgFile); err != nil {
		fmt.Fprintf(errOut, "keeping previous configuration: %v\n", err)
		return a
	}
	cfg := config.GetConfig()
	applyFlags(cfg)
	next, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "keeping previous configuration: %v\n", err)
		return a
	}
	a.close()
	next.logger.Info("configuration reloaded", "path", cfgFile)
	return next
}

func newApp(cfg *config.Config) (*app, error) {
	logger, err := logging.New(logging.FromConfig(cfg.Logging, os.Stderr))
	if err != nil {
		return nil, cli.NewConfigError("logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	tracer, err := tracing.New(&cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, tracer: tracer}
	if cfg.Metrics.Enabled {
		a.collector = metrics.NewCollector(&cfg.Metrics, prometheus.NewRegistry())
	}
	return a, nil
}

// multiplier returns a matrix multiplier configured from the algebra
// section and observed by the collector.
func (a *app) multiplier() *linalg.Multiplier {
	var observer linalg.MulObserver
	if a.collector != nil {
		observer = a.collector
	}
	return qalc.NewMultiplier(a.cfg.Algebra, observer)
}

func (a *app) newSession(opts ...qalc.Option) *qalc.Session {
	base := []qalc.Option{
		qalc.WithLogger(a.logger),
		qalc.WithCollector(a.collector),
		qalc.WithTracer(a.tracer),
		qalc.WithMultiplier(a.multiplier()),
	}
	return qalc.NewSession(append(base, opts...)...)
}

// epsilon is the amplitude tolerance used for printing.
func (a *app) epsilon() float32 {
	return float32(a.cfg.Algebra.Epsilon)
}

// close flushes pending spans.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("tracer shutdown failed", "error", err)
	}
}

package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"qalc-hq/qalc/pkg/config"
)

// Config describes what a Watcher observes.
type Config struct {
	// Paths are the files and directories to watch. Directories are walked
	// recursively.
	Paths []string

	// DebounceInterval is the quiet period before the callback runs
	// (default: 200ms)
	DebounceInterval time.Duration

	// Extensions filters files found under watched directories. Files named
	// in Paths are always watched.
	Extensions []string

	// SkipHidden ignores dot files and dot directories
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration with no paths.
func DefaultConfig() *Config {
	return &Config{
		DebounceInterval: config.DefaultDebounceInterval,
		Extensions:       slices.Clone(config.DefaultExtensions),
		SkipHidden:       true,
	}
}

// FromConfig builds a watcher configuration for paths from the application
// config.
func FromConfig(cfg config.WatchConfig, paths ...string) *Config {
	c := DefaultConfig()
	c.Paths = paths
	if cfg.DebounceInterval > 0 {
		c.DebounceInterval = cfg.DebounceInterval
	}
	if len(cfg.Extensions) > 0 {
		c.Extensions = slices.Clone(cfg.Extensions)
	}
	return c
}

// ChangeFunc is called with the sorted paths that changed during a burst.
type ChangeFunc func(ctx context.Context, paths []string) error

// Watcher reports changes to qalc sources.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	config  *Config

	files map[string]bool // Absolute paths named explicitly
	roots []string        // Absolute directories watched recursively

	mu       sync.Mutex
	running  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a watcher. Paths are resolved immediately; a missing path is
// an error.
func New(cfg *Config, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		logger: logger,
		config: cfg,
		files:  make(map[string]bool),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to watch path: %w", err)
		}
		if info.IsDir() {
			w.roots = append(w.roots, abs)
		} else {
			w.files[abs] = true
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w.watcher = fsw
	return w, nil
}

// Watch blocks until ctx is cancelled or Stop is called, calling onChange
// after each burst of changes. Callback errors are logged and watching
// continues.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()
	defer close(w.doneCh)

	if err := w.addPaths(); err != nil {
		return err
	}

	debounce := NewDebouncer(w.config.DebounceInterval, func(paths []string) {
		w.logger.Info("sources changed", "paths", paths)
		if err := onChange(ctx, paths); err != nil {
			w.logger.Error("change handler failed", "error", err)
		}
	})
	defer debounce.Stop()

	w.logger.Info("file watcher started",
		"files", len(w.files),
		"directories", len(w.roots),
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) && w.underRoot(event.Name) {
				w.addNewDirectory(event.Name)
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			w.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())
			debounce.Trigger(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop ends a running Watch and releases the fsnotify watcher. It is safe
// to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)

		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running {
			<-w.doneCh
		}

		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

func (w *Watcher) addPaths() error {
	dirs := make(map[string]bool)
	for file := range w.files {
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
	}
	for _, root := range w.roots {
		if err := w.addDirectory(root); err != nil {
			return err
		}
	}
	return nil
}

// addDirectory adds dir and all its subdirectories.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.hidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) addNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.hidden(path) {
		return
	}
	if err := w.addDirectory(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
}

// shouldProcessEvent reports whether event names a watched source.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.files[event.Name] {
		return true
	}
	if w.hidden(event.Name) || !w.underRoot(event.Name) {
		return false
	}
	return w.hasValidExtension(filepath.Ext(event.Name))
}

func (w *Watcher) underRoot(path string) bool {
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) hidden(path string) bool {
	return w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

func (w *Watcher) hasValidExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, valid := range w.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}

package fixes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is how long the watcher waits after the last change event
// before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Registry serves the current fix tables: the built-in defaults with every
// YAML override file of a directory applied in file name order. When
// watching, edits to the directory trigger a reload once the events of a
// save have settled.
type Registry struct {
	mu       sync.RWMutex
	tables   Tables
	dir      string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	done     chan struct{}
	onChange func(Tables)
	debounce time.Duration
}

// NewRegistry creates a registry serving the built-in tables.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		tables:   Default(),
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// NewRegistryWithDirectory creates a registry and loads the override files
// of dir. A missing directory is not an error.
func NewRegistryWithDirectory(dir string, logger *zap.Logger) (*Registry, error) {
	r := NewRegistry(logger)
	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// Tables returns the current tables.
func (r *Registry) Tables() Tables {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables
}

// SetOnChange sets a callback invoked with the new tables after each
// successful reload triggered by the watcher.
func (r *Registry) SetOnChange(fn func(Tables)) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// SetDebounce sets the quiet period the watcher waits for before reloading.
// It must be called before Watch.
func (r *Registry) SetDebounce(d time.Duration) {
	r.mu.Lock()
	r.debounce = d
	r.mu.Unlock()
}

// LoadDirectory rebuilds the tables from the defaults and the YAML files in
// dir. On error the previous tables stay in place.
func (r *Registry) LoadDirectory(dir string) error {
	r.mu.Lock()
	r.dir = dir
	r.mu.Unlock()

	tables := Default()

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.swap(tables)
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var loadErrors []string
	for _, name := range names {
		loaded, err := LoadFile(tables, filepath.Join(dir, name))
		if err != nil {
			loadErrors = append(loadErrors, err.Error())
			continue
		}
		tables = loaded
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading fix tables: %s", strings.Join(loadErrors, "; "))
	}

	r.swap(tables)
	r.logger.Debug("Fix tables loaded",
		zap.String("dir", dir),
		zap.Int("files", len(names)),
		zap.Int("label_fixes", tables.Labels.Len()),
		zap.Int("broader_overrides", tables.Broader.Len()))
	return nil
}

// Reload reloads the configured directory.
func (r *Registry) Reload() error {
	r.mu.RLock()
	dir := r.dir
	r.mu.RUnlock()

	if dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}
	return r.LoadDirectory(dir)
}

func (r *Registry) swap(tables Tables) {
	r.mu.Lock()
	r.tables = tables
	r.mu.Unlock()
}

// Watch starts watching the configured directory for changes.
func (r *Registry) Watch() error {
	r.mu.RLock()
	dir := r.dir
	r.mu.RUnlock()

	if dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	r.mu.RLock()
	debounce := r.debounce
	r.mu.RUnlock()

	r.watcher = watcher
	r.stopChan = make(chan struct{})
	r.done = make(chan struct{})

	go r.watchLoop(watcher, debounce, r.stopChan, r.done)

	return nil
}

func (r *Registry) watchLoop(watcher *fsnotify.Watcher, debounce time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	pending := ""
	for {
		select {
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isYAML(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending = event.Name
			timer.Reset(debounce)

		case <-timer.C:
			if pending == "" {
				continue
			}
			r.handleChange(pending)
			pending = ""

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("Fix table watcher error", zap.Error(err))
		}
	}
}

func (r *Registry) handleChange(path string) {
	if err := r.Reload(); err != nil {
		r.logger.Warn("Keeping previous fix tables", zap.String("file", path), zap.Error(err))
		return
	}

	r.mu.RLock()
	onChange := r.onChange
	tables := r.tables
	r.mu.RUnlock()

	r.logger.Info("Fix tables reloaded", zap.String("file", path))
	if onChange != nil {
		onChange(tables)
	}
}

// StopWatch stops watching and waits for the watch goroutine to exit.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
	if r.done != nil {
		<-r.done
		r.done = nil
	}
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

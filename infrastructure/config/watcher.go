package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"campusnav-backend/domain/core/aggregates"
)

// CampusWatcher watches the campus file for edits. The running campus is
// immutable, so the watcher never swaps it: a valid edit is reported as
// pending until restart, an invalid edit is reported as a warning. That keeps
// in-flight routes consistent while still catching broken edits the moment
// they land instead of at the next deploy.
type CampusWatcher struct {
	path    string
	running *aggregates.Campus
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	stopCh  chan struct{}
}

// NewCampusWatcher creates a watcher for the campus file backing the running
// campus
func NewCampusWatcher(path string, running *aggregates.Campus, logger *zap.Logger) (*CampusWatcher, error) {
	if path == "" {
		return nil, fmt.Errorf("no campus file to watch: campus is embedded")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch campus file: %w", err)
	}

	// Also watch the directory for atomic saves (rename operations)
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		logger.Warn("Failed to watch campus directory", zap.Error(err))
	}

	return &CampusWatcher{
		path:    path,
		running: running,
		watcher: watcher,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for campus file changes
func (w *CampusWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("Campus watcher started", zap.String("path", w.path))
}

// Stop stops watching for campus file changes
func (w *CampusWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("Campus watcher stopped")
}

// watchLoop is the main loop that watches for file changes
func (w *CampusWatcher) watchLoop() {
	// Debounce timer to avoid reacting to every partial write
	var debounceTimer *time.Timer
	debounceDuration := 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only handle write and create events for our campus file
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}

				debounceTimer = time.AfterFunc(debounceDuration, func() {
					w.handleCampusChange()
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// handleCampusChange re-parses the edited file and reports the outcome
func (w *CampusWatcher) handleCampusChange() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("Campus file changed but could not be read",
			zap.String("path", w.path),
			zap.Error(err),
		)
		return
	}

	pending, err := ParseCampus(data)
	if err != nil {
		w.logger.Warn("Campus file changed but does not parse, keeping running campus",
			zap.String("path", w.path),
			zap.Error(err),
		)
		return
	}

	w.logger.Info("Campus file changed, restart to apply",
		zap.String("path", w.path),
		zap.Int("running_locations", w.running.LocationCount()),
		zap.Int("pending_locations", pending.LocationCount()),
		zap.Int("running_edges", w.running.EdgeCount()),
		zap.Int("pending_edges", pending.EdgeCount()),
	)
}

// Package watcher reports changes to the persisted settings and folder list,
// so a running role picks up edits made by another process.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/autocleaner/autocleaner/internal/config"
)

// EventType represents the type of record that changed.
type EventType int

// Event types for record changes.
const (
	EventFoldersChanged EventType = iota
	EventSettingsChanged
)

func (t EventType) String() string {
	switch t {
	case EventFoldersChanged:
		return "folders"
	case EventSettingsChanged:
		return "settings"
	default:
		return "unknown"
	}
}

// Event represents a change to a persisted record.
type Event struct {
	Type EventType
	Path string
}

// DefaultDebounce coalesces the burst of events produced by one save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches the application directory.
type Watcher struct {
	dir        string
	logger     *slog.Logger
	delay      time.Duration
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for the records stored in dir.
func New(dir string, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		dir:        dir,
		logger:     logger.With("component", "watcher"),
		delay:      DefaultDebounce,
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start begins watching. The directory must exist.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Pending debounced events are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// handleEvent filters and debounces a single file system event.
// Saves replace the record with a rename, so Create and Rename matter as
// much as Write.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	var typ EventType
	switch filepath.Base(event.Name) {
	case config.FoldersFileName:
		typ = EventFoldersChanged
	case config.SettingsFileName:
		typ = EventSettingsChanged
	default:
		return
	}

	path := event.Name
	w.debounceEvent(path, func() {
		w.logger.Debug("record changed", "type", typ, "path", path)
		select {
		case w.eventsChan <- Event{Type: typ, Path: path}:
		case <-w.done:
		}
	})
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(w.delay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

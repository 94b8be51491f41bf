// Package watcher provides file system watching with debouncing for the workspace.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/pubsub"
)

// EventType identifies the kind of watcher event.
type EventType int

const (
	// WorkspaceChanged fires after a debounced burst of file system events.
	WorkspaceChanged EventType = iota
	// WatcherError reports a non-fatal error from the underlying watcher.
	WatcherError
)

// WatcherEvent is published on the broker for each notification.
type WatcherEvent struct {
	Type  EventType
	Error error // Set for WatcherError
}

// Watcher monitors the workspace tree for changes and publishes debounced
// notifications on a pubsub broker.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	ignore    map[string]struct{}
	debounce  time.Duration
	broker    *pubsub.Broker[WatcherEvent]
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Root        string
	Ignore      []string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		DebounceDur: 1 * time.Second,
	}
}

// New creates a new workspace watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	ignore := make(map[string]struct{}, len(cfg.Ignore))
	for _, name := range cfg.Ignore {
		ignore[name] = struct{}{}
	}

	debounce := cfg.DebounceDur
	if debounce <= 0 {
		debounce = DefaultConfig(cfg.Root).DebounceDur
	}

	return &Watcher{
		fsWatcher: fsw,
		root:      cfg.Root,
		ignore:    ignore,
		debounce:  debounce,
		broker:    pubsub.NewBroker[WatcherEvent](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the event broker for subscriptions.
func (w *Watcher) Broker() *pubsub.Broker[WatcherEvent] {
	return w.broker
}

// Start begins watching the workspace tree recursively.
func (w *Watcher) Start() error {
	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.broker.Close()
	return err
}

// addRecursive registers dir and all its non-ignored subdirectories.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ignored := w.ignore[name]
	return ignored
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.isRelevantEvent(event) {
				continue
			}

			// New directories need their own watch
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.skipDir(filepath.Base(event.Name)) {
						_ = w.fsWatcher.Add(event.Name)
					}
				}
			}

			// Reset or start the debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-timerC:
			if pending {
				w.broker.Publish(pubsub.UpdatedEvent, WatcherEvent{Type: WorkspaceChanged})
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "Watcher error", "error", err)
			w.broker.Publish(pubsub.UpdatedEvent, WatcherEvent{Type: WatcherError, Error: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a refresh.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if _, ignored := w.ignore[base]; ignored {
		return false
	}
	return true
}

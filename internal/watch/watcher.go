// Package watch reports changes of the config file so verbs can be reloaded
// while the browser runs.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"verbtree/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to
// settle before reporting a change.
const DefaultDebounce = 150 * time.Millisecond

// ConfigChange represents one settled modification of the config file.
type ConfigChange struct {
	Path      string
	Removed   bool
	Timestamp time.Time
}

// ConfigWatcher monitors a single config file using fsnotify. The parent
// directory is watched rather than the file, so editors that save by
// renaming a temporary file are still seen.
type ConfigWatcher struct {
	path     string
	debounce time.Duration

	changes  chan ConfigChange
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a watcher for the config file at path. The file itself may
// not exist yet; its directory must.
func New(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}
	info, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("error accessing config directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", filepath.Dir(abs))
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &ConfigWatcher{
		path:      abs,
		debounce:  DefaultDebounce,
		changes:   make(chan ConfigChange, 1),
		fsWatcher: fsWatcher,
	}, nil
}

// SetDebounce changes the settle delay. It must be called before Start.
func (w *ConfigWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Path returns the watched file.
func (w *ConfigWatcher) Path() string {
	return w.path
}

// Changes returns the channel that delivers config changes. It is closed
// by Stop.
func (w *ConfigWatcher) Changes() <-chan ConfigChange {
	return w.changes
}

// Start begins watching.
func (w *ConfigWatcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}

	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	go w.loop(w.stopChan, w.done)

	log.LogWithFields(log.F("path", w.path)).Info("Watching config file")
	return nil
}

func (w *ConfigWatcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var timer *time.Timer
	var fire <-chan time.Time
	removed := false

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op.Has(fsnotify.Chmod) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			removed = event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
			if removed {
				// a rename-replace save recreates the file right away
				if _, err := os.Stat(w.path); err == nil {
					removed = false
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			change := ConfigChange{Path: w.path, Removed: removed, Timestamp: time.Now()}
			select {
			case w.changes <- change:
			default:
				// a change is already pending, the reader will reload anyway
				log.LogWithFields(log.F("path", w.path)).Debug("config change coalesced")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop halts watching and closes the change channel.
func (w *ConfigWatcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	<-w.done

	w.running = false
	close(w.changes)

	log.Info("Config watcher stopped.")
}

// IsRunning returns whether the watcher is currently active.
func (w *ConfigWatcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

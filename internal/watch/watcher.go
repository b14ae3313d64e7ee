package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fotosort/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Vanished reports a candidate file that was removed or renamed away by
// another program.
type Vanished struct {
	Path      string // Path as originally supplied
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors the directories holding the candidates using fsnotify
type Watcher struct {
	// Absolute candidate path to every spelling it was supplied as
	tracked map[string][]string

	// Directories being watched
	directories []string

	// Channel to receive vanished candidates
	vanishedChan chan Vanished

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a watcher for the given candidate paths and registers their
// parent directories.
func New(paths []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		tracked:      make(map[string][]string),
		vanishedChan: make(chan Vanished, 16),
		stopChan:     make(chan struct{}),
		fsWatcher:    fsWatcher,
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("error resolving %s: %w", p, err)
		}
		if !contains(w.tracked[abs], p) {
			w.tracked[abs] = append(w.tracked[abs], p)
		}
		if err := w.addDirectory(filepath.Dir(abs)); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addDirectory(dir string) error {
	if contains(w.directories, dir) {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.directories = append(w.directories, dir)
	log.WithField("directory", dir).Debug("Watching directory")
	return nil
}

// Events returns the channel that delivers vanished candidates
func (w *Watcher) Events() <-chan Vanished {
	return w.vanishedChan
}

// Start begins the event loop in its own goroutine.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			w.report(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.WithField("error", err).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) report(event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	w.mutex.Lock()
	spellings, ok := w.tracked[abs]
	if ok {
		// A rename can be an editor's atomic save that leaves the name in place.
		if _, err := os.Lstat(abs); err == nil {
			w.mutex.Unlock()
			return
		}
		delete(w.tracked, abs)
	}
	w.mutex.Unlock()
	if !ok {
		return
	}

	for _, p := range spellings {
		v := Vanished{Path: p, Timestamp: time.Now(), Op: event.Op}
		select {
		case w.vanishedChan <- v:
		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		if w.fsWatcher != nil {
			w.fsWatcher.Close()
		}
		return
	}

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.WithField("error", err).Error("Error closing fsnotify watcher")
	}
	w.running = false
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the list of directories being watched
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return append([]string(nil), w.directories...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event for a file
// before it is reported as changed.
const DefaultDebounce = 500 * time.Millisecond

// ModelWatcher watches loaded model files for changes on disk. Parent
// directories are watched rather than the files themselves so that
// editors which save by renaming a temp file are still noticed.
//
// Changes are collected and handed to the owner of the models, either by
// polling Drain from a frame loop or through the OnChange callback. The
// watcher never touches models itself.
type ModelWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]bool // absolute paths of interest
	dirs     map[string]int  // watched directories and how many files use them
	pending  map[string]bool
	timers   map[string]*debounceTimer
	debounce time.Duration

	// OnChange is called from the watcher goroutine after the debounce
	// period. It must hand the path over to the owning goroutine.
	OnChange func(path string)
}

// New creates a model watcher
func New(debounce time.Duration) (*ModelWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &ModelWatcher{
		watcher:  fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		pending:  make(map[string]bool),
		timers:   make(map[string]*debounceTimer),
		debounce: debounce,
	}, nil
}

// Add starts watching the given model files
func (mw *ModelWatcher) Add(paths ...string) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		if mw.files[absPath] {
			continue
		}

		dir := filepath.Dir(absPath)
		if mw.dirs[dir] == 0 {
			if err := mw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		mw.dirs[dir]++
		mw.files[absPath] = true
	}
	return nil
}

// Set replaces the watched files with paths
func (mw *ModelWatcher) Set(paths []string) error {
	if err := mw.RemoveAll(); err != nil {
		return err
	}
	return mw.Add(paths...)
}

// Files returns the watched paths, sorted
func (mw *ModelWatcher) Files() []string {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	files := make([]string, 0, len(mw.files))
	for f := range mw.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Run processes file system events until ctx is done or the watcher is
// closed. It is usually started in its own goroutine.
func (mw *ModelWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-mw.watcher.Events:
			if !ok {
				return
			}

			// Saves show up as write, create or rename-into-place
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				mw.handleEvent(event.Name)
			}

		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("stlview: watcher error: %v", err)
		}
	}
}

// Start runs the event loop in a new goroutine
func (mw *ModelWatcher) Start(ctx context.Context) {
	go mw.Run(ctx)
}

// handleEvent debounces events for watched files
func (mw *ModelWatcher) handleEvent(name string) {
	absPath, err := filepath.Abs(name)
	if err != nil {
		return
	}

	mw.mu.Lock()
	defer mw.mu.Unlock()

	if !mw.files[absPath] {
		return
	}

	if pending, exists := mw.timers[absPath]; exists {
		pending.timer.Stop()
	}
	dt := &debounceTimer{}
	dt.timer = time.AfterFunc(mw.debounce, func() {
		mw.fire(absPath, dt)
	})
	mw.timers[absPath] = dt
}

// debounceTimer identifies one scheduled notification for a path
type debounceTimer struct {
	timer *time.Timer
}

// fire records a change for path. A timer that was replaced before it
// could be stopped leaves the newer one in place.
func (mw *ModelWatcher) fire(path string, dt *debounceTimer) {
	mw.mu.Lock()
	if !mw.files[path] {
		mw.mu.Unlock()
		return
	}
	if mw.timers[path] == dt {
		delete(mw.timers, path)
	}
	mw.pending[path] = true
	callback := mw.OnChange
	mw.mu.Unlock()

	if callback != nil {
		callback(path)
	}
}

// Drain returns and forgets the files changed since the last call
func (mw *ModelWatcher) Drain() []string {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if len(mw.pending) == 0 {
		return nil
	}
	changed := make([]string, 0, len(mw.pending))
	for path := range mw.pending {
		changed = append(changed, path)
	}
	mw.pending = make(map[string]bool)
	sort.Strings(changed)
	return changed
}

// Close stops the watcher
func (mw *ModelWatcher) Close() error {
	mw.mu.Lock()
	for _, pending := range mw.timers {
		pending.timer.Stop()
	}
	mw.mu.Unlock()
	return mw.watcher.Close()
}

// RemoveAll stops watching every file
func (mw *ModelWatcher) RemoveAll() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	for dir := range mw.dirs {
		if err := mw.watcher.Remove(dir); err != nil {
			return err
		}
	}
	for _, pending := range mw.timers {
		pending.timer.Stop()
	}

	mw.files = make(map[string]bool)
	mw.dirs = make(map[string]int)
	mw.pending = make(map[string]bool)
	mw.timers = make(map[string]*debounceTimer)
	return nil
}

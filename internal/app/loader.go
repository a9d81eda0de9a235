package app

import (
	"context"
	"log"

	"github.com/philipparndt/stlview/pkg/watcher"
)

// loadArgs loads command line arguments. Directories are read
// non-recursively regardless of the subfolder setting.
func (app *App) loadArgs(paths []string) {
	for _, path := range paths {
		app.lib.LoadPath(path)
	}
	app.syncWatcher()
}

// loadDropped loads dropped files and folders. Folders follow the
// subfolder setting and non-STL files are ignored.
func (app *App) loadDropped(paths []string) {
	app.lib.LoadDropped(paths, app.cfg.Load.Recursive)
	app.syncWatcher()
}

// setupFileWatcher starts watching loaded models for changes on disk
func (app *App) setupFileWatcher(ctx context.Context) error {
	mw, err := watcher.New(watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	mw.Start(ctx)
	app.watch = mw
	app.syncWatcher()
	return nil
}

// syncWatcher makes the watcher follow the library contents
func (app *App) syncWatcher() {
	if app.watch == nil {
		return
	}
	if err := app.watch.Set(app.lib.Paths()); err != nil {
		log.Printf("stlview: failed to watch models: %v", err)
	}
}

// reloadChanged re-parses models whose files changed. It runs on the main
// thread; the GPU mesh follows on the next sync.
func (app *App) reloadChanged() {
	if app.watch == nil {
		return
	}
	for _, path := range app.watch.Drain() {
		if i := app.lib.IndexOf(path); i >= 0 {
			if err := app.lib.Reload(i); err != nil {
				log.Printf("stlview: %v", err)
			}
		}
	}
}

package app

import (
	"context"
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/internal/dialog"
	"github.com/philipparndt/stlview/pkg/export"
	"github.com/philipparndt/stlview/pkg/library"
	"github.com/philipparndt/stlview/pkg/raster"
)

const (
	windowWidth  = 1400
	windowHeight = 900
	windowTitle  = "STL Viewer & Exporter"
)

// Run opens the viewer window, loads paths and blocks until the window is
// closed. Settings are written back to the config file on exit.
func Run(paths []string, opts Options) error {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			// Keep the broken file for the user to fix
			log.Printf("stlview: %v, using defaults", err)
			opts.ConfigPath = ""
		}
		cfg = loaded
	}

	app := &App{
		opts:     opts,
		cfg:      cfg,
		settings: cfg.Render,
		lib:      library.New(),
		dialogs:  dialog.Choose(opts.NativeDialogs),
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(windowWidth, windowHeight, windowTitle)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	app.gpu = newGPU()
	defer app.gpu.close()

	var target export.Target = &gpuTarget{gpu: app.gpu}
	if opts.SoftwareExport || !app.gpu.valid() {
		target = raster.NewOffscreen()
	}
	app.exporter = export.NewExporter(target, export.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.Watch {
		if err := app.setupFileWatcher(ctx); err != nil {
			fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
			fmt.Println("Auto-reload will not be available")
		} else {
			defer app.watch.Close()
		}
	}

	app.loadArgs(paths)

	for !rl.WindowShouldClose() {
		app.reloadChanged()
		app.handleInput(app.UI.layout.Viewport)
		app.gpu.upload(app.lib.Current())

		rl.BeginDrawing()
		app.drawFrame()
		rl.EndDrawing()

		app.runPending()
		app.gpu.upload(app.lib.Current())
	}

	return app.saveConfig()
}

// saveConfig persists the panel state
func (app *App) saveConfig() error {
	if app.opts.ConfigPath == "" {
		return nil
	}
	app.cfg.Render = app.settings.Clamped()
	if err := config.Save(app.opts.ConfigPath, app.cfg); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

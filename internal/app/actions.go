package app

import (
	"errors"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlview/pkg/export"
)

// runPending executes queued actions. Called between frames so modal
// dialogs and long exports do not interrupt drawing.
func (app *App) runPending() {
	pending := app.pending
	app.pending = nil

	for _, a := range pending {
		switch a {
		case actionOpenFile:
			app.openFile()
		case actionOpenFolder:
			app.openFolder()
		case actionExportCurrent:
			app.exportCurrent()
		case actionExportAll:
			app.exportAll()
		case actionClear:
			app.lib.Clear()
			app.syncWatcher()
		}
	}
}

func (app *App) openFile() {
	path, ok, err := app.dialogs.OpenFile()
	if err != nil {
		app.lib.SetStatus("Open failed: %v", err)
		return
	}
	if !ok {
		app.noDialog()
		return
	}
	app.lib.LoadFile(path)
	app.syncWatcher()
}

func (app *App) openFolder() {
	path, ok, err := app.dialogs.OpenFolder()
	if err != nil {
		app.lib.SetStatus("Open failed: %v", err)
		return
	}
	if !ok {
		app.noDialog()
		return
	}
	app.lib.LoadFolder(path, app.cfg.Load.Recursive)
	app.syncWatcher()
}

// noDialog explains why nothing happened when pickers are disabled
func (app *App) noDialog() {
	if !app.dialogs.Available() {
		app.lib.SetStatus("File dialogs are disabled. Drop files onto the window instead.")
	}
}

// exportOptions applies the panel state to the exporter
func (app *App) exportOptions() {
	app.exporter.Options = export.Options{
		OutputDir:    app.cfg.Export.OutputDir,
		NextToSource: app.cfg.Export.NextToSource,
		Caption:      app.cfg.Export.Caption,
	}
}

// exportCurrent writes the current model. With dialogs available the
// user picks the destination; otherwise the default path is used.
func (app *App) exportCurrent() {
	app.exportOptions()
	m := app.lib.Current()

	var path string
	var err error
	if m != nil && app.dialogs.Available() {
		picked, ok, dlgErr := app.dialogs.SaveFile(app.exporter.PathFor(m))
		if dlgErr != nil {
			app.lib.SetStatus("Export failed: %v", dlgErr)
			return
		}
		if !ok {
			return
		}
		path, err = picked, app.exporter.Export(m, app.settings, picked)
	} else {
		path, err = app.exporter.ExportCurrent(m, app.settings)
	}

	switch {
	case errors.Is(err, export.ErrNoModel):
		app.lib.SetStatus("Nothing to export: %v", err)
	case err != nil:
		log.Printf("stlview: %v", err)
		app.lib.SetStatus("Export failed: %s", m.Filename)
	default:
		app.lib.SetStatus("Exported: %s", path)
	}
}

// exportAll writes every loaded model, redrawing a progress frame after
// each one.
func (app *App) exportAll() {
	app.exportOptions()
	if app.lib.Len() == 0 {
		app.lib.SetStatus("Nothing to export: %v", export.ErrNoModel)
		return
	}

	summary := app.exporter.ExportAll(app.lib.Models(), app.settings, func(p export.Progress) {
		app.drawProgressFrame(p)
	})
	app.lib.SetStatus("%s", summary.String())
}

// drawProgressFrame shows batch progress while the frame loop is blocked
func (app *App) drawProgressFrame(p export.Progress) {
	rl.BeginDrawing()
	app.drawFrame()
	app.drawProgress(p)
	rl.EndDrawing()
}

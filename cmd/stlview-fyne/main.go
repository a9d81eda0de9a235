package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/pkg/analysis"
	"github.com/philipparndt/stlview/pkg/export"
	"github.com/philipparndt/stlview/pkg/library"
	"github.com/philipparndt/stlview/pkg/raster"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
	"github.com/philipparndt/stlview/pkg/viewer"
	"github.com/philipparndt/stlview/pkg/watcher"
)

// App is the fyne front end. The library is only used on the UI goroutine.
type App struct {
	window   fyne.Window
	cfg      config.Config
	cfgPath  string
	lib      *library.Library
	view     *viewer.ModelView
	exporter *export.Exporter
	watch    *watcher.ModelWatcher

	list     *widget.List
	info     *widget.Label
	status   *widget.Label
	progress *widget.ProgressBar
	camera   *widget.Label

	exporting bool // a batch export is running
}

func main() {
	a := app.NewWithID("io.github.philipparndt.stlview")
	w := a.NewWindow("STL Viewer & Exporter")

	ui := &App{
		window:   w,
		cfg:      config.Default(),
		lib:      library.New(),
		exporter: export.NewExporter(raster.NewOffscreen(), export.Options{}),
	}

	if path, err := config.DefaultPath(); err == nil {
		cfg, err := config.Load(path)
		if err != nil {
			log.Printf("stlview: %v, using defaults", err)
		} else {
			ui.cfgPath = path
		}
		ui.cfg = cfg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := ui.setupFileWatcher(ctx); err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
	} else {
		defer ui.watch.Close()
	}

	ui.setupMainUI()
	ui.load(os.Args[1:])

	w.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		paths := make([]string, 0, len(uris))
		for _, u := range uris {
			paths = append(paths, u.Path())
		}
		ui.lib.LoadDropped(paths, ui.cfg.Load.Recursive)
		ui.refresh()
	})
	w.SetCloseIntercept(func() {
		ui.saveConfig()
		w.Close()
	})

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) setupMainUI() {
	a.view = viewer.NewModelView(a.cfg.Render)
	a.view.OnCameraChanged = func(s render.Settings) {
		a.updateCamera(s)
	}

	a.list = widget.NewList(
		func() int { return a.lib.Len() },
		func() fyne.CanvasObject { return widget.NewLabel("model.stl") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(a.lib.Models()[id].Filename)
		},
	)
	a.list.OnSelected = func(id widget.ListItemID) {
		if a.lib.Select(id) {
			a.showCurrent()
		}
	}

	a.info = widget.NewLabel("")
	a.status = widget.NewLabel(a.lib.Status())
	a.status.Wrapping = fyne.TextWrapWord
	a.progress = widget.NewProgressBar()
	a.progress.Hide()
	a.camera = widget.NewLabel("")
	a.updateCamera(a.view.Settings())

	openButton := widget.NewButton("Open File", a.showFileDialog)
	folderButton := widget.NewButton("Open Folder", a.showFolderDialog)
	clearButton := widget.NewButton("Clear", func() {
		a.lib.Clear()
		a.refresh()
	})

	wireframeCheck := widget.NewCheck("Wireframe", func(checked bool) {
		a.view.Update(func(s *render.Settings) { s.Wireframe = checked })
	})
	wireframeCheck.SetChecked(a.cfg.Render.Wireframe)

	resetButton := widget.NewButton("Reset Camera", func() {
		a.view.Update(func(s *render.Settings) { s.ResetCamera() })
	})

	nextToSource := widget.NewCheck("Save next to source", func(checked bool) {
		a.cfg.Export.NextToSource = checked
	})
	nextToSource.SetChecked(a.cfg.Export.NextToSource)

	caption := widget.NewCheck("Caption with file name", func(checked bool) {
		a.cfg.Export.Caption = checked
	})
	caption.SetChecked(a.cfg.Export.Caption)

	exportButton := widget.NewButton("Export Current", a.exportCurrent)
	exportAllButton := widget.NewButton("Export All", a.exportAll)

	listScroll := container.NewVScroll(a.list)
	listScroll.SetMinSize(fyne.NewSize(0, 160))

	panel := container.NewVBox(
		container.NewGridWithColumns(3, openButton, folderButton, clearButton),
		widget.NewSeparator(),
		widget.NewLabel("Models:"),
		listScroll,
		widget.NewSeparator(),
		a.info,
		widget.NewSeparator(),
		widget.NewLabel("View:"),
		a.camera,
		wireframeCheck,
		resetButton,
		widget.NewSeparator(),
		widget.NewLabel("Export:"),
		nextToSource,
		caption,
		container.NewGridWithColumns(2, exportButton, exportAllButton),
		a.progress,
		widget.NewSeparator(),
		a.status,
	)

	infoScroll := container.NewVScroll(panel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		infoScroll, // left
		nil,        // right
		a.view,     // center
	)

	a.window.SetContent(content)
}

// load loads files and folders, then refreshes the UI
func (a *App) load(paths []string) {
	for _, path := range paths {
		if err := a.lib.LoadPath(path); err != nil {
			log.Printf("stlview: %v", err)
		}
	}
	a.refresh()
}

// refresh syncs widgets and the watcher with the library
func (a *App) refresh() {
	a.list.Refresh()
	if i := a.lib.CurrentIndex(); i >= 0 {
		a.list.Select(i)
	} else {
		a.list.UnselectAll()
	}
	a.showCurrent()

	if a.watch != nil {
		if err := a.watch.Set(a.lib.Paths()); err != nil {
			log.Printf("stlview: %v", err)
		}
	}
}

// showCurrent displays the selected model and its measurements
func (a *App) showCurrent() {
	m := a.lib.Current()
	a.view.SetModel(m)
	a.status.SetText(a.lib.Status())

	if m == nil {
		a.info.SetText("No model loaded")
		return
	}
	r := analysis.Analyze(m)
	a.info.SetText(fmt.Sprintf(
		"Model: %s\nFormat: %s\nTriangles: %d\nSurface Area: %.2f\nVolume: %.2f\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		r.Filename,
		r.Format,
		r.TriangleCount,
		r.SurfaceArea,
		r.Volume,
		r.Dimensions.X,
		r.Dimensions.Y,
		r.Dimensions.Z,
	))
}

func (a *App) updateCamera(s render.Settings) {
	a.camera.SetText(fmt.Sprintf("Elevation %.0f, Azimuth %.0f, Distance %.1f", s.Elevation, s.Azimuth, s.Distance))
}

func (a *App) showFileDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.load([]string{reader.URI().Path()})
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".stl", ".STL"}))
	d.Show()
}

func (a *App) showFolderDialog() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if dir == nil {
			return
		}
		if _, err := a.lib.LoadFolder(dir.Path(), a.cfg.Load.Recursive); err != nil {
			log.Printf("stlview: %v", err)
		}
		a.refresh()
	}, a.window)
}

func (a *App) exportOptions() {
	a.exporter.Options = export.Options{
		OutputDir:    a.cfg.Export.OutputDir,
		NextToSource: a.cfg.Export.NextToSource,
		Caption:      a.cfg.Export.Caption,
	}
}

func (a *App) exportCurrent() {
	if a.exporting {
		return
	}
	a.exportOptions()
	path, err := a.exporter.ExportCurrent(a.lib.Current(), a.view.Settings())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.lib.SetStatus("Exported: %s", path)
	a.status.SetText(a.lib.Status())
}

// exportAll runs the batch in the background and reports progress on the
// UI goroutine.
func (a *App) exportAll() {
	if a.exporting {
		return
	}
	a.exportOptions()
	models := append([]*stl.Model(nil), a.lib.Models()...)
	if len(models) == 0 {
		dialog.ShowError(export.ErrNoModel, a.window)
		return
	}

	s := a.view.Settings()
	a.exporting = true
	a.progress.SetValue(0)
	a.progress.Show()

	go func() {
		summary := a.exporter.ExportAll(models, s, func(p export.Progress) {
			fyne.Do(func() { a.progress.SetValue(float64(p.Fraction())) })
		})
		fyne.Do(func() {
			a.exporting = false
			a.progress.Hide()
			a.lib.SetStatus("%s", summary.String())
			a.status.SetText(a.lib.Status())
		})
	}()
}

// setupFileWatcher reloads models changed on disk
func (a *App) setupFileWatcher(ctx context.Context) error {
	mw, err := watcher.New(watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	mw.OnChange = func(path string) {
		fyne.Do(func() {
			mw.Drain()
			if i := a.lib.IndexOf(path); i >= 0 {
				if err := a.lib.Reload(i); err != nil {
					log.Printf("stlview: %v", err)
				}
				a.showCurrent()
			}
		})
	}
	mw.Start(ctx)
	a.watch = mw
	return nil
}

func (a *App) saveConfig() {
	if a.cfgPath == "" {
		return
	}
	a.cfg.Render = a.view.Settings()
	if err := config.Save(a.cfgPath, a.cfg); err != nil {
		log.Printf("stlview: %v", err)
	}
}

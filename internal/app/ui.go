package app

import (
	"fmt"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlview/pkg/analysis"
	"github.com/philipparndt/stlview/pkg/export"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/version"
)

const (
	panelWidth     = 320
	listRows       = 8
	minExportSize  = render.MinExportSize
	maxExportSize  = 4096
	statusBarSpace = 28
)

// swatches are the model colors offered in the panel
var swatches = []render.Color{
	{0.7, 0.7, 0.75, 1},
	{0.85, 0.45, 0.2, 1},
	{0.3, 0.6, 0.9, 1},
	{0.4, 0.75, 0.4, 1},
	{0.9, 0.8, 0.3, 1},
	{0.75, 0.3, 0.35, 1},
}

// drawFrame draws the panel and the viewport for one frame. The caller
// wraps it in BeginDrawing/EndDrawing.
func (app *App) drawFrame() {
	rl.ClearBackground(panelColor)

	layout := app.drawPanel()
	app.UI.layout = layout

	vp := layout.Viewport
	app.gpu.renderViewport(app.settings, int(vp.Width), int(vp.Height))
	app.gpu.drawViewport(vp)

	if app.lib.Current() == nil {
		msg := "Drop STL files here or press Ctrl+O"
		tw := rl.MeasureText(msg, 20)
		rl.DrawText(msg, int32(vp.X+(vp.Width-float32(tw))/2), int32(vp.Y+vp.Height/2), 20, dimColor)
	}

	app.drawStatus(layout)

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.UI.activeSlider = ""
	}
}

// drawPanel draws the side panel and returns the layout for this frame
func (app *App) drawPanel() panelLayout {
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	width := min(float32(panelWidth), screenW/2)

	layout := panelLayout{
		Width: width,
		Viewport: rl.Rectangle{
			X:      width,
			Y:      0,
			Width:  max(screenW-width, 1),
			Height: max(screenH-statusBarSpace, 1),
		},
	}

	panel := rl.Rectangle{Width: width, Height: screenH}
	rl.DrawRectangleRec(panel, panelColor)
	rl.BeginScissorMode(0, 0, int32(width), int32(screenH))
	defer rl.EndScissorMode()

	c := &cursor{x: panelInset, y: panelInset - app.UI.panelScroll, width: width - 2*panelInset}

	rl.DrawText("STL Viewer & Exporter", int32(c.x), int32(c.y), 20, textColor)
	c.space(26)
	app.label(c, version.GetVersion(), dimColor)

	switch app.buttonRow(c, "Open File", "Open Folder", "Clear") {
	case 0:
		app.queue(actionOpenFile)
	case 1:
		app.queue(actionOpenFolder)
	case 2:
		app.queue(actionClear)
	}
	app.checkbox(c, "Include subfolders", &app.cfg.Load.Recursive)

	app.drawModelList(c)
	app.drawModelInfo(c)
	app.drawCameraControls(c)
	app.drawAppearanceControls(c)
	app.drawExportControls(c)

	// Scroll the panel when its content is taller than the window
	content := c.y + app.UI.panelScroll + panelInset
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), panel) && !app.UI.overList {
		app.UI.panelScroll -= rl.GetMouseWheelMove() * 40
	}
	app.UI.panelScroll = max(0, min(app.UI.panelScroll, content-screenH))

	return layout
}

// drawModelList shows the loaded models; clicking one selects it
func (app *App) drawModelList(c *cursor) {
	app.heading(c, fmt.Sprintf("Models (%d)", app.lib.Len()))

	models := app.lib.Models()
	app.UI.overList = false
	if len(models) == 0 {
		app.label(c, "No models loaded", dimColor)
		return
	}

	// Keep the selection visible
	cur := app.lib.CurrentIndex()
	if cur < app.UI.listScroll {
		app.UI.listScroll = cur
	}
	if cur >= app.UI.listScroll+listRows {
		app.UI.listScroll = cur - listRows + 1
	}

	listRect := rl.Rectangle{X: c.x, Y: c.y, Width: c.width, Height: float32(min(len(models), listRows)) * 20}
	app.UI.overList = len(models) > listRows && rl.CheckCollisionPointRec(rl.GetMousePosition(), listRect)
	if app.UI.overList {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			app.UI.listScroll -= int(wheel)
		}
	}
	app.UI.listScroll = max(0, min(app.UI.listScroll, len(models)-listRows))

	end := min(len(models), app.UI.listScroll+listRows)
	for i := app.UI.listScroll; i < end; i++ {
		r := rl.Rectangle{X: c.x, Y: c.y, Width: c.width, Height: 18}
		hovered := rl.CheckCollisionPointRec(rl.GetMousePosition(), r)
		switch {
		case i == cur:
			rl.DrawRectangleRec(r, accentColor)
		case hovered:
			rl.DrawRectangleRec(r, hoverColor)
		}
		name := truncate(models[i].Filename, c.width-8, smallFont)
		rl.DrawText(name, int32(r.X+4), int32(r.Y+2), smallFont, textColor)

		if hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			app.lib.Select(i)
		}
		c.space(20)
	}
	if len(models) > listRows {
		app.label(c, fmt.Sprintf("%d-%d of %d, scroll for more", app.UI.listScroll+1, end, len(models)), dimColor)
	}
}

// drawModelInfo shows measurements of the current model
func (app *App) drawModelInfo(c *cursor) {
	m := app.lib.Current()
	if m == nil {
		return
	}
	if app.UI.reportFor != m {
		app.UI.report = analysis.Analyze(m)
		app.UI.reportFor = m
	}
	r := app.UI.report

	app.heading(c, "Model")
	app.label(c, truncate(r.Filename, c.width, smallFont), textColor)
	app.label(c, fmt.Sprintf("%s, %d triangles", r.Format, r.TriangleCount), dimColor)
	app.label(c, fmt.Sprintf("Size: %.2f x %.2f x %.2f", r.Dimensions.X, r.Dimensions.Y, r.Dimensions.Z), dimColor)
	app.label(c, fmt.Sprintf("Area: %.2f  Volume: %.2f", r.SurfaceArea, r.Volume), dimColor)
	if r.Stats.RepairedNormals > 0 {
		app.label(c, fmt.Sprintf("Repaired normals: %d", r.Stats.RepairedNormals), dimColor)
	}
}

func (app *App) drawCameraControls(c *cursor) {
	app.heading(c, "Camera")
	s := &app.settings
	app.slider(c, "Elevation", "%.0f", &s.Elevation, render.MinElevation, render.MaxElevation)
	app.slider(c, "Azimuth", "%.0f", &s.Azimuth, render.MinAzimuth, render.MaxAzimuth)
	app.slider(c, "Distance", "%.1f", &s.Distance, render.MinDistance, render.MaxDistance)
	app.slider(c, "Field of view", "%.0f", &s.FOV, render.MinFOV, render.MaxFOV)
	if app.buttonRow(c, "Reset Camera") == 0 {
		s.ResetCamera()
	}
}

func (app *App) drawAppearanceControls(c *cursor) {
	app.heading(c, "Appearance")
	s := &app.settings

	r := c.row()
	size := r.Height
	for i, sw := range swatches {
		box := rl.Rectangle{X: r.X + float32(i)*(size+6), Y: r.Y, Width: size, Height: size}
		rl.DrawRectangleRec(box, toColor(sw))
		if s.ModelColor == sw {
			rl.DrawRectangleLinesEx(box, 2, textColor)
		}
		if rl.CheckCollisionPointRec(rl.GetMousePosition(), box) && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			s.ModelColor = sw
		}
	}

	app.checkbox(c, "Wireframe (W)", &s.Wireframe)
	if s.Wireframe {
		app.slider(c, "Edge width", "%.1f", &s.EdgeWidth, render.MinEdgeWidth, render.MaxEdgeWidth)
	}
	app.slider(c, "Ambient", "%.2f", &s.Ambient, 0, 1)
	app.slider(c, "Diffuse", "%.2f", &s.Diffuse, 0, 1)
	app.slider(c, "Specular", "%.2f", &s.Specular, 0, 1)
	app.slider(c, "Shininess", "%.0f", &s.Shininess, render.MinShininess, render.MaxShininess)
}

func (app *App) drawExportControls(c *cursor) {
	app.heading(c, "Export")
	s := &app.settings
	app.intSlider(c, "Width", &s.ExportWidth, minExportSize, maxExportSize)
	app.intSlider(c, "Height", &s.ExportHeight, minExportSize, maxExportSize)
	app.intSlider(c, "Supersample", &s.Supersample, 1, render.MaxSupersample)

	app.checkbox(c, "Save next to source", &app.cfg.Export.NextToSource)
	if !app.cfg.Export.NextToSource {
		dir := app.cfg.Export.OutputDir
		if dir == "" {
			dir = "(working directory)"
		}
		app.label(c, truncate("Output: "+filepath.Clean(dir), c.width, smallFont), dimColor)
	}
	app.checkbox(c, "Caption with file name", &app.cfg.Export.Caption)

	switch app.buttonRow(c, "Export Current", "Export All") {
	case 0:
		app.queue(actionExportCurrent)
	case 1:
		app.queue(actionExportAll)
	}
	app.label(c, "Renderer: "+app.exporter.Target.Name(), dimColor)
}

// drawStatus draws the status bar under the viewport
func (app *App) drawStatus(layout panelLayout) {
	y := layout.Viewport.Y + layout.Viewport.Height
	bar := rl.Rectangle{X: layout.Viewport.X, Y: y, Width: layout.Viewport.Width, Height: statusBarSpace}
	rl.DrawRectangleRec(bar, panelColor)
	text := truncate(app.lib.Status(), bar.Width-16, smallFont)
	rl.DrawText(text, int32(bar.X+8), int32(bar.Y+7), smallFont, textColor)
}

// drawProgress overlays the batch export progress on the viewport
func (app *App) drawProgress(p export.Progress) {
	vp := app.UI.layout.Viewport
	box := rl.Rectangle{X: vp.X + vp.Width/2 - 160, Y: vp.Y + vp.Height/2 - 40, Width: 320, Height: 80}
	rl.DrawRectangleRec(box, rl.NewColor(0, 0, 0, 200))
	rl.DrawText(fmt.Sprintf("Exporting %d of %d", p.Done, p.Total), int32(box.X+16), int32(box.Y+14), fontSize, textColor)
	progressBar(rl.Rectangle{X: box.X + 16, Y: box.Y + 44, Width: box.Width - 32, Height: 16}, p.Fraction())
}

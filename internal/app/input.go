package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard shortcuts, dropped files and the mouse
// camera. Anything that opens a dialog or exports is queued for after the
// frame.
func (app *App) handleInput(viewport rl.Rectangle) {
	app.handleDrops()
	app.handleCameraKeys()
	app.handleOrbit(viewport)

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if ctrl {
		switch {
		case rl.IsKeyPressed(rl.KeyO) && shift:
			app.queue(actionOpenFolder)
		case rl.IsKeyPressed(rl.KeyO):
			app.queue(actionOpenFile)
		case rl.IsKeyPressed(rl.KeyE) && shift:
			app.queue(actionExportAll)
		case rl.IsKeyPressed(rl.KeyE):
			app.queue(actionExportCurrent)
		case rl.IsKeyPressed(rl.KeyL):
			app.queue(actionClear)
		}
		return
	}

	if rl.IsKeyPressed(rl.KeyW) {
		app.settings.Wireframe = !app.settings.Wireframe
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		app.lib.Next()
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		app.lib.Previous()
	}
}

// handleDrops loads files and folders dropped onto the window
func (app *App) handleDrops() {
	if !rl.IsFileDropped() {
		return
	}
	dropped := rl.LoadDroppedFiles()
	rl.UnloadDroppedFiles()
	app.loadDropped(dropped)
}

func (app *App) queue(a action) {
	app.pending = append(app.pending, a)
}

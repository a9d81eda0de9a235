package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlview/pkg/render"
)

// viewKeys maps the preset shortcuts to camera views
var viewKeys = []struct {
	key  int32
	view render.View
}{
	{rl.KeyOne, render.ViewFront},
	{rl.KeyTwo, render.ViewBack},
	{rl.KeyThree, render.ViewLeft},
	{rl.KeyFour, render.ViewRight},
	{rl.KeyT, render.ViewTop},
	{rl.KeyB, render.ViewBottom},
}

// handleCameraKeys applies camera presets
func (app *App) handleCameraKeys() {
	if rl.IsKeyPressed(rl.KeyHome) || rl.IsKeyPressed(rl.KeyR) {
		app.settings.ResetCamera()
	}
	for _, vk := range viewKeys {
		if rl.IsKeyPressed(vk.key) {
			app.settings.SetView(vk.view)
		}
	}
}

// handleOrbit rotates the camera while the left button drags inside the
// viewport and zooms with the wheel when the pointer is over it.
func (app *App) handleOrbit(viewport rl.Rectangle) {
	mouse := rl.GetMousePosition()
	inside := rl.CheckCollisionPointRec(mouse, viewport)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && inside && app.UI.activeSlider == "" {
		app.Interaction.dragging = true
		app.Interaction.lastMousePos = mouse
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.Interaction.dragging = false
	}

	if app.Interaction.dragging && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		dx := mouse.X - app.Interaction.lastMousePos.X
		dy := mouse.Y - app.Interaction.lastMousePos.Y
		if dx != 0 || dy != 0 {
			app.settings.Orbit(dx, dy)
		}
		app.Interaction.lastMousePos = mouse
	}

	if inside {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			app.settings.Zoom(wheel)
		}
	}
}

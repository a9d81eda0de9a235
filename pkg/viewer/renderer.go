// Package viewer provides a fyne widget that shows a model through the
// software rasterizer.
package viewer

import (
	"image"
	"image/color"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/stlview/pkg/raster"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
)

// ScrollPerNotch is the fyne scroll distance of one mouse wheel notch
const ScrollPerNotch = 10

// ModelView renders a model with orbit and zoom interaction
type ModelView struct {
	widget.BaseWidget

	mu       sync.Mutex
	model    *stl.Model
	settings render.Settings

	raster *canvas.Raster

	// OnCameraChanged is called on the UI goroutine after a drag or scroll
	OnCameraChanged func(render.Settings)
}

// NewModelView creates a view with the given settings and no model
func NewModelView(s render.Settings) *ModelView {
	v := &ModelView{settings: s.Clamped()}
	v.raster = canvas.NewRaster(v.generate)
	v.ExtendBaseWidget(v)
	return v
}

// SetModel replaces the displayed model, nil clears the view
func (v *ModelView) SetModel(m *stl.Model) {
	v.mu.Lock()
	v.model = m
	v.mu.Unlock()
	v.Refresh()
}

// Model returns the displayed model
func (v *ModelView) Model() *stl.Model {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.model
}

// SetSettings replaces camera and appearance settings
func (v *ModelView) SetSettings(s render.Settings) {
	v.mu.Lock()
	v.settings = s.Clamped()
	v.mu.Unlock()
	v.Refresh()
}

// Settings returns a copy of the current settings
func (v *ModelView) Settings() render.Settings {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settings
}

// Update changes settings in place and redraws
func (v *ModelView) Update(fn func(*render.Settings)) {
	v.mu.Lock()
	fn(&v.settings)
	v.settings = v.settings.Clamped()
	s := v.settings
	v.mu.Unlock()

	v.Refresh()
	if v.OnCameraChanged != nil {
		v.OnCameraChanged(s)
	}
}

// generate draws the model at the raster's pixel size
func (v *ModelView) generate(w, h int) image.Image {
	v.mu.Lock()
	m, s := v.model, v.settings
	v.mu.Unlock()

	if w <= 0 || h <= 0 {
		return image.NewUniform(color.Transparent)
	}
	fb, err := raster.Draw(m, s, w, h)
	if err != nil {
		log.Printf("stlview: %v", err)
		return image.NewUniform(color.Black)
	}
	return fb.Image()
}

// Dragged orbits the camera
func (v *ModelView) Dragged(event *fyne.DragEvent) {
	v.Update(func(s *render.Settings) {
		s.Orbit(event.Dragged.DX, event.Dragged.DY)
	})
}

// DragEnd implements fyne.Draggable
func (v *ModelView) DragEnd() {}

// Scrolled zooms the camera
func (v *ModelView) Scrolled(event *fyne.ScrollEvent) {
	v.Update(func(s *render.Settings) {
		s.Zoom(event.Scrolled.DY / ScrollPerNotch)
	})
}

// MinSize keeps the viewport usable
func (v *ModelView) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

// CreateRenderer creates the renderer for the widget
func (v *ModelView) CreateRenderer() fyne.WidgetRenderer {
	return &modelViewRenderer{view: v}
}

// modelViewRenderer implements fyne.WidgetRenderer
type modelViewRenderer struct {
	view *ModelView
}

func (r *modelViewRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
}

func (r *modelViewRenderer) MinSize() fyne.Size {
	return r.view.MinSize()
}

func (r *modelViewRenderer) Refresh() {
	r.view.raster.Refresh()
}

func (r *modelViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster}
}

func (r *modelViewRenderer) Destroy() {}

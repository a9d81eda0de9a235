package viewer

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
)

func triangleModel() *stl.Model {
	m := stl.NewModel("tri")
	m.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(-1, -1, 0),
		geometry.NewVector3(1, -1, 0),
		geometry.NewVector3(0, 1, 0),
	))
	m.Prepare()
	return m
}

func TestModelViewGenerate(t *testing.T) {
	test.NewTempApp(t)

	v := NewModelView(render.DefaultSettings())
	img := v.generate(64, 48)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	v.SetModel(triangleModel())
	require.NotNil(t, v.Model())
	img = v.generate(64, 48)
	assert.Equal(t, 64, img.Bounds().Dx())

	// Zero sized rasters are skipped
	assert.NotNil(t, v.generate(0, 10))
}

func TestModelViewInteraction(t *testing.T) {
	test.NewTempApp(t)

	v := NewModelView(render.DefaultSettings())
	var changes int
	v.OnCameraChanged = func(render.Settings) { changes++ }

	start := v.Settings()
	v.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(10, 0)})
	assert.InDelta(t, start.Azimuth+3, v.Settings().Azimuth, 1e-4)

	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, ScrollPerNotch)})
	assert.InDelta(t, start.Distance-render.ZoomPerNotch, v.Settings().Distance, 1e-5)
	assert.Equal(t, 2, changes)

	v.Update(func(s *render.Settings) { s.Elevation = 1000 })
	assert.Equal(t, float32(render.MaxElevation), v.Settings().Elevation)
}

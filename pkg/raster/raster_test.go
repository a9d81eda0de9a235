package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
)

// rightTriangle faces the default front camera with its right angle at
// the bottom left.
func rightTriangle() *stl.Model {
	m := stl.NewModel("tri")
	m.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
	))
	m.Prepare()
	return m
}

func frontView() render.Settings {
	s := render.DefaultSettings()
	s.Elevation = 0
	s.Azimuth = 0
	return s
}

func pixel(pix []byte, width, x, y int) [4]uint8 {
	i := (y*width + x) * 4
	return [4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

func TestRenderFullHD(t *testing.T) {
	pix, err := NewOffscreen().Render(rightTriangle(), render.DefaultSettings(), 1920, 1080)
	require.NoError(t, err)
	assert.Len(t, pix, 1920*1080*4)
}

func TestRenderTopRowFirst(t *testing.T) {
	s := frontView()
	pix, err := NewOffscreen().Render(rightTriangle(), s, 100, 100)
	require.NoError(t, err)

	bg := s.Background.Bytes()
	assert.NotEqual(t, bg, pixel(pix, 100, 18, 82), "bottom left should be covered")
	assert.Equal(t, bg, pixel(pix, 100, 82, 18), "top right should be empty")
	assert.Equal(t, bg, pixel(pix, 100, 0, 0))
}

func TestRenderEmptyModel(t *testing.T) {
	s := render.DefaultSettings()
	pix, err := NewOffscreen().Render(nil, s, 8, 4)
	require.NoError(t, err)
	require.Len(t, pix, 8*4*4)

	bg := s.Background.Bytes()
	for i := 0; i < len(pix); i += 4 {
		assert.Equal(t, bg[:], pix[i:i+4])
	}
}

func TestRenderAlphaFromModelColor(t *testing.T) {
	s := frontView()
	s.ModelColor[3] = 0.5
	pix, err := NewOffscreen().Render(rightTriangle(), s, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, uint8(128), pixel(pix, 100, 18, 82)[3])
}

func TestRenderWireframe(t *testing.T) {
	s := frontView()
	s.Wireframe = true
	pix, err := NewOffscreen().Render(rightTriangle(), s, 100, 100)
	require.NoError(t, err)

	edge := s.EdgeColor.Bytes()
	found := false
	for y := 85; y <= 95; y++ {
		if pixel(pix, 100, 50, y) == edge {
			found = true
		}
	}
	assert.True(t, found, "bottom edge should be drawn in the edge color")
}

func TestRenderSupersampled(t *testing.T) {
	s := frontView()
	s.Supersample = 2
	img, err := NewOffscreen().RenderImage(rightTriangle(), s, 64, 48)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
	assert.Len(t, img.Pix, 64*48*4)
}

func TestRenderCameraInsideModel(t *testing.T) {
	s := render.DefaultSettings()
	s.Distance = render.MinDistance
	s.Wireframe = true
	pix, err := NewOffscreen().Render(rightTriangle(), s, 32, 32)
	require.NoError(t, err)
	assert.Len(t, pix, 32*32*4)
}

func TestRenderTargetError(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
		{"too large", MaxTargetSize + 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOffscreen().Render(rightTriangle(), render.DefaultSettings(), tt.width, tt.height)
			var targetErr *RenderTargetError
			require.ErrorAs(t, err, &targetErr)
			assert.Equal(t, tt.width, targetErr.Width)
		})
	}
}

func TestFlipRows(t *testing.T) {
	// 1 pixel wide, 3 rows
	pix := []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}
	FlipRows(pix, 1, 3)
	assert.Equal(t, []byte{
		3, 3, 3, 3,
		2, 2, 2, 2,
		1, 1, 1, 1,
	}, pix)
}

func TestFramebufferBottomUp(t *testing.T) {
	fb, err := NewFramebuffer(2, 2)
	require.NoError(t, err)
	fb.Clear(render.Color{0, 0, 0, 1})

	red := [4]uint8{255, 0, 0, 255}
	require.True(t, fb.set(0, 0, 1, red))
	assert.Equal(t, red, pixel(fb.Color, fb.Width, 0, 0))

	// Bottom left ends up in the last row
	pix := fb.Pixels()
	assert.Equal(t, red, pixel(pix, 2, 0, 1))
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(pix, 2, 0, 0))
}

func TestFramebufferDepthTest(t *testing.T) {
	fb, err := NewFramebuffer(1, 1)
	require.NoError(t, err)
	fb.Clear(render.Color{})

	assert.True(t, fb.set(0, 0, 2, [4]uint8{1, 1, 1, 1}))
	assert.False(t, fb.set(0, 0, 3, [4]uint8{2, 2, 2, 2}))
	assert.True(t, fb.set(0, 0, 1, [4]uint8{3, 3, 3, 3}))
	assert.Equal(t, [4]uint8{3, 3, 3, 3}, pixel(fb.Color, fb.Width, 0, 0))
}

func TestSupersampleFactor(t *testing.T) {
	assert.Equal(t, 1, SupersampleFactor(0, 100, 100))
	assert.Equal(t, 4, SupersampleFactor(9, 100, 100))
	assert.Equal(t, 1, SupersampleFactor(4, MaxTargetSize, 10))
	assert.Equal(t, 2, SupersampleFactor(4, MaxTargetSize/2, 10))
}

package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlview/pkg/geometry"
)

func box(min, max geometry.Vector3) geometry.BoundingBox {
	b := geometry.NewBoundingBox()
	b.Extend(min)
	b.Extend(max)
	return b
}

func TestNormalizedSpan(t *testing.T) {
	point := box(geometry.NewVector3(5, 5, 5), geometry.NewVector3(5, 5, 5))
	assert.Equal(t, float32(1), NormalizedSpan(point))

	cube := box(geometry.NewVector3(0, 0, 0), geometry.NewVector3(4, 2, 1))
	assert.Equal(t, float32(4), NormalizedSpan(cube))
}

func TestModelMatrixZeroSpan(t *testing.T) {
	point := box(geometry.NewVector3(1, 2, 3), geometry.NewVector3(1, 2, 3))
	m := ModelMatrix(point)

	assert.InDelta(t, 2.0, m[0], 1e-6)
	assert.InDelta(t, 2.0, m[5], 1e-6)
	assert.InDelta(t, 2.0, m[10], 1e-6)

	origin := m.Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	assert.InDelta(t, 0, origin.X(), 1e-5)
	assert.InDelta(t, 0, origin.Y(), 1e-5)
	assert.InDelta(t, 0, origin.Z(), 1e-5)
}

func TestModelMatrixFitsUnitCube(t *testing.T) {
	b := box(geometry.NewVector3(10, 0, -4), geometry.NewVector3(20, 5, 4))
	m := ModelMatrix(b)

	lo := m.Mul4x1(mgl32.Vec4{10, 0, -4, 1})
	hi := m.Mul4x1(mgl32.Vec4{20, 5, 4, 1})
	assert.InDelta(t, -1, lo.X(), 1e-5)
	assert.InDelta(t, 1, hi.X(), 1e-5)
	assert.InDelta(t, -0.5, lo.Y(), 1e-5)
	assert.InDelta(t, 0.8, hi.Z(), 1e-5)
}

func TestEyePosition(t *testing.T) {
	tests := []struct {
		name      string
		elevation float32
		azimuth   float32
		distance  float32
		want      mgl32.Vec3
	}{
		{"front", 0, 0, 3, mgl32.Vec3{0, 0, 3}},
		{"right", 0, 90, 2, mgl32.Vec3{2, 0, 0}},
		{"top", 89, 0, 1, mgl32.Vec3{0, float32(math.Sin(89 * math.Pi / 180)), float32(math.Cos(89 * math.Pi / 180))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.Elevation, s.Azimuth, s.Distance = tt.elevation, tt.azimuth, tt.distance
			eye := EyePosition(s)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tt.want[i], eye[i], 1e-5)
			}
		})
	}
}

func TestEyePositionDistance(t *testing.T) {
	s := DefaultSettings()
	assert.InDelta(t, s.Distance, EyePosition(s).Len(), 1e-5)
}

func TestViewMatrixLooksAtOrigin(t *testing.T) {
	s := DefaultSettings()
	v := ViewMatrix(s)

	origin := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, origin.X(), 1e-5)
	assert.InDelta(t, 0, origin.Y(), 1e-5)
	assert.InDelta(t, -s.Distance, origin.Z(), 1e-5)
}

func TestPrepare(t *testing.T) {
	b := box(geometry.NewVector3(-1, -1, -1), geometry.NewVector3(1, 1, 1))
	tr := Prepare(b, DefaultSettings(), 1920, 1080)

	assert.Equal(t, EyePosition(DefaultSettings()), tr.Eye)
	assert.Equal(t, ProjectionMatrix(45, 1920.0/1080.0), tr.Projection)

	clip := tr.MVP().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	require.Greater(t, clip.W(), float32(0))
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)
}

func TestShadeIsTwoSided(t *testing.T) {
	s := DefaultSettings()
	base := Color{0.5, 0.5, 0.5, 1}
	eye := mgl32.Vec3{0, 0, 3}

	front := Shade(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, eye, base, s)
	back := Shade(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{}, eye, base, s)
	assert.Equal(t, front, back)
}

func TestShadeTerms(t *testing.T) {
	s := DefaultSettings()
	s.LightDir = [3]float32{0, 0, 1}
	s.Specular = 0
	base := Color{0.4, 0.2, 0.1, 0.5}

	lit := Shade(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 3}, base, s)
	k := s.Ambient + s.Diffuse
	assert.InDelta(t, k*0.4, lit[0], 1e-5)
	assert.InDelta(t, k*0.2, lit[1], 1e-5)
	assert.InDelta(t, k*0.1, lit[2], 1e-5)
	assert.Equal(t, float32(0.5), lit[3])

	grazing := Shade(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 3}, base, s)
	assert.InDelta(t, s.Ambient*0.4, grazing[0], 1e-5)
}

func TestShadeSpecularIsWhite(t *testing.T) {
	s := DefaultSettings()
	s.Ambient, s.Diffuse, s.Specular = 0, 0, 1
	s.LightDir = [3]float32{0, 0, 1}

	c := Shade(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 3}, Color{1, 0, 0, 1}, s)
	assert.InDelta(t, 1, c[0], 1e-5)
	assert.InDelta(t, 1, c[1], 1e-5)
	assert.InDelta(t, 1, c[2], 1e-5)
}

func TestFlat(t *testing.T) {
	edge := DefaultSettings().EdgeColor
	assert.Equal(t, edge, Flat(edge))

	s := DefaultSettings().EdgeLighting()
	c := Shade(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 3}, edge, s)
	for i := range c {
		assert.InDelta(t, edge[i], c[i], 1e-6)
	}
}

func TestClamped(t *testing.T) {
	s := Settings{
		Elevation:   120,
		Azimuth:     -400,
		Distance:    0,
		FOV:         200,
		Ambient:     2,
		Shininess:   0,
		EdgeWidth:   10,
		ExportWidth: 10,
		Supersample: 9,
		ModelColor:  Color{2, -1, 0.5, 1},
	}.Clamped()

	assert.Equal(t, float32(89), s.Elevation)
	assert.Equal(t, float32(-180), s.Azimuth)
	assert.Equal(t, float32(0.5), s.Distance)
	assert.Equal(t, float32(120), s.FOV)
	assert.Equal(t, float32(1), s.Ambient)
	assert.Equal(t, float32(1), s.Shininess)
	assert.Equal(t, float32(5), s.EdgeWidth)
	assert.Equal(t, 64, s.ExportWidth)
	assert.Equal(t, 64, s.ExportHeight)
	assert.Equal(t, 4, s.Supersample)
	assert.Equal(t, Color{1, 0, 0.5, 1}, s.ModelColor)

	assert.Equal(t, DefaultSettings(), DefaultSettings().Clamped())
}

func TestOrbitAndZoom(t *testing.T) {
	s := DefaultSettings()
	s.Orbit(10, 1000)
	assert.InDelta(t, -42, s.Azimuth, 1e-4)
	assert.Equal(t, float32(89), s.Elevation)

	s.Azimuth = 179
	s.Orbit(10, 0)
	assert.InDelta(t, -178, s.Azimuth, 1e-4)

	s.Zoom(1)
	assert.InDelta(t, 2.7, s.Distance, 1e-5)
	s.Zoom(-1000)
	assert.Equal(t, float32(20), s.Distance)

	s.ResetCamera()
	assert.Equal(t, DefaultSettings().Elevation, s.Elevation)
	assert.Equal(t, DefaultSettings().Distance, s.Distance)
}

func TestColorBytes(t *testing.T) {
	assert.Equal(t, [4]uint8{255, 0, 128, 255}, Color{1, -0.2, 0.5, 1.5}.Bytes())
}

func TestSetView(t *testing.T) {
	tests := []struct {
		view View
		eye  mgl32.Vec3
	}{
		{ViewFront, mgl32.Vec3{0, 0, 3}},
		{ViewBack, mgl32.Vec3{0, 0, -3}},
		{ViewRight, mgl32.Vec3{3, 0, 0}},
		{ViewLeft, mgl32.Vec3{-3, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			s := DefaultSettings()
			s.SetView(tt.view)
			eye := EyePosition(s)
			for i := range eye {
				assert.InDelta(t, tt.eye[i], eye[i], 1e-4)
			}
		})
	}

	s := DefaultSettings()
	s.Distance = 5
	s.SetView(ViewTop)
	assert.Equal(t, float32(MaxElevation), s.Elevation)
	assert.Equal(t, float32(5), s.Distance)
	assert.Greater(t, EyePosition(s).Y(), float32(4.9))

	s.SetView(ViewBottom)
	assert.Less(t, EyePosition(s).Y(), float32(-4.9))
}

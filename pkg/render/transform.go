package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/stlview/pkg/geometry"
)

// Clip planes of the perspective projection
const (
	NearPlane = 0.01
	FarPlane  = 100.0
)

// spanEpsilon is the smallest bounding box span used for normalization
const spanEpsilon = 1e-6

// Transforms bundles everything the shader needs for one frame
type Transforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
}

// MVP returns projection * view * model
func (t Transforms) MVP() mgl32.Mat4 {
	return t.Projection.Mul4(t.View).Mul4(t.Model)
}

// NormalizedSpan returns the largest bounding box extent, or 1 when the
// box is flat in every axis so that single points still render.
func NormalizedSpan(b geometry.BoundingBox) float32 {
	span := b.Span()
	if span < spanEpsilon {
		return 1.0
	}
	return float32(span)
}

// ModelMatrix centers the model at the origin and scales its largest
// extent to 2 units, i.e. into [-1,1].
func ModelMatrix(b geometry.BoundingBox) mgl32.Mat4 {
	scale := 2.0 / NormalizedSpan(b)
	center := b.Center()

	translate := mgl32.Vec3{
		-float32(center.X) * scale,
		-float32(center.Y) * scale,
		-float32(center.Z) * scale,
	}
	return mgl32.Translate3D(translate.X(), translate.Y(), translate.Z()).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// EyePosition places the camera on a sphere around the origin
func EyePosition(s Settings) mgl32.Vec3 {
	el := float64(mgl32.DegToRad(s.Elevation))
	az := float64(mgl32.DegToRad(s.Azimuth))
	d := float64(s.Distance)

	return mgl32.Vec3{
		float32(d * math.Cos(el) * math.Sin(az)),
		float32(d * math.Sin(el)),
		float32(d * math.Cos(el) * math.Cos(az)),
	}
}

// ViewMatrix looks from the eye position at the origin with +Y up
func ViewMatrix(s Settings) mgl32.Mat4 {
	return mgl32.LookAtV(EyePosition(s), mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix builds the perspective projection for a vertical fov in degrees
func ProjectionMatrix(fov, aspect float32) mgl32.Mat4 {
	if aspect <= 0 || math.IsNaN(float64(aspect)) {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, NearPlane, FarPlane)
}

// Prepare computes the transforms for drawing a model with the given
// bounds into a width x height target.
func Prepare(b geometry.BoundingBox, s Settings, width, height int) Transforms {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}

	return Transforms{
		Model:      ModelMatrix(b),
		View:       ViewMatrix(s),
		Projection: ProjectionMatrix(s.FOV, aspect),
		Eye:        EyePosition(s),
	}
}

package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
)

// EdgeDepthBias pulls wireframe edges toward the camera so they win the
// depth test against the faces they border.
const EdgeDepthBias = 2e-3

// Offscreen is a software render target. It draws a model exactly the way
// the interactive viewer does, independent of any window or GPU context.
type Offscreen struct{}

// NewOffscreen creates a software render target
func NewOffscreen() *Offscreen {
	return &Offscreen{}
}

// Name identifies the target in status messages
func (o *Offscreen) Name() string {
	return "software"
}

// Render draws m into a width x height target and returns the pixels as
// tightly packed RGBA, top row first. A nil or empty model yields the
// background color only.
func (o *Offscreen) Render(m *stl.Model, s render.Settings, width, height int) ([]byte, error) {
	img, err := o.RenderImage(m, s, width, height)
	if err != nil {
		return nil, err
	}
	return img.Pix, nil
}

// RenderImage is Render returning an image whose stride equals width*4
func (o *Offscreen) RenderImage(m *stl.Model, s render.Settings, width, height int) (*image.RGBA, error) {
	if err := CheckTarget(width, height); err != nil {
		return nil, err
	}

	factor := SupersampleFactor(s.Supersample, width, height)
	if factor == 1 {
		fb, err := Draw(m, s, width, height)
		if err != nil {
			return nil, err
		}
		return fb.Image(), nil
	}

	hi := s
	hi.EdgeWidth *= float32(factor)
	fb, err := Draw(m, hi, width*factor, height*factor)
	if err != nil {
		return nil, err
	}

	return Downsample(fb.Image(), width, height), nil
}

// Downsample scales src to width x height with a Catmull-Rom filter
func Downsample(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SupersampleFactor limits the requested factor so the enlarged target
// stays within MaxTargetSize.
func SupersampleFactor(requested, width, height int) int {
	factor := min(max(requested, 1), render.MaxSupersample)
	for factor > 1 && (width*factor > MaxTargetSize || height*factor > MaxTargetSize) {
		factor--
	}
	return factor
}

// Draw renders m into a new framebuffer: a solid pass with two-sided Phong
// shading followed by the optional wireframe overlay.
func Draw(m *stl.Model, s render.Settings, width, height int) (*Framebuffer, error) {
	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	fb.Clear(s.Background)

	if m == nil || m.IsEmpty() {
		return fb, nil
	}

	tr := render.Prepare(m.Bounds, s, width, height)
	mvp := tr.MVP()
	normalMatrix := render.NormalMatrix(tr.Model)

	screen := make([]screenVertex, 0, 4)
	for _, tri := range m.Triangles {
		poly := clipNear(project(tri.Vertices(), tr.Model, mvp))
		if len(poly) < 3 {
			continue
		}

		n := tri.Normal.Float32()
		normal := normalMatrix.Mul3x1(mgl32.Vec3(n))

		screen = screen[:0]
		for _, v := range poly {
			screen = append(screen, toScreen(v, width, height))
		}

		for i := 1; i+1 < len(screen); i++ {
			fillTriangle(fb, screen[0], screen[i], screen[i+1], func(x, y int, v screenVertex) {
				depth := v.depth()
				idx := y*fb.Width + x
				if depth >= fb.Depth[idx] {
					return
				}
				c := render.Shade(normal, v.worldPos(), tr.Eye, s.ModelColor, s)
				fb.set(x, y, depth, c.Bytes())
			})
		}
	}

	if s.Wireframe {
		drawWireframe(fb, m, s, tr.Model, mvp)
	}

	return fb, nil
}

// drawWireframe overlays every triangle edge in the edge color
func drawWireframe(fb *Framebuffer, m *stl.Model, s render.Settings, model, mvp mgl32.Mat4) {
	col := render.Flat(s.EdgeColor).Bytes()
	width := max(1, int(math.Round(float64(s.EdgeWidth))))

	for _, tri := range m.Triangles {
		verts := project(tri.Vertices(), model, mvp)
		for i := 0; i < 3; i++ {
			a, b, ok := clipSegment(verts[i], verts[(i+1)%3])
			if !ok {
				continue
			}
			drawLine(fb, toScreen(a, fb.Width, fb.Height), toScreen(b, fb.Width, fb.Height), width, EdgeDepthBias, col)
		}
	}
}

// project transforms triangle vertices into clip space
func project(verts [3]geometry.Vector3, model, mvp mgl32.Mat4) []clipVertex {
	out := make([]clipVertex, 3)
	for i, v := range verts {
		p := v.Float32()
		pos := mgl32.Vec4{p[0], p[1], p[2], 1}
		out[i] = clipVertex{
			clip:  mvp.Mul4x1(pos),
			world: model.Mul4x1(pos).Vec3(),
		}
	}
	return out
}

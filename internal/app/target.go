package app

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlview/pkg/raster"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
)

// gpuTarget renders exports with the same shader as the viewport into an
// offscreen framebuffer. It must be used from the main goroutine.
type gpuTarget struct {
	gpu *gpu
}

func (t *gpuTarget) Name() string {
	return "gpu"
}

// Render implements export.Target
func (t *gpuTarget) Render(m *stl.Model, s render.Settings, width, height int) ([]byte, error) {
	if err := raster.CheckTarget(width, height); err != nil {
		return nil, err
	}

	factor := raster.SupersampleFactor(s.Supersample, width, height)
	rw, rh := width*factor, height*factor
	s.EdgeWidth *= float32(factor)

	img, err := t.renderImage(m, s, rw, rh)
	if err != nil {
		return nil, err
	}
	if factor > 1 {
		img = raster.Downsample(img, width, height)
	}
	return img.Pix, nil
}

func (t *gpuTarget) renderImage(m *stl.Model, s render.Settings, width, height int) (*image.RGBA, error) {
	rt := rl.LoadRenderTexture(int32(width), int32(height))
	if !rl.IsRenderTextureValid(rt) {
		return nil, &raster.RenderTargetError{Width: width, Height: height, Reason: "framebuffer creation failed"}
	}
	defer rl.UnloadRenderTexture(rt)

	rl.BeginTextureMode(rt)
	rl.ClearBackground(toColor(s.Background))
	if m != nil && !m.IsEmpty() {
		if m == t.gpu.uploaded && t.gpu.hasMesh {
			t.gpu.drawMesh(t.gpu.mesh, m, s, width, height)
		} else {
			mesh := buildMesh(m)
			t.gpu.drawMesh(mesh, m, s, width, height)
			rl.DrawRenderBatchActive()
			rl.UnloadMesh(&mesh)
		}
	}
	rl.EndTextureMode()

	shot := rl.LoadImageFromTexture(rt.Texture)
	if shot == nil {
		return nil, &raster.RenderTargetError{Width: width, Height: height, Reason: "readback failed"}
	}
	defer rl.UnloadImage(shot)

	colors := rl.LoadImageColors(shot)
	if len(colors) == 0 {
		return nil, &raster.RenderTargetError{Width: width, Height: height, Reason: "readback failed"}
	}
	defer rl.UnloadImageColors(colors)
	if len(colors) != width*height {
		return nil, &raster.RenderTargetError{Width: width, Height: height, Reason: "readback size mismatch"}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, c := range colors {
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}

	// Framebuffer rows come back bottom-up
	raster.FlipRows(img.Pix, width, height)
	return img, nil
}

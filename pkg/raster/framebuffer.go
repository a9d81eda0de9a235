package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/philipparndt/stlview/pkg/render"
)

// MaxTargetSize is the largest supported width or height of a render target
const MaxTargetSize = 16384

// RenderTargetError reports an offscreen target that cannot be created
type RenderTargetError struct {
	Width  int
	Height int
	Reason string
}

func (e *RenderTargetError) Error() string {
	return fmt.Sprintf("render target %dx%d: %s", e.Width, e.Height, e.Reason)
}

// Framebuffer is an RGBA color buffer with a depth buffer attached.
// Rows are stored bottom-up: row 0 is the bottom of the image.
type Framebuffer struct {
	Width  int
	Height int
	Color  []byte    // 4 bytes per pixel
	Depth  []float64 // eye distance per pixel, +Inf when empty
}

// NewFramebuffer allocates a width x height framebuffer
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if err := CheckTarget(width, height); err != nil {
		return nil, err
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Color:  make([]byte, width*height*4),
		Depth:  make([]float64, width*height),
	}, nil
}

// CheckTarget validates the size of a render target
func CheckTarget(width, height int) error {
	if width <= 0 || height <= 0 {
		return &RenderTargetError{Width: width, Height: height, Reason: "size must be positive"}
	}
	if width > MaxTargetSize || height > MaxTargetSize {
		return &RenderTargetError{
			Width:  width,
			Height: height,
			Reason: fmt.Sprintf("exceeds maximum size %d", MaxTargetSize),
		}
	}
	return nil
}

// Clear fills the color buffer with bg and resets the depth buffer
func (fb *Framebuffer) Clear(bg render.Color) {
	c := bg.Bytes()
	for i := 0; i < len(fb.Color); i += 4 {
		copy(fb.Color[i:i+4], c[:])
	}
	inf := math.Inf(1)
	for i := range fb.Depth {
		fb.Depth[i] = inf
	}
}

// set writes a pixel if it passes the depth test
func (fb *Framebuffer) set(x, y int, depth float64, c [4]uint8) bool {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return false
	}
	idx := y*fb.Width + x
	if depth >= fb.Depth[idx] {
		return false
	}
	fb.Depth[idx] = depth
	copy(fb.Color[idx*4:idx*4+4], c[:])
	return true
}

// Pixels returns a copy of the color buffer with the top row first
func (fb *Framebuffer) Pixels() []byte {
	out := make([]byte, len(fb.Color))
	copy(out, fb.Color)
	FlipRows(out, fb.Width, fb.Height)
	return out
}

// Image returns the color buffer as a top-down image
func (fb *Framebuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pixels(),
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// FlipRows reverses the row order of a tightly packed RGBA buffer in place
func FlipRows(pix []byte, width, height int) {
	stride := width * 4
	row := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bottom := pix[(height-1-y)*stride : (height-y)*stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

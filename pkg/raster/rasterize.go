package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// clipVertex is a vertex in clip space together with its world position
type clipVertex struct {
	clip  mgl32.Vec4
	world mgl32.Vec3
}

// screenVertex is a vertex after the viewport transform. Attributes that
// must be interpolated perspective-correctly are stored divided by w.
type screenVertex struct {
	x, y   float64 // window coordinates, origin bottom left
	invW   float64
	wx, wy float64 // world position / w
	wz     float64
}

func lerpVertex(a, b screenVertex, t float64) screenVertex {
	return screenVertex{
		x:    a.x + t*(b.x-a.x),
		y:    a.y + t*(b.y-a.y),
		invW: a.invW + t*(b.invW-a.invW),
		wx:   a.wx + t*(b.wx-a.wx),
		wy:   a.wy + t*(b.wy-a.wy),
		wz:   a.wz + t*(b.wz-a.wz),
	}
}

// depth is the eye distance of the vertex
func (v screenVertex) depth() float64 {
	return 1 / v.invW
}

// worldPos recovers the interpolated world position
func (v screenVertex) worldPos() mgl32.Vec3 {
	w := 1 / v.invW
	return mgl32.Vec3{float32(v.wx * w), float32(v.wy * w), float32(v.wz * w)}
}

// nearDistance is the signed distance of a clip space point to the near plane
func nearDistance(v mgl32.Vec4) float32 {
	return v.Z() + v.W()
}

func lerpClip(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		clip:  a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
		world: a.world.Add(b.world.Sub(a.world).Mul(t)),
	}
}

// clipNear cuts a polygon against the near plane. A triangle yields up to
// four vertices.
func clipNear(poly []clipVertex) []clipVertex {
	out := make([]clipVertex, 0, len(poly)+1)
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		da := nearDistance(a.clip)
		db := nearDistance(b.clip)

		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpClip(a, b, da/(da-db)))
		}
	}
	return out
}

// toScreen applies the perspective divide and viewport transform
func toScreen(v clipVertex, width, height int) screenVertex {
	w := float64(v.clip.W())
	invW := 1 / w
	return screenVertex{
		x:    (float64(v.clip.X())*invW + 1) * 0.5 * float64(width),
		y:    (float64(v.clip.Y())*invW + 1) * 0.5 * float64(height),
		invW: invW,
		wx:   float64(v.world.X()) * invW,
		wy:   float64(v.world.Y()) * invW,
		wz:   float64(v.world.Z()) * invW,
	}
}

// fillTriangle scan converts a triangle, calling shade for every pixel
// center it covers. The callback does the depth test.
func fillTriangle(fb *Framebuffer, v0, v1, v2 screenVertex, shade func(x, y int, v screenVertex)) {
	// Sort vertices by y
	if v0.y > v1.y {
		v0, v1 = v1, v0
	}
	if v1.y > v2.y {
		v1, v2 = v2, v1
	}
	if v0.y > v1.y {
		v0, v1 = v1, v0
	}

	if v2.y == v0.y {
		return
	}

	yStart := max(0, int(math.Ceil(v0.y-0.5)))
	yEnd := min(fb.Height-1, int(math.Ceil(v2.y-0.5))-1)

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y) + 0.5

		// Long edge 0-2 and the short edge that spans this row
		a := lerpVertex(v0, v2, (fy-v0.y)/(v2.y-v0.y))
		var b screenVertex
		if fy < v1.y {
			if v1.y == v0.y {
				continue
			}
			b = lerpVertex(v0, v1, (fy-v0.y)/(v1.y-v0.y))
		} else {
			if v2.y == v1.y {
				continue
			}
			b = lerpVertex(v1, v2, (fy-v1.y)/(v2.y-v1.y))
		}

		if a.x > b.x {
			a, b = b, a
		}
		if b.x == a.x {
			continue
		}

		xStart := max(0, int(math.Ceil(a.x-0.5)))
		xEnd := min(fb.Width-1, int(math.Ceil(b.x-0.5))-1)

		for x := xStart; x <= xEnd; x++ {
			t := (float64(x) + 0.5 - a.x) / (b.x - a.x)
			shade(x, y, lerpVertex(a, b, t))
		}
	}
}

// clipSegment cuts a line segment against the near plane
func clipSegment(a, b clipVertex) (clipVertex, clipVertex, bool) {
	da := nearDistance(a.clip)
	db := nearDistance(b.clip)
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = lerpClip(a, b, da/(da-db))
	case db < 0:
		b = lerpClip(a, b, da/(da-db))
	}
	return a, b, true
}

// drawLine draws a depth tested line using Bresenham's algorithm.
// Each step stamps a square brush of the given width.
func drawLine(fb *Framebuffer, p1, p2 screenVertex, width int, bias float64, col [4]uint8) {
	// Keep the endpoints inside a sane range before converting to int
	limit := float64(2 * MaxTargetSize)
	x1 := int(math.Floor(clampFloat(p1.x, -limit, limit)))
	y1 := int(math.Floor(clampFloat(p1.y, -limit, limit)))
	x2 := int(math.Floor(clampFloat(p2.x, -limit, limit)))
	y2 := int(math.Floor(clampFloat(p2.y, -limit, limit)))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	steps := max(dx, dy)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	lo := -(width - 1) / 2
	hi := width / 2

	err := dx - dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		depth := lerpVertex(p1, p2, t).depth() - bias

		for oy := lo; oy <= hi; oy++ {
			for ox := lo; ox <= hi; ox++ {
				fb.set(x1+ox, y1+oy, depth, col)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

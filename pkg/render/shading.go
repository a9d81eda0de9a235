package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shade evaluates the two-sided Phong model for one surface point in
// world space. Back faces are lit like front faces, so meshes with
// inconsistent winding still look solid. Alpha is taken from base.
func Shade(normal, fragPos, eye mgl32.Vec3, base Color, s Settings) Color {
	n := safeNormalize(normal)
	l := safeNormalize(mgl32.Vec3(s.LightDir))

	diff := abs32(n.Dot(l))

	viewDir := safeNormalize(eye.Sub(fragPos))
	half := safeNormalize(l.Add(viewDir))
	spec := float32(math.Pow(float64(abs32(n.Dot(half))), float64(s.Shininess)))

	var out Color
	for i := 0; i < 3; i++ {
		c := s.Ambient*base[i] + s.Diffuse*diff*base[i] + s.Specular*spec
		out[i] = clamp(c, 0, 1)
	}
	out[3] = base[3]
	return out
}

// Flat is the color of wireframe edges: full ambient, no diffuse or
// specular contribution.
func Flat(base Color) Color {
	return base.clamped()
}

// EdgeLighting returns s with the lighting terms used for the wireframe pass
func (s Settings) EdgeLighting() Settings {
	s.Ambient = 1
	s.Diffuse = 0
	s.Specular = 0
	return s
}

// NormalMatrix transforms normals for a model matrix
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

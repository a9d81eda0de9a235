package geometry

// NormalEpsilon is the threshold below which a normal is treated as missing,
// and below which a recomputed face normal is treated as degenerate.
const NormalEpsilon = 1e-6

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// Vertices returns the three corners in winding order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// FaceNormal returns the unnormalized cross product (V2-V1) x (V3-V1)
func (t Triangle) FaceNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1))
}

// NormalRepair describes what RepairNormal did to a triangle
type NormalRepair int

const (
	// NormalKept means the stored normal was usable
	NormalKept NormalRepair = iota
	// NormalRecomputed means a missing normal was replaced by the face normal
	NormalRecomputed
	// NormalDegenerate means the normal was missing and the vertices are colinear
	NormalDegenerate
)

// RepairNormal replaces a missing (near zero) normal with the normalized face
// normal. Colinear triangles keep their original normal.
func (t Triangle) RepairNormal() (Triangle, NormalRepair) {
	if t.Normal.LengthSquared() >= NormalEpsilon {
		return t, NormalKept
	}

	face := t.FaceNormal()
	length := face.Length()
	if length <= NormalEpsilon {
		return t, NormalDegenerate
	}

	t.Normal = face.Mul(1.0 / length)
	return t, NormalRecomputed
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.FaceNormal().Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

package stl

import (
	"github.com/philipparndt/stlview/pkg/geometry"
)

// FloatsPerVertex is the stride of Model.VertexData: normal xyz then position xyz
const FloatsPerVertex = 6

// Stats records what the parser had to fix or skip
type Stats struct {
	RepairedNormals     int // zero normals replaced by the face normal
	DegenerateTriangles int // zero normals left in place because the vertices are colinear
	IgnoredVertices     int // ASCII vertex lines beyond the third of a facet
}

// Model represents a complete STL model together with the data derived from
// it for rendering. Derived fields are rebuilt wholesale, never patched.
type Model struct {
	Name      string // solid name or binary header text
	Filename  string // base name of the source file
	Path      string // absolute path of the source file
	Format    Format
	Triangles []geometry.Triangle

	Bounds      geometry.BoundingBox
	VertexData  []float32 // nx,ny,nz, px,py,pz per vertex, three vertices per triangle
	VertexCount int

	Stats Stats
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
		Bounds:    geometry.NewBoundingBox(),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty reports whether the model has no triangles
func (m *Model) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// RepairNormals recomputes missing facet normals from the vertex winding
func (m *Model) RepairNormals() {
	m.Stats.RepairedNormals = 0
	m.Stats.DegenerateTriangles = 0
	for i, triangle := range m.Triangles {
		repaired, result := triangle.RepairNormal()
		switch result {
		case geometry.NormalRecomputed:
			m.Triangles[i] = repaired
			m.Stats.RepairedNormals++
		case geometry.NormalDegenerate:
			m.Stats.DegenerateTriangles++
		}
	}
}

// ComputeBounds recalculates the bounding box in a single pass over all
// vertices. It does nothing for an empty model, leaving the sentinel box.
func (m *Model) ComputeBounds() {
	if len(m.Triangles) == 0 {
		return
	}

	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	m.Bounds = bbox
}

// BuildVertexData expands every triangle into three independent vertices.
// Vertices are never shared so each face keeps its own flat normal.
func (m *Model) BuildVertexData() {
	m.VertexCount = len(m.Triangles) * 3
	data := make([]float32, 0, m.VertexCount*FloatsPerVertex)

	for _, triangle := range m.Triangles {
		n := triangle.Normal.Float32()
		for _, v := range triangle.Vertices() {
			p := v.Float32()
			data = append(data, n[0], n[1], n[2], p[0], p[1], p[2])
		}
	}
	m.VertexData = data
}

// Prepare repairs normals and rebuilds every derived field
func (m *Model) Prepare() {
	m.RepairNormals()
	m.ComputeBounds()
	m.BuildVertexData()
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

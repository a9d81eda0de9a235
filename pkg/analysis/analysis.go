package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/stl"
)

// EdgeInfo describes one triangle edge
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// Report summarizes a model for the info command and the viewer panel
type Report struct {
	Name          string
	Filename      string
	Format        stl.Format
	TriangleCount int
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Center        geometry.Vector3
	Span          float64
	Diagonal      float64
	SurfaceArea   float64
	Volume        float64 // enclosed volume, meaningful for closed meshes only
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Stats         stl.Stats
	AllEdges      []EdgeInfo
}

// Analyze computes the report for a prepared model
func Analyze(model *stl.Model) *Report {
	report := &Report{
		Name:          model.Name,
		Filename:      model.Filename,
		Format:        model.Format,
		TriangleCount: model.TriangleCount(),
		BoundingBox:   model.Bounds,
		SurfaceArea:   model.SurfaceArea(),
		Volume:        math.Abs(SignedVolume(model)),
		Stats:         model.Stats,
		AllEdges:      make([]EdgeInfo, 0, model.TriangleCount()*3),
	}

	if !model.IsEmpty() {
		report.Dimensions = model.Bounds.Size()
		report.Center = model.Bounds.Center()
		report.Span = model.Bounds.Span()
		report.Diagonal = model.Bounds.Diagonal()
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for i, triangle := range model.Triangles {
		edges := [3][2]geometry.Vector3{
			{triangle.V1, triangle.V2},
			{triangle.V2, triangle.V3},
			{triangle.V3, triangle.V1},
		}

		for _, edge := range edges {
			length := edge[0].Distance(edge[1])
			report.AllEdges = append(report.AllEdges, EdgeInfo{
				Start:      edge[0],
				End:        edge[1],
				Length:     length,
				TriangleID: i,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	report.EdgeCount = len(report.AllEdges)
	if report.EdgeCount > 0 {
		report.MinEdgeLength = minLength
		report.MaxEdgeLength = maxLength
		report.AvgEdgeLength = totalLength / float64(report.EdgeCount)
	}

	return report
}

// SignedVolume sums the signed tetrahedra spanned by each facet and the
// origin. The sign follows the winding of the mesh.
func SignedVolume(model *stl.Model) float64 {
	volume := 0.0
	for _, t := range model.Triangles {
		volume += t.V1.Dot(t.V2.Cross(t.V3)) / 6.0
	}
	return volume
}

// LongestEdges returns the n longest edges
func (r *Report) LongestEdges(n int) []EdgeInfo {
	return r.sortedEdges(n, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// ShortestEdges returns the n shortest edges
func (r *Report) ShortestEdges(n int) []EdgeInfo {
	return r.sortedEdges(n, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func (r *Report) sortedEdges(n int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(r.AllEdges))
	copy(edges, r.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	return edges[:max(0, min(n, len(edges)))]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

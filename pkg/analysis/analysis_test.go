package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/stl"
)

// tetrahedron returns a closed mesh with outward winding
func tetrahedron() *stl.Model {
	o := geometry.NewVector3(0, 0, 0)
	x := geometry.NewVector3(1, 0, 0)
	y := geometry.NewVector3(0, 1, 0)
	z := geometry.NewVector3(0, 0, 1)

	m := stl.NewModel("tetra")
	for _, f := range [][3]geometry.Vector3{
		{o, y, x},
		{o, x, z},
		{o, z, y},
		{x, y, z},
	} {
		m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, f[0], f[1], f[2]))
	}
	m.Prepare()
	return m
}

func TestAnalyze(t *testing.T) {
	report := Analyze(tetrahedron())

	if report.TriangleCount != 4 {
		t.Errorf("TriangleCount: expected 4, got %d", report.TriangleCount)
	}
	if report.EdgeCount != 12 {
		t.Errorf("EdgeCount: expected 12, got %d", report.EdgeCount)
	}
	if math.Abs(report.Volume-1.0/6.0) > 1e-9 {
		t.Errorf("Volume: expected 1/6, got %v", report.Volume)
	}
	if report.Span != 1 {
		t.Errorf("Span: expected 1, got %v", report.Span)
	}
	if math.Abs(report.Diagonal-math.Sqrt(3)) > 1e-9 {
		t.Errorf("Diagonal: expected sqrt(3), got %v", report.Diagonal)
	}
	if report.MinEdgeLength != 1 {
		t.Errorf("MinEdgeLength: expected 1, got %v", report.MinEdgeLength)
	}
	if math.Abs(report.MaxEdgeLength-math.Sqrt2) > 1e-9 {
		t.Errorf("MaxEdgeLength: expected sqrt(2), got %v", report.MaxEdgeLength)
	}
	if report.Stats.RepairedNormals != 4 {
		t.Errorf("RepairedNormals: expected 4, got %d", report.Stats.RepairedNormals)
	}
}

func TestSignedVolumeFollowsWinding(t *testing.T) {
	m := tetrahedron()
	if v := SignedVolume(m); v <= 0 {
		t.Errorf("expected positive volume for outward winding, got %v", v)
	}

	for i, tri := range m.Triangles {
		m.Triangles[i].V2, m.Triangles[i].V3 = tri.V3, tri.V2
	}
	if v := SignedVolume(m); v >= 0 {
		t.Errorf("expected negative volume for inward winding, got %v", v)
	}
}

func TestLongestAndShortestEdges(t *testing.T) {
	report := Analyze(tetrahedron())

	longest := report.LongestEdges(3)
	if len(longest) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(longest))
	}
	for _, e := range longest {
		if math.Abs(e.Length-math.Sqrt2) > 1e-9 {
			t.Errorf("expected diagonal edge, got length %v", e.Length)
		}
	}

	shortest := report.ShortestEdges(100)
	if len(shortest) != 12 {
		t.Errorf("expected all 12 edges, got %d", len(shortest))
	}
	if shortest[0].Length != 1 {
		t.Errorf("expected unit edge first, got %v", shortest[0].Length)
	}

	if got := report.LongestEdges(-1); len(got) != 0 {
		t.Errorf("expected no edges for negative count, got %d", len(got))
	}
}

func TestAnalyzeEmptyModel(t *testing.T) {
	report := Analyze(stl.NewModel("empty"))
	if report.EdgeCount != 0 || report.MinEdgeLength != 0 || report.Span != 0 {
		t.Errorf("expected zero report, got %+v", report)
	}
}

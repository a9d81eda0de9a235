package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestRepairNormalRecomputesMissingNormal(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
		NewVector3(0, 5, 0),
	)

	repaired, result := tri.RepairNormal()
	if result != NormalRecomputed {
		t.Fatalf("expected NormalRecomputed, got %v", result)
	}

	if math.Abs(repaired.Normal.Length()-1) > 1e-9 {
		t.Errorf("expected unit normal, got length %v", repaired.Normal.Length())
	}

	expected := tri.V2.Sub(tri.V1).Cross(tri.V3.Sub(tri.V1)).Normalize()
	if repaired.Normal.Distance(expected) > 1e-9 {
		t.Errorf("expected %v, got %v", expected, repaired.Normal)
	}
}

func TestRepairNormalKeepsColinearTriangle(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 1, 1),
		NewVector3(2, 2, 2),
	)

	repaired, result := tri.RepairNormal()
	if result != NormalDegenerate {
		t.Fatalf("expected NormalDegenerate, got %v", result)
	}
	if repaired.Normal != (Vector3{}) {
		t.Errorf("expected zero normal to be kept, got %v", repaired.Normal)
	}
}

func TestRepairNormalKeepsValidNormal(t *testing.T) {
	// The stored normal wins even if it disagrees with the winding.
	tri := NewTriangle(
		NewVector3(0, 0, -1),
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)

	repaired, result := tri.RepairNormal()
	if result != NormalKept {
		t.Fatalf("expected NormalKept, got %v", result)
	}
	if repaired != tri {
		t.Errorf("expected triangle to be unchanged, got %v", repaired)
	}
}

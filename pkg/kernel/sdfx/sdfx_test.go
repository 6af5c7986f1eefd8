package sdfx

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/halver/marblebox/pkg/kernel"
)

func testKernel() *Kernel {
	k := New()
	k.MeshCells = 64
	return k
}

func mustBox(t *testing.T, k *Kernel, size r3.Vec) kernel.Solid {
	t.Helper()
	box, err := k.Box(size, kernel.RoundNone, 0)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	return box
}

func TestBox(t *testing.T) {
	k := testKernel()
	box := mustBox(t, k, r3.Vec{X: 100, Y: 50, Z: 25})
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestBoxContains(t *testing.T) {
	k := testKernel()
	box := mustBox(t, k, r3.Vec{X: 100, Y: 50, Z: 25})
	if !box.Contains(r3.Vec{}) {
		t.Error("center should be inside")
	}
	if !box.Contains(r3.Vec{X: 49, Y: 24, Z: 12}) {
		t.Error("near corner should be inside")
	}
	if box.Contains(r3.Vec{X: 51}) {
		t.Error("past the face should be outside")
	}
}

func TestBoxRejectsBadSize(t *testing.T) {
	k := testKernel()
	if _, err := k.Box(r3.Vec{X: 10, Y: -5, Z: 10}, kernel.RoundNone, 0); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestBoxRounding(t *testing.T) {
	k := testKernel()
	size := r3.Vec{X: 20, Y: 20, Z: 20}
	cases := []struct {
		name   string
		style  kernel.RoundStyle
		round  float64
		inside r3.Vec // sharp for this style, stays inside
		cut    r3.Vec // rounded away by this style
	}{
		{
			name:   "vertical edges",
			style:  kernel.RoundEdgesZ,
			round:  4,
			inside: r3.Vec{X: 9.9, Y: 0, Z: 9.9},
			cut:    r3.Vec{X: 9.9, Y: 9.9, Z: 0},
		},
		{
			name:   "travel edges",
			style:  kernel.RoundEdgesY,
			round:  4,
			inside: r3.Vec{X: 9.9, Y: 9.9, Z: 0},
			cut:    r3.Vec{X: 9.9, Y: 0, Z: 9.9},
		},
		{
			// Bottom face edges stay sharp, everything else rounds.
			name:   "all but bottom",
			style:  kernel.RoundTop,
			round:  4,
			inside: r3.Vec{X: 9.9, Y: 0, Z: -9.9},
			cut:    r3.Vec{X: 9.9, Y: 9.9, Z: 9.9},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			box, err := k.Box(size, c.style, c.round)
			if err != nil {
				t.Fatalf("Box failed: %v", err)
			}
			if !box.Contains(c.inside) {
				t.Errorf("%v should stay inside with %s rounding", c.inside, c.style)
			}
			if box.Contains(c.cut) {
				t.Errorf("%v should be rounded away with %s rounding", c.cut, c.style)
			}
		})
	}
}

func TestBoxRoundingInfeasible(t *testing.T) {
	k := testKernel()
	size := r3.Vec{X: 20, Y: 20, Z: 20}
	cases := []struct {
		name  string
		style kernel.RoundStyle
		round float64
	}{
		{"radius exceeds half width", kernel.RoundEdgesZ, 10},
		{"radius exceeds half height", kernel.RoundEdgesY, 10.5},
		{"radius exceeds height", kernel.RoundTop, 21},
		{"zero radius", kernel.RoundEdgesZ, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := k.Box(size, c.style, c.round)
			if !errors.Is(err, kernel.ErrFilletInfeasible) {
				t.Fatalf("expected ErrFilletInfeasible, got %v", err)
			}
		})
	}
}

func TestSphere(t *testing.T) {
	k := testKernel()
	sphere, err := k.Sphere(10)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	if !sphere.Contains(r3.Vec{X: 9.9}) {
		t.Error("point just inside the radius should be inside")
	}
	if sphere.Contains(r3.Vec{X: 10.1}) {
		t.Error("point past the radius should be outside")
	}
	mesh, err := k.ToMesh(sphere)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("sphere mesh is empty")
	}
}

func TestCylinder(t *testing.T) {
	k := testKernel()
	cyl, err := k.Cylinder(50, 10)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	if !cyl.Contains(r3.Vec{Z: 24}) {
		t.Error("point on the axis should be inside")
	}
	if cyl.Contains(r3.Vec{X: 11}) {
		t.Error("point past the radius should be outside")
	}
	if cyl.Contains(r3.Vec{Z: 26}) {
		t.Error("point past the cap should be outside")
	}
}

func TestTube(t *testing.T) {
	k := testKernel()
	centerline := []r3.Vec{{}, {Y: 50}, {Y: 50, Z: 50}}
	tube, err := k.Tube(centerline, 5)
	if err != nil {
		t.Fatalf("Tube failed: %v", err)
	}

	for i, pt := range centerline {
		if !tube.Contains(pt) {
			t.Errorf("centerline point %d should be inside the tube", i)
		}
	}
	// The corner between segments is filled, not pinched.
	if !tube.Contains(r3.Vec{Y: 50, Z: 3}) {
		t.Error("point near the corner should be inside")
	}
	if tube.Contains(r3.Vec{Y: 25, Z: 6}) {
		t.Error("point beyond the radius should be outside")
	}

	min, max := tube.BoundingBox()
	wantMin := r3.Vec{X: -5, Y: -5, Z: -5}
	wantMax := r3.Vec{X: 5, Y: 55, Z: 55}
	if r3.Norm(r3.Sub(min, wantMin)) > 1e-9 || r3.Norm(r3.Sub(max, wantMax)) > 1e-9 {
		t.Errorf("tube bounds = %v..%v, want %v..%v", min, max, wantMin, wantMax)
	}
}

func TestTubeRejectsDegenerateInput(t *testing.T) {
	k := testKernel()
	if _, err := k.Tube([]r3.Vec{{X: 1}}, 5); err == nil {
		t.Error("expected error for single-point centerline")
	}
	if _, err := k.Tube([]r3.Vec{{}, {Y: 10}}, 0); err == nil {
		t.Error("expected error for zero radius")
	}
	if _, err := k.Tube([]r3.Vec{{}, {Y: 10}, {Y: 10}}, 5); err == nil {
		t.Error("expected error for zero-length segment")
	}
}

func TestDifference(t *testing.T) {
	k := testKernel()
	box := mustBox(t, k, r3.Vec{X: 100, Y: 100, Z: 100})
	cyl, err := k.Cylinder(120, 20)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	diff := k.Difference(box, cyl)

	if diff.Contains(r3.Vec{}) {
		t.Error("center should be carved out")
	}
	if !diff.Contains(r3.Vec{X: 45}) {
		t.Error("material outside the hole should remain")
	}
}

func TestUnion(t *testing.T) {
	k := testKernel()
	box1 := mustBox(t, k, r3.Vec{X: 50, Y: 50, Z: 50})
	box2 := k.Translate(mustBox(t, k, r3.Vec{X: 50, Y: 50, Z: 50}), r3.Vec{X: 30})
	u := k.Union(box1, box2)

	if !u.Contains(r3.Vec{X: -20}) || !u.Contains(r3.Vec{X: 50}) {
		t.Error("union should contain both halves")
	}
	min, max := u.BoundingBox()
	if min.X > -25+1e-9 || max.X < 55-1e-9 {
		t.Errorf("union bounds = %v..%v, want X span -25..55", min, max)
	}
}

func TestIntersection(t *testing.T) {
	k := testKernel()
	box1 := mustBox(t, k, r3.Vec{X: 100, Y: 100, Z: 100})
	box2 := k.Translate(mustBox(t, k, r3.Vec{X: 100, Y: 100, Z: 100}), r3.Vec{X: 50})
	inter := k.Intersection(box1, box2)

	if !inter.Contains(r3.Vec{X: 25}) {
		t.Error("overlap region should be inside")
	}
	if inter.Contains(r3.Vec{X: -25}) {
		t.Error("point only in the first box should be outside")
	}
}

func TestTranslate(t *testing.T) {
	k := testKernel()
	box := mustBox(t, k, r3.Vec{X: 10, Y: 10, Z: 10})
	translated := k.Translate(box, r3.Vec{X: 100, Y: 200, Z: 300})

	min, max := translated.BoundingBox()

	const tol = 0.5
	wantMin := r3.Vec{X: 95, Y: 195, Z: 295}
	wantMax := r3.Vec{X: 105, Y: 205, Z: 305}
	if r3.Norm(r3.Sub(min, wantMin)) > tol || r3.Norm(r3.Sub(max, wantMax)) > tol {
		t.Errorf("bounds = %v..%v, want ~%v..%v", min, max, wantMin, wantMax)
	}
	if !translated.Contains(r3.Vec{X: 100, Y: 200, Z: 300}) {
		t.Error("translated center should be inside")
	}
}

func TestBoundingBox(t *testing.T) {
	k := testKernel()
	box := mustBox(t, k, r3.Vec{X: 100, Y: 50, Z: 25})
	min, max := box.BoundingBox()

	const tol = 0.01
	wantMin := r3.Vec{X: -50, Y: -25, Z: -12.5}
	wantMax := r3.Vec{X: 50, Y: 25, Z: 12.5}
	if r3.Norm(r3.Sub(min, wantMin)) > tol || r3.Norm(r3.Sub(max, wantMax)) > tol {
		t.Errorf("bounds = %v..%v, want %v..%v", min, max, wantMin, wantMax)
	}
}

func TestRotate(t *testing.T) {
	k := testKernel()
	box := mustBox(t, k, r3.Vec{X: 100, Y: 10, Z: 10})

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	const tol = 1.0
	if xExtent := max.X - min.X; math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if yExtent := max.Y - min.Y; math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
	if !rotated.Contains(r3.Vec{Y: 45}) {
		t.Error("rotated box should contain points along Y")
	}
}

func TestRotateCylinderOntoTravelAxis(t *testing.T) {
	k := testKernel()
	cyl, err := k.Cylinder(40, 5)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	// 90 degrees around X maps the Z axis onto Y.
	rotated := k.Rotate(cyl, 90, 0, 0)
	if !rotated.Contains(r3.Vec{Y: 19}) || !rotated.Contains(r3.Vec{Y: -19}) {
		t.Error("rotated cylinder should run along the Y axis")
	}
	if rotated.Contains(r3.Vec{Z: 19}) {
		t.Error("rotated cylinder should no longer run along the Z axis")
	}
}

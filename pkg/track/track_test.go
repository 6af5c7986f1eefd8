package track

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/halver/marblebox/pkg/kernel/sdfx"
	"github.com/halver/marblebox/pkg/params"
	"github.com/halver/marblebox/pkg/path"
)

func testKernel() *sdfx.Kernel {
	k := sdfx.New()
	k.MeshCells = 48
	return k
}

func TestBuildDefaults(t *testing.T) {
	result, err := Build(params.Default(), testKernel())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if result.Housing == nil || result.Tube == nil {
		t.Fatal("result is missing solids")
	}
	if got := len(result.Path.Segments); got != 6 {
		t.Errorf("path segment count = %d, want 6", got)
	}
	if result.Derived != params.Derive(params.Default()) {
		t.Error("result carries different derived dimensions than the input parameters")
	}
	// Default fillet radius fits every housing edge.
	if skipped := result.Fillets.Skipped(); len(skipped) != 0 {
		t.Errorf("no fillet should be skipped with defaults, got %v", skipped)
	}
	if len(result.Fillets) != 2 {
		t.Errorf("expected one applied fillet per housing box, got %v", result.Fillets)
	}
}

func TestBuildCarvesCavity(t *testing.T) {
	k := testKernel()
	result, err := Build(params.Default(), k)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Every centerline sample lies inside the tube and its bounding
	// box, and is carved out of the housing.
	min, max := result.Tube.BoundingBox()
	for i, pt := range result.Path.Polyline(path.DefaultTurnSamples) {
		if !result.Tube.Contains(pt) {
			t.Fatalf("centerline sample %d is outside the tube: %v", i, pt)
		}
		if pt.X < min.X || pt.X > max.X || pt.Y < min.Y || pt.Y > max.Y ||
			pt.Z < min.Z || pt.Z > max.Z {
			t.Fatalf("centerline sample %d is outside the tube bounds: %v", i, pt)
		}
		if result.Housing.Contains(pt) {
			t.Fatalf("centerline sample %d is still solid in the housing: %v", i, pt)
		}
	}
}

func TestBuildHousingBounds(t *testing.T) {
	result, err := Build(params.Default(), testKernel())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	d := result.Derived

	_, tubeMax := result.Tube.BoundingBox()
	hMin, hMax := result.Housing.BoundingBox()

	// The base extends below the channel floor.
	if wantFloor := -1.5 * d.TubeRadius; hMin.Z > wantFloor+1e-6 {
		t.Errorf("housing floor at %g, want %g", hMin.Z, wantFloor)
	}
	// The upper box stops short of the tube's top, leaving the outlet
	// channel open.
	if hMax.Z >= tubeMax.Z {
		t.Errorf("housing top %g should sit below the tube top %g", hMax.Z, tubeMax.Z)
	}
	if hMax.Z-hMin.Z <= 0 || hMax.Y-hMin.Y <= 0 || hMax.X-hMin.X <= 0 {
		t.Errorf("degenerate housing bounds %v..%v", hMin, hMax)
	}
}

func TestBuildWindowsCutMaterial(t *testing.T) {
	k := testKernel()

	withWindows, err := Build(params.Default(), k)
	if err != nil {
		t.Fatalf("Build with windows failed: %v", err)
	}

	p := params.Default()
	p.EnableWindows = false
	withoutWindows, err := Build(p, k)
	if err != nil {
		t.Fatalf("Build without windows failed: %v", err)
	}

	d := withWindows.Derived
	boxStart := d.OutletLength
	boxEnd := d.OutletLength + d.Layer1Len + d.TurnRadius
	// A point in the side wall at the upper window's center height.
	probe := r3.Vec{
		X: 1.05 * d.TubeRadius,
		Y: (boxStart + boxEnd) / 2,
		Z: d.TotalHeight() * 5 / 10,
	}

	if !withoutWindows.Housing.Contains(probe) {
		t.Fatalf("wall probe %v should be solid without windows", probe)
	}
	if withWindows.Housing.Contains(probe) {
		t.Fatalf("wall probe %v should be cut by the upper window", probe)
	}
}

func TestBuildOversizedFilletDegrades(t *testing.T) {
	p := params.Default()
	p.FilletRadius = 200 // larger than any housing edge

	result, err := Build(p, testKernel())
	if err != nil {
		t.Fatalf("Build should degrade to sharp boxes, got %v", err)
	}
	skipped := result.Fillets.Skipped()
	if len(skipped) == 0 {
		t.Fatal("oversized fillet should be reported as skipped")
	}
	for _, a := range skipped {
		if a.Err == nil {
			t.Errorf("skipped attempt %v carries no error", a)
		}
		if a.Radius != p.FilletRadius {
			t.Errorf("skipped attempt radius = %g, want %g", a.Radius, p.FilletRadius)
		}
	}
	// The ladder tries upper RoundTop, upper RoundEdgesZ, base
	// RoundEdgesZ, all infeasible.
	if len(skipped) != 3 {
		t.Errorf("skipped attempt count = %d, want 3: %v", len(skipped), skipped)
	}
}

func TestBuildFilletDisabled(t *testing.T) {
	p := params.Default()
	p.EnableFillet = false

	result, err := Build(p, testKernel())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(result.Fillets) != 0 {
		t.Errorf("no rounding should be attempted with fillets disabled, got %v", result.Fillets)
	}
}

func TestBuildInvalidParams(t *testing.T) {
	p := params.Default()
	p.MarbleRadius = -1

	_, err := Build(p, testKernel())
	if err == nil {
		t.Fatal("expected an error for invalid parameters")
	}
	if !strings.Contains(err.Error(), "invalid parameters") {
		t.Errorf("error should name the failing stage: %v", err)
	}
	if !strings.Contains(err.Error(), "MARBLE_RADIUS") {
		t.Errorf("error should carry the validation code: %v", err)
	}
}

func TestTubeCapsRoundTheOpenings(t *testing.T) {
	k := testKernel()
	d := params.Derive(params.Default())
	pa := path.Build(d)

	tube, err := Tube(k, pa, d.TubeRadius)
	if err != nil {
		t.Fatalf("Tube failed: %v", err)
	}

	// The entry cap dips below the path start.
	below := r3.Add(pa.Start(), r3.Vec{Z: -1.2 * d.TubeRadius})
	if !tube.Contains(below) {
		t.Errorf("entry cap should extend below the start, %v is outside", below)
	}
	// The exit cap is centered on the path end.
	past := r3.Add(pa.End(), r3.Vec{Y: 0.9 * d.TubeRadius})
	if !tube.Contains(past) {
		t.Errorf("exit cap should round the end, %v is outside", past)
	}
}

func TestBuildMeshIsClosed(t *testing.T) {
	if testing.Short() {
		t.Skip("meshing the full housing is slow")
	}
	k := testKernel()
	result, err := Build(params.Default(), k)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mesh, err := k.ToMesh(result.Housing)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}

	// Count directed edges between quantized vertices. In a closed
	// surface every undirected edge is shared by exactly two triangles.
	quantize := func(v [3]float32) [3]int64 {
		const s = 1e4
		return [3]int64{int64(v[0] * s), int64(v[1] * s), int64(v[2] * s)}
	}
	less := func(a, b [3]int64) bool {
		for i := range a {
			if a[i] != b[i] {
				return a[i] < b[i]
			}
		}
		return false
	}
	type edge struct{ a, b [3]int64 }
	edges := make(map[edge]int)
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.Triangle(i)
		qa, qb, qc := quantize(a), quantize(b), quantize(c)
		for _, e := range []edge{{qa, qb}, {qb, qc}, {qc, qa}} {
			if less(e.b, e.a) {
				e.a, e.b = e.b, e.a
			}
			edges[e]++
		}
	}

	var unpaired int
	for _, n := range edges {
		if n != 2 {
			unpaired++
		}
	}
	if ratio := float64(unpaired) / float64(len(edges)); ratio > 0.001 {
		t.Errorf("%d of %d edges are unpaired (%.3f%%), mesh is not closed",
			unpaired, len(edges), 100*ratio)
	}
}

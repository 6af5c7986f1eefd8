// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/halver/marblebox/internal/geom"
	"github.com/halver/marblebox/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max r3.Vec) {
	bb := s.s.BoundingBox()
	min = r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z}
	max = r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z}
	return min, max
}

// Contains reports whether p lies inside the solid.
func (s *sdfxSolid) Contains(p r3.Vec) bool {
	return s.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z}) <= 0
}

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct {
	// MeshCells is the marching cubes resolution along the longest
	// bounding box axis.
	MeshCells int
}

// New returns a new sdfx kernel at the default mesh resolution.
func New() *Kernel {
	return &Kernel{MeshCells: defaultMeshCells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// boxSDF is a box with selectable edge rounding. The distance math
// lives in internal/geom so both backends share one implementation.
type boxSDF struct {
	half  r3.Vec
	style kernel.RoundStyle
	round float64
	bb    sdf.Box3
}

func (b *boxSDF) Evaluate(p v3.Vec) float64 {
	q := r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
	switch b.style {
	case kernel.RoundEdgesZ:
		return geom.PrismZDist(q, b.half, b.round)
	case kernel.RoundEdgesY:
		return geom.PrismYDist(q, b.half, b.round)
	case kernel.RoundTop:
		return geom.TopRoundBoxDist(q, b.half, b.round)
	}
	return geom.BoxDist(q, b.half)
}

func (b *boxSDF) BoundingBox() sdf.Box3 {
	return b.bb
}

// Box builds a box of the given size centered at the origin with the
// selected edges rounded.
func (k *Kernel) Box(size r3.Vec, style kernel.RoundStyle, round float64) (kernel.Solid, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("sdfx: box size must be positive, got %v", size)
	}
	if err := checkRound(size, style, round); err != nil {
		return nil, err
	}
	half := r3.Scale(0.5, size)
	return wrap(&boxSDF{
		half:  half,
		style: style,
		round: round,
		bb: sdf.Box3{
			Min: v3.Vec{X: -half.X, Y: -half.Y, Z: -half.Z},
			Max: v3.Vec{X: half.X, Y: half.Y, Z: half.Z},
		},
	}), nil
}

// checkRound rejects rounding radii that exceed the edges they apply
// to. The caller receives kernel.ErrFilletInfeasible and may rebuild
// with a smaller radius or no rounding at all.
func checkRound(size r3.Vec, style kernel.RoundStyle, round float64) error {
	if style == kernel.RoundNone {
		return nil
	}
	if round <= 0 {
		return fmt.Errorf("sdfx: rounding %s: radius %g: %w", style, round, kernel.ErrFilletInfeasible)
	}
	feasible := true
	switch style {
	case kernel.RoundEdgesZ:
		feasible = round < size.X/2 && round < size.Y/2
	case kernel.RoundEdgesY:
		feasible = round < size.X/2 && round < size.Z/2
	case kernel.RoundTop:
		feasible = round < size.X/2 && round < size.Y/2 && round < size.Z
	}
	if !feasible {
		return fmt.Errorf("sdfx: rounding %s of box %v with radius %g: %w",
			style, size, round, kernel.ErrFilletInfeasible)
	}
	return nil
}

// Sphere builds a sphere centered at the origin.
func (k *Kernel) Sphere(radius float64) (kernel.Solid, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx: sphere: %w", err)
	}
	return wrap(s), nil
}

// Cylinder builds a cylinder along the Z axis centered at the origin.
func (k *Kernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: cylinder: %w", err)
	}
	return wrap(s), nil
}

// tubeSDF is the travel cavity: every point within radius of the
// centerline polyline. Transitions between polyline segments are
// inherently rounded.
type tubeSDF struct {
	pts    []r3.Vec
	radius float64
	bb     sdf.Box3
}

func (t *tubeSDF) Evaluate(p v3.Vec) float64 {
	q := r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
	return geom.PolylineDist(q, t.pts) - t.radius
}

func (t *tubeSDF) BoundingBox() sdf.Box3 {
	return t.bb
}

// Tube sweeps a circular cross section along the polyline centerline.
func (k *Kernel) Tube(centerline []r3.Vec, radius float64) (kernel.Solid, error) {
	if len(centerline) < 2 {
		return nil, fmt.Errorf("sdfx: tube needs at least 2 centerline points, got %d", len(centerline))
	}
	if radius <= 0 {
		return nil, fmt.Errorf("sdfx: tube radius must be positive, got %g", radius)
	}
	for i := 1; i < len(centerline); i++ {
		if r3.Norm(r3.Sub(centerline[i], centerline[i-1])) == 0 {
			return nil, fmt.Errorf("sdfx: tube centerline has zero-length segment at index %d", i)
		}
	}
	min, max := geom.PolylineBounds(centerline)
	pts := make([]r3.Vec, len(centerline))
	copy(pts, centerline)
	return wrap(&tubeSDF{
		pts:    pts,
		radius: radius,
		bb: sdf.Box3{
			Min: v3.Vec{X: min.X - radius, Y: min.Y - radius, Z: min.Z - radius},
			Max: v3.Vec{X: max.X + radius, Y: max.Y + radius, Z: max.Z + radius},
		},
	}), nil
}

// Union returns the union of two solids.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by offset.
func (k *Kernel) Translate(s kernel.Solid, offset r3.Vec) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: offset.X, Y: offset.Y, Z: offset.Z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *Kernel) Rotate(s kernel.Solid, xDeg, yDeg, zDeg float64) kernel.Solid {
	xRad := xDeg * math.Pi / 180.0
	yRad := yDeg * math.Pi / 180.0
	zRad := zDeg * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	cells := k.MeshCells
	if cells <= 0 {
		cells = defaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: marching cubes produced no triangles")
	}

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

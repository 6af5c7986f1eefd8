// Package soysdf implements the kernel.Kernel interface using the
// github.com/soypat/sdf CAD library. It is interchangeable with the
// sdfx backend; both evaluate the same signed-distance math from
// internal/geom for boxes and tube sweeps.
package soysdf

import (
	"fmt"
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3"
	"github.com/soypat/sdf/form3/must3"
	"github.com/soypat/sdf/render"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/halver/marblebox/internal/geom"
	"github.com/halver/marblebox/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// defaultMeshCells controls octree marching cubes resolution.
const defaultMeshCells = 200

// soySolid wraps an sdf.SDF3 to implement kernel.Solid.
type soySolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *soySolid) BoundingBox() (min, max r3.Vec) {
	bb := s.s.Bounds()
	return bb.Min, bb.Max
}

// Contains reports whether p lies inside the solid.
func (s *soySolid) Contains(p r3.Vec) bool {
	return s.s.Evaluate(p) <= 0
}

// Kernel implements kernel.Kernel using soypat/sdf.
type Kernel struct {
	// MeshCells is the octree renderer resolution along the longest
	// bounding box axis.
	MeshCells int
}

// New returns a new soypat/sdf kernel at the default mesh resolution.
func New() *Kernel {
	return &Kernel{MeshCells: defaultMeshCells}
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*soySolid).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &soySolid{s: s}
}

// boxSDF is a box with selectable edge rounding.
type boxSDF struct {
	half  r3.Vec
	style kernel.RoundStyle
	round float64
	bb    r3.Box
}

func (b *boxSDF) Evaluate(p r3.Vec) float64 {
	switch b.style {
	case kernel.RoundEdgesZ:
		return geom.PrismZDist(p, b.half, b.round)
	case kernel.RoundEdgesY:
		return geom.PrismYDist(p, b.half, b.round)
	case kernel.RoundTop:
		return geom.TopRoundBoxDist(p, b.half, b.round)
	}
	return geom.BoxDist(p, b.half)
}

func (b *boxSDF) Bounds() r3.Box {
	return b.bb
}

// Box builds a box of the given size centered at the origin with the
// selected edges rounded.
func (k *Kernel) Box(size r3.Vec, style kernel.RoundStyle, round float64) (kernel.Solid, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("soysdf: box size must be positive, got %v", size)
	}
	if err := checkRound(size, style, round); err != nil {
		return nil, err
	}
	half := r3.Scale(0.5, size)
	return wrap(&boxSDF{
		half:  half,
		style: style,
		round: round,
		bb:    r3.Box{Min: r3.Scale(-1, half), Max: half},
	}), nil
}

func checkRound(size r3.Vec, style kernel.RoundStyle, round float64) error {
	if style == kernel.RoundNone {
		return nil
	}
	if round <= 0 {
		return fmt.Errorf("soysdf: rounding %s: radius %g: %w", style, round, kernel.ErrFilletInfeasible)
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
		return fmt.Errorf("soysdf: rounding %s of box %v with radius %g: %w",
			style, size, round, kernel.ErrFilletInfeasible)
	}
	return nil
}

// Sphere builds a sphere centered at the origin.
func (k *Kernel) Sphere(radius float64) (kernel.Solid, error) {
	s, err := form3.Sphere(radius)
	if err != nil {
		return nil, fmt.Errorf("soysdf: sphere: %w", err)
	}
	return wrap(s), nil
}

// Cylinder builds a cylinder along the Z axis centered at the origin.
// must3 constructors panic on bad dimensions, so the call is fenced
// the same way form3 fences them.
func (k *Kernel) Cylinder(height, radius float64) (s kernel.Solid, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = fmt.Errorf("soysdf: cylinder: %v", a)
		}
	}()
	return wrap(must3.Cylinder(height, radius, 0)), nil
}

// tubeSDF is the travel cavity: every point within radius of the
// centerline polyline.
type tubeSDF struct {
	pts    []r3.Vec
	radius float64
	bb     r3.Box
}

func (t *tubeSDF) Evaluate(p r3.Vec) float64 {
	return geom.PolylineDist(p, t.pts) - t.radius
}

func (t *tubeSDF) Bounds() r3.Box {
	return t.bb
}

// Tube sweeps a circular cross section along the polyline centerline.
func (k *Kernel) Tube(centerline []r3.Vec, radius float64) (kernel.Solid, error) {
	if len(centerline) < 2 {
		return nil, fmt.Errorf("soysdf: tube needs at least 2 centerline points, got %d", len(centerline))
	}
	if radius <= 0 {
		return nil, fmt.Errorf("soysdf: tube radius must be positive, got %g", radius)
	}
	for i := 1; i < len(centerline); i++ {
		if r3.Norm(r3.Sub(centerline[i], centerline[i-1])) == 0 {
			return nil, fmt.Errorf("soysdf: tube centerline has zero-length segment at index %d", i)
		}
	}
	min, max := geom.PolylineBounds(centerline)
	grow := r3.Vec{X: radius, Y: radius, Z: radius}
	pts := make([]r3.Vec, len(centerline))
	copy(pts, centerline)
	return wrap(&tubeSDF{
		pts:    pts,
		radius: radius,
		bb:     r3.Box{Min: r3.Sub(min, grow), Max: r3.Add(max, grow)},
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
	return wrap(sdf.Transform3D(unwrap(s), sdf.Translate3D(offset)))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *Kernel) Rotate(s kernel.Solid, xDeg, yDeg, zDeg float64) kernel.Solid {
	m := sdf.RotateZ(d2r(zDeg)).Mul(sdf.RotateY(d2r(yDeg))).Mul(sdf.RotateX(d2r(xDeg)))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

func d2r(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ToMesh converts a solid to a triangle mesh using the octree
// marching cubes renderer.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	cells := k.MeshCells
	if cells <= 0 {
		cells = defaultMeshCells
	}
	triangles, err := render.RenderAll(render.NewOctreeRenderer(unwrap(s), cells))
	if err != nil {
		return nil, fmt.Errorf("soysdf: render: %w", err)
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("soysdf: renderer produced no triangles")
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

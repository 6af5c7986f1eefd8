// Package kernel defines the abstract geometry kernel interface the
// build pipeline composes solids with. Implementations (sdfx, soysdf)
// provide primitives, sweeps and boolean operations behind this
// interface, so the pipeline owns parametrization and sequencing while
// the backends own the geometric algorithms.
package kernel

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrFilletInfeasible reports a rounding request whose radius exceeds
// the available edge length. Callers may retry with a smaller radius
// or rebuild the solid without rounding; the kernel never crashes on a
// degenerate fillet.
var ErrFilletInfeasible = errors.New("kernel: fillet radius exceeds available edge length")

// RoundStyle selects which box edges are rounded.
type RoundStyle int

const (
	// RoundNone builds a sharp box.
	RoundNone RoundStyle = iota
	// RoundEdgesZ rounds the four edges parallel to the Z axis.
	RoundEdgesZ
	// RoundEdgesY rounds the four edges parallel to the Y axis,
	// giving a stadium-shaped cross section in the XZ plane.
	RoundEdgesY
	// RoundTop rounds every edge except those bounding the bottom
	// face.
	RoundTop
)

// String returns the style name for error messages and reports.
func (r RoundStyle) String() string {
	switch r {
	case RoundNone:
		return "none"
	case RoundEdgesZ:
		return "vertical edges"
	case RoundEdgesY:
		return "travel-axis edges"
	case RoundTop:
		return "top and vertical edges"
	}
	return "unknown"
}

// Solid is an opaque handle to a geometry kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max r3.Vec)
	// Contains reports whether the point lies inside the solid.
	Contains(p r3.Vec) bool
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Box builds a box of the given size centered at the origin with
	// the selected edges rounded. Returns ErrFilletInfeasible when
	// the radius does not fit the edges it is applied to.
	Box(size r3.Vec, style RoundStyle, round float64) (Solid, error)
	// Sphere builds a sphere centered at the origin.
	Sphere(radius float64) (Solid, error)
	// Cylinder builds a cylinder along the Z axis centered at the
	// origin.
	Cylinder(height, radius float64) (Solid, error)
	// Tube sweeps a circular cross section of the given radius along
	// a polyline centerline, oriented by the local tangent with
	// rounded transitions between segments.
	Tube(centerline []r3.Vec, radius float64) (Solid, error)

	// Boolean operations.
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms.
	Translate(s Solid, offset r3.Vec) Solid
	Rotate(s Solid, xDeg, yDeg, zDeg float64) Solid // Euler angles in degrees

	// Mesh output.
	ToMesh(s Solid) (*Mesh, error)
}

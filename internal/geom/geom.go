// Package geom holds the scalar signed-distance math shared by the
// geometry kernel backends: box distances with selectable edge
// rounding and distance to a polyline. Both backends evaluate these on
// their own vector types converted to gonum r3 vectors.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// absElem returns the component-wise absolute value.
func absElem(a r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(a.X), Y: math.Abs(a.Y), Z: math.Abs(a.Z)}
}

func maxElem(a r3.Vec) float64 {
	return math.Max(a.X, math.Max(a.Y, a.Z))
}

// BoxDist returns the signed distance from p to a sharp box centered
// at the origin with the given half extents.
func BoxDist(p, half r3.Vec) float64 {
	d := r3.Sub(absElem(p), half)
	switch {
	case d.X > 0 && d.Y > 0 && d.Z > 0:
		return r3.Norm(d)
	case d.X > 0 && d.Y > 0:
		return math.Hypot(d.X, d.Y)
	case d.X > 0 && d.Z > 0:
		return math.Hypot(d.X, d.Z)
	case d.Y > 0 && d.Z > 0:
		return math.Hypot(d.Y, d.Z)
	case d.X > 0:
		return d.X
	case d.Y > 0:
		return d.Y
	case d.Z > 0:
		return d.Z
	}
	return maxElem(d)
}

// RoundBoxDist returns the signed distance to a box with every edge
// rounded by round.
func RoundBoxDist(p, half r3.Vec, round float64) float64 {
	shrunk := r3.Vec{X: half.X - round, Y: half.Y - round, Z: half.Z - round}
	return BoxDist(p, shrunk) - round
}

// TopRoundBoxDist returns the signed distance to a box whose top and
// vertical edges are rounded but whose bottom edges stay sharp. It is
// the intersection of a sharp box with an all-rounded box extended one
// rounding diameter below, so the lower rounding falls outside the
// result.
func TopRoundBoxDist(p, half r3.Vec, round float64) float64 {
	extended := r3.Vec{X: half.X, Y: half.Y, Z: half.Z + round}
	shifted := r3.Vec{X: p.X, Y: p.Y, Z: p.Z + round}
	return math.Max(BoxDist(p, half), RoundBoxDist(shifted, extended, round))
}

// box2Dist is the 2d analogue of BoxDist.
func box2Dist(x, y, hx, hy float64) float64 {
	dx := math.Abs(x) - hx
	dy := math.Abs(y) - hy
	switch {
	case dx > 0 && dy > 0:
		return math.Hypot(dx, dy)
	case dx > 0:
		return dx
	case dy > 0:
		return dy
	}
	return math.Max(dx, dy)
}

// extrude combines a 2d profile distance with a slab distance along
// the extrusion axis.
func extrude(dProfile, dAxis float64) float64 {
	if dProfile > 0 && dAxis > 0 {
		return math.Hypot(dProfile, dAxis)
	}
	return math.Max(dProfile, dAxis)
}

// PrismZDist returns the signed distance to a box whose four edges
// parallel to Z are rounded: a rounded rectangle in XY extruded along
// Z.
func PrismZDist(p, half r3.Vec, round float64) float64 {
	d2 := box2Dist(p.X, p.Y, half.X-round, half.Y-round) - round
	return extrude(d2, math.Abs(p.Z)-half.Z)
}

// PrismYDist returns the signed distance to a box whose four edges
// parallel to Y are rounded: a rounded rectangle in XZ extruded along
// Y.
func PrismYDist(p, half r3.Vec, round float64) float64 {
	d2 := box2Dist(p.X, p.Z, half.X-round, half.Z-round) - round
	return extrude(d2, math.Abs(p.Y)-half.Y)
}

// SegmentDist returns the distance from p to the segment ab.
func SegmentDist(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	ap := r3.Sub(p, a)
	l2 := r3.Norm2(ab)
	if l2 == 0 {
		return r3.Norm(ap)
	}
	t := r3.Dot(ap, ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return r3.Norm(r3.Sub(ap, r3.Scale(t, ab)))
}

// PolylineDist returns the distance from p to the nearest segment of
// the polyline.
func PolylineDist(p r3.Vec, pts []r3.Vec) float64 {
	min := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		if d := SegmentDist(p, pts[i-1], pts[i]); d < min {
			min = d
		}
	}
	return min
}

// PolylineBounds returns the axis-aligned bounds of the polyline.
func PolylineBounds(pts []r3.Vec) (min, max r3.Vec) {
	min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range pts {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	return min, max
}

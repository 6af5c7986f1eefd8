// Package path builds the serpentine centerline the marble travels
// along: an outlet run followed by three sloped straight layers joined
// by two tangent-matched turns. The path lives in the Y/Z plane where
// Y is the travel axis and Z is the height axis; X is the housing
// depth and stays zero on the centerline.
package path

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/halver/marblebox/pkg/params"
)

// DefaultTurnSamples is the polyline resolution used per turn when
// sweeping the tube cavity.
const DefaultTurnSamples = 32

// Segment is one piece of the centerline. Segments are continuous in
// position by construction: each segment starts where the previous one
// ends.
type Segment interface {
	Start() r3.Vec
	End() r3.Vec

	// appendPoints appends the segment's sampled points to dst,
	// excluding the segment's start point.
	appendPoints(dst []r3.Vec, turnSamples int) []r3.Vec
}

// Line is a straight run.
type Line struct {
	From, To r3.Vec
}

// Start returns the line's first point.
func (l Line) Start() r3.Vec { return l.From }

// End returns the line's last point.
func (l Line) End() r3.Vec { return l.To }

// Direction returns the unit direction of the line.
func (l Line) Direction() r3.Vec { return r3.Unit(r3.Sub(l.To, l.From)) }

func (l Line) appendPoints(dst []r3.Vec, _ int) []r3.Vec {
	return append(dst, l.To)
}

// Path is an ordered sequence of segments forming one continuous wire.
type Path struct {
	Segments []Segment
}

// Build lays out the full centerline from the derived dimensions,
// starting at the origin.
func Build(d params.Derived) Path {
	outlet := Line{
		From: r3.Vec{},
		To:   r3.Vec{Y: d.OutletLength},
	}
	layer1 := Line{
		From: outlet.To,
		To:   r3.Vec{Y: outlet.To.Y + d.Layer1Len, Z: d.Layer1Height},
	}
	layer2 := Line{
		From: r3.Vec{Y: layer1.To.Y, Z: layer1.To.Z + 2*d.TurnRadius},
		To:   r3.Vec{Y: layer1.To.Y - d.Layer2Len, Z: layer1.To.Z + 2*d.TurnRadius + d.Layer2Height},
	}
	layer3 := Line{
		From: r3.Vec{Y: layer2.To.Y, Z: layer2.To.Z + 2*d.TurnRadius},
		To:   r3.Vec{Y: layer2.To.Y + d.Layer3Len, Z: layer2.To.Z + 2*d.TurnRadius + d.Layer3Height},
	}

	// Turn apexes sit one turn radius beyond the layer end in travel
	// and one turn radius up in height. Turn 1 reverses +Y to -Y,
	// turn 2 reverses -Y back to +Y. Boundary tangents come from the
	// adjacent straight segments so the junctions stay tangent-matched
	// for any slope.
	turn1 := newTurn(
		layer1.To,
		r3.Vec{Y: layer1.To.Y + d.TurnRadius, Z: layer1.To.Z + d.TurnRadius},
		layer2.From,
		layer1.Direction(),
		layer2.Direction(),
		d.TurnRadius,
	)
	turn2 := newTurn(
		layer2.To,
		r3.Vec{Y: layer2.To.Y - d.TurnRadius, Z: layer2.To.Z + d.TurnRadius},
		layer3.From,
		layer2.Direction(),
		layer3.Direction(),
		d.TurnRadius,
	)

	return Path{Segments: []Segment{outlet, layer1, turn1, layer2, turn2, layer3}}
}

// Start returns the path's first point.
func (p Path) Start() r3.Vec {
	return p.Segments[0].Start()
}

// End returns the path's last point.
func (p Path) End() r3.Vec {
	return p.Segments[len(p.Segments)-1].End()
}

// Continuous reports whether every adjacent segment pair shares its
// junction point within tol.
func (p Path) Continuous(tol float64) bool {
	for i := 1; i < len(p.Segments); i++ {
		gap := r3.Norm(r3.Sub(p.Segments[i].Start(), p.Segments[i-1].End()))
		if gap > tol {
			return false
		}
	}
	return true
}

// Polyline samples the path into a dense point sequence, suitable for
// sweeping a profile along it. Straight runs contribute their
// endpoints, each turn contributes turnSamples interior points.
func (p Path) Polyline(turnSamples int) []r3.Vec {
	if turnSamples < 1 {
		turnSamples = DefaultTurnSamples
	}
	pts := []r3.Vec{p.Start()}
	for _, seg := range p.Segments {
		pts = seg.appendPoints(pts, turnSamples)
	}
	return pts
}

package path

import (
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r3"
)

// Turn is a tangent-constrained curve joining two straight runs. It
// passes through an apex offset one turn radius beyond the junction in
// both travel and height, climbing two turn radii overall while
// reversing the travel direction.
type Turn struct {
	From, Apex, To r3.Vec

	// Unit tangents at the three control points. The boundary tangents
	// equal the adjacent straight segments' directions; the apex
	// tangent is purely vertical.
	TangentStart, TangentApex, TangentEnd r3.Vec

	y, z *interp.PiecewiseCubic
}

// newTurn fits a piecewise cubic through from/apex/to with the given
// boundary tangents. Tangent magnitudes use the quarter-arc estimate
// (pi/2 * turn radius) per knot span, which keeps the height
// coordinate monotone for any positive slope.
func newTurn(from, apex, to, tanStart, tanEnd r3.Vec, turnRadius float64) Turn {
	t := Turn{
		From:         from,
		Apex:         apex,
		To:           to,
		TangentStart: r3.Unit(tanStart),
		TangentApex:  r3.Vec{Z: 1},
		TangentEnd:   r3.Unit(tanEnd),
	}

	scale := math.Pi / 2 * turnRadius
	ts := []float64{0, 1, 2}

	t.y = &interp.PiecewiseCubic{}
	t.y.FitWithDerivatives(ts,
		[]float64{from.Y, apex.Y, to.Y},
		[]float64{t.TangentStart.Y * scale, t.TangentApex.Y * scale, t.TangentEnd.Y * scale})

	t.z = &interp.PiecewiseCubic{}
	t.z.FitWithDerivatives(ts,
		[]float64{from.Z, apex.Z, to.Z},
		[]float64{t.TangentStart.Z * scale, t.TangentApex.Z * scale, t.TangentEnd.Z * scale})

	return t
}

// Start returns the turn's first point.
func (t Turn) Start() r3.Vec { return t.From }

// End returns the turn's last point.
func (t Turn) End() r3.Vec { return t.To }

// At evaluates the turn at s in [0,1], where 0 is the start and 1 the
// end. The apex sits at s = 0.5.
func (t Turn) At(s float64) r3.Vec {
	u := 2 * s
	return r3.Vec{Y: t.y.Predict(u), Z: t.z.Predict(u)}
}

func (t Turn) appendPoints(dst []r3.Vec, turnSamples int) []r3.Vec {
	for i := 1; i < turnSamples; i++ {
		dst = append(dst, t.At(float64(i)/float64(turnSamples)))
	}
	return append(dst, t.To)
}

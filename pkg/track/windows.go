package track

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/halver/marblebox/pkg/kernel"
	"github.com/halver/marblebox/pkg/params"
)

// Window sizing relative to the housing box and tube radius.
const (
	windowLengthShare = 0.8 // share of the box length the side windows span
	windowDepthFactor = 3   // window depth in tube radii, through both walls
	portRadiusFactor  = 0.7 // circular port radius in tube radii
	portLengthFactor  = 4   // circular port length in tube radii
)

// Windows builds the viewing cutouts: two stadium-shaped side windows
// and two circular ports aligned with the turn heights. The cutouts
// are computed from the shared derived dimensions only; they never
// touch the path or tube solids.
func Windows(k kernel.Kernel, p params.Params, d params.Derived) (kernel.Solid, error) {
	boxStart := d.OutletLength
	boxEnd := d.OutletLength + d.Layer1Len + d.TurnRadius
	boxLength := boxEnd - boxStart

	windowLength := boxLength * windowLengthShare
	windowHeight := d.TubeRadius * p.WindowHeightFactor
	windowDepth := d.TubeRadius * windowDepthFactor
	windowCenterY := boxStart + boxLength/2

	// Fully rounded short ends give the stadium shape. The radius is
	// always feasible by construction (just under half the height).
	stadium, err := k.Box(
		r3.Vec{X: windowDepth, Y: windowLength, Z: windowHeight},
		kernel.RoundEdgesY, windowHeight/2-0.1)
	if err != nil {
		return nil, fmt.Errorf("side window: %w", err)
	}

	upper := k.Translate(stadium, r3.Vec{Y: windowCenterY, Z: d.TotalHeight() * 5 / 10})
	lower := k.Translate(stadium, r3.Vec{Y: windowCenterY, Z: d.Layer1Height / 2})

	port, err := k.Cylinder(portLengthFactor*d.TubeRadius, portRadiusFactor*d.TubeRadius)
	if err != nil {
		return nil, fmt.Errorf("port window: %w", err)
	}
	// Rotate the cylinder axis from Z onto the travel axis.
	port = k.Rotate(port, 90, 0, 0)

	// Front port pierces the front wall at turn 2's midpoint height,
	// back port pierces the back wall at turn 1's midpoint height.
	turn2Z := d.Layer1Height + 2*d.TurnRadius + d.Layer2Height + 0.8*d.TurnRadius
	front := k.Translate(port, r3.Vec{
		Y: d.OutletLength - portLengthFactor*d.TubeRadius/2,
		Z: turn2Z,
	})

	turn1Z := d.Layer1Height + d.TurnRadius
	backY := d.OutletLength + d.Layer1Len + d.TurnRadius
	back := k.Translate(port, r3.Vec{
		Y: backY + portLengthFactor*d.TubeRadius/2,
		Z: turn1Z,
	})

	return k.Union(k.Union(upper, lower), k.Union(front, back)), nil
}

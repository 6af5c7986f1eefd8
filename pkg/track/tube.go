// Package track assembles the marble track housing: it sweeps the
// travel cavity along the centerline, cuts the viewing windows and
// composes the housing boxes, all through the abstract geometry
// kernel.
package track

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/halver/marblebox/pkg/kernel"
	"github.com/halver/marblebox/pkg/path"
)

// startCapDrop is how far below the path start the entry cap sphere
// sits, in tube radii. The offset keeps the entry opening rounded
// instead of flat-cut.
const startCapDrop = 0.35

// Tube sweeps the travel cavity along the path and caps both ends
// with spheres so the marble openings are rounded.
func Tube(k kernel.Kernel, p path.Path, tubeRadius float64) (kernel.Solid, error) {
	tube, err := k.Tube(p.Polyline(path.DefaultTurnSamples), tubeRadius)
	if err != nil {
		return nil, fmt.Errorf("sweep tube: %w", err)
	}

	capSphere, err := k.Sphere(tubeRadius)
	if err != nil {
		return nil, fmt.Errorf("tube end caps: %w", err)
	}
	start := k.Translate(capSphere, r3.Add(p.Start(), r3.Vec{Z: -startCapDrop * tubeRadius}))
	end := k.Translate(capSphere, p.End())

	return k.Union(k.Union(tube, start), end), nil
}

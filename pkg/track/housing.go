package track

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/halver/marblebox/pkg/kernel"
	"github.com/halver/marblebox/pkg/params"
)

// FilletAttempt records one edge-rounding attempt on a housing box.
// Infeasible attempts are skipped, not fatal: the build continues with
// the next style in the degradation ladder and the caller can inspect
// what was dropped.
type FilletAttempt struct {
	Part    string // "upper box" or "base box"
	Style   kernel.RoundStyle
	Radius  float64
	Applied bool
	Err     error // non-nil when the attempt was skipped
}

// FilletReport lists every rounding attempt of a housing build in
// order.
type FilletReport []FilletAttempt

// Skipped returns the attempts that were dropped as infeasible.
func (r FilletReport) Skipped() []FilletAttempt {
	var skipped []FilletAttempt
	for _, a := range r {
		if !a.Applied {
			skipped = append(skipped, a)
		}
	}
	return skipped
}

// Housing builds the final housing solid: upper box and base box
// derived from the tube's bounding box, filleted, unioned, with the
// tube cavity and window cutouts subtracted. windows may be nil.
func Housing(k kernel.Kernel, tube, windows kernel.Solid, p params.Params, d params.Derived) (kernel.Solid, FilletReport, error) {
	min, max := tube.BoundingBox()
	bbSize := r3.Sub(max, min)
	bbCenter := r3.Scale(0.5, r3.Add(min, max))

	wall := p.WallThickness
	r := d.TubeRadius
	var report FilletReport

	// Upper box: shortened along the travel axis and raised so its
	// floor sits above the tube's lower wall, leaving an open channel
	// on the underside.
	upperSize := r3.Vec{
		X: bbSize.X + 2*wall + 0.2*r,
		Y: bbSize.Y + 2*wall - 2*r,
		Z: bbSize.Z + wall - 1.7*r,
	}
	upperCenter := r3.Vec{
		X: bbCenter.X,
		Y: (max.Y + min.Y + 2*r) / 2,
		Z: (max.Z - 1.7*r + min.Z) / 2,
	}
	upper, err := roundedBox(k, "upper box", upperSize, p,
		[]kernel.RoundStyle{kernel.RoundTop, kernel.RoundEdgesZ}, &report)
	if err != nil {
		return nil, report, err
	}

	// Base box: spans the full bounding box and sits below the
	// channel, fully enclosing the tube's lower half.
	baseSize := r3.Vec{
		X: bbSize.X + 2*wall + 1*r,
		Y: bbSize.Y + 2*wall,
		Z: 1.2 * r,
	}
	baseCenter := r3.Vec{
		X: bbCenter.X,
		Y: bbCenter.Y,
		Z: -0.9 * r,
	}
	base, err := roundedBox(k, "base box", baseSize, p,
		[]kernel.RoundStyle{kernel.RoundEdgesZ}, &report)
	if err != nil {
		return nil, report, err
	}

	housing := k.Union(
		k.Translate(upper, upperCenter),
		k.Translate(base, baseCenter),
	)
	housing = k.Difference(housing, tube)
	if windows != nil {
		housing = k.Difference(housing, windows)
	}
	return housing, report, nil
}

// roundedBox builds a housing box, walking the rounding styles from
// most to least rounded. Infeasible fillets are recorded and skipped;
// the sharp box is the final fallback and cannot fail on rounding.
func roundedBox(k kernel.Kernel, part string, size r3.Vec, p params.Params, styles []kernel.RoundStyle, report *FilletReport) (kernel.Solid, error) {
	var ladder []kernel.RoundStyle
	if p.EnableFillet {
		ladder = append(ladder, styles...)
	}
	ladder = append(ladder, kernel.RoundNone)

	for _, style := range ladder {
		radius := p.FilletRadius
		if style == kernel.RoundNone {
			radius = 0
		}
		s, err := k.Box(size, style, radius)
		if err == nil {
			if style != kernel.RoundNone {
				*report = append(*report, FilletAttempt{
					Part: part, Style: style, Radius: radius, Applied: true,
				})
			}
			return s, nil
		}
		if !errors.Is(err, kernel.ErrFilletInfeasible) {
			return nil, fmt.Errorf("%s: %w", part, err)
		}
		*report = append(*report, FilletAttempt{
			Part: part, Style: style, Radius: radius, Err: err,
		})
	}
	return nil, fmt.Errorf("%s: no feasible box construction", part)
}

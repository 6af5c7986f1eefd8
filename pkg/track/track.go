package track

import (
	"errors"
	"fmt"

	"github.com/halver/marblebox/pkg/kernel"
	"github.com/halver/marblebox/pkg/params"
	"github.com/halver/marblebox/pkg/path"
)

// Result is the output of one housing build.
type Result struct {
	// Housing is the final printable solid.
	Housing kernel.Solid
	// Tube is the travel cavity that was subtracted from the housing.
	Tube kernel.Solid
	// Path is the centerline the cavity was swept along.
	Path path.Path
	// Derived are the dimensions everything was computed from.
	Derived params.Derived
	// Fillets records every edge-rounding attempt.
	Fillets FilletReport
}

// Build runs the whole pipeline: validate parameters, derive
// dimensions, lay out the path, sweep the tube, cut the windows and
// assemble the housing. Geometry failures abort the build with an
// error naming the failing stage.
func Build(p params.Params, k kernel.Kernel) (*Result, error) {
	if verrs := p.Validate(); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		return nil, fmt.Errorf("invalid parameters: %w", errors.Join(errs...))
	}

	d := params.Derive(p)
	pa := path.Build(d)

	tube, err := Tube(k, pa, d.TubeRadius)
	if err != nil {
		return nil, fmt.Errorf("tube solid: %w", err)
	}

	var windows kernel.Solid
	if p.EnableWindows {
		windows, err = Windows(k, p, d)
		if err != nil {
			return nil, fmt.Errorf("window cutouts: %w", err)
		}
	}

	housing, fillets, err := Housing(k, tube, windows, p, d)
	if err != nil {
		return nil, fmt.Errorf("housing: %w", err)
	}

	return &Result{
		Housing: housing,
		Tube:    tube,
		Path:    pa,
		Derived: d,
		Fillets: fillets,
	}, nil
}

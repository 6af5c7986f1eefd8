// Package params defines the build parameters for a marble track
// housing and derives every downstream dimension from them. The
// parameter set is an immutable value passed into each build stage;
// there is no process-wide configuration state.
package params

import "fmt"

// Params is the flat set of physical parameters for one build run.
// All lengths are in millimeters.
type Params struct {
	// Marble dimensions.
	MarbleRadius float64 // radius of the marble itself
	Clearance    float64 // extra space around the marble inside the tube

	// Layout.
	MarblesPerLayer int     // marbles on the first layer (upper layers hold one less)
	Slope           float64 // height gain per unit of track length

	// Turn geometry.
	TurnFactor float64 // turn radius = tube radius * TurnFactor

	// Outlet.
	OutletFactor float64 // outlet length = tube radius * OutletFactor

	// Housing.
	WallThickness float64
	EnableFillet  bool
	FilletRadius  float64

	// Windows.
	EnableWindows      bool
	WindowHeightFactor float64 // window height = tube radius * factor
	WindowMarginFactor float64 // reserved: margin from the box rim
}

// Default returns the parameter set for a Kullerbü-sized marble
// (46 mm diameter) with two marbles per layer.
func Default() Params {
	return Params{
		MarbleRadius:       23,
		Clearance:          2,
		MarblesPerLayer:    2,
		Slope:              0.03,
		TurnFactor:         1.3,
		OutletFactor:       1.3,
		WallThickness:      5,
		EnableFillet:       true,
		FilletRadius:       4,
		EnableWindows:      true,
		WindowHeightFactor: 0.8,
		WindowMarginFactor: 0.5,
	}
}

// ValidationError represents a parameter validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validate checks the parameter invariants and returns all violations.
// A nil result means the parameters are safe to build with.
func (p Params) Validate() []ValidationError {
	var errs []ValidationError

	check := func(ok bool, code, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, ValidationError{
				Code:    code,
				Message: fmt.Sprintf(format, args...),
			})
		}
	}

	check(p.MarbleRadius > 0, "MARBLE_RADIUS",
		"marble radius must be positive, got %g", p.MarbleRadius)
	check(p.Clearance >= 0, "CLEARANCE",
		"clearance must not be negative, got %g", p.Clearance)
	check(p.MarblesPerLayer >= 1, "MARBLES_PER_LAYER",
		"need at least one marble per layer, got %d", p.MarblesPerLayer)
	check(p.Slope > 0, "SLOPE",
		"slope must be positive, got %g", p.Slope)
	check(p.TurnFactor > 0, "TURN_FACTOR",
		"turn factor must be positive, got %g", p.TurnFactor)
	check(p.OutletFactor > 0, "OUTLET_FACTOR",
		"outlet factor must be positive, got %g", p.OutletFactor)
	check(p.WallThickness > 0, "WALL_THICKNESS",
		"wall thickness must be positive, got %g", p.WallThickness)
	if p.EnableFillet {
		check(p.FilletRadius > 0, "FILLET_RADIUS",
			"fillet radius must be positive when fillets are enabled, got %g", p.FilletRadius)
	}
	if p.EnableWindows {
		check(p.WindowHeightFactor > 0, "WINDOW_HEIGHT_FACTOR",
			"window height factor must be positive when windows are enabled, got %g", p.WindowHeightFactor)
		check(p.WindowMarginFactor > 0, "WINDOW_MARGIN_FACTOR",
			"window margin factor must be positive when windows are enabled, got %g", p.WindowMarginFactor)
	}

	return errs
}

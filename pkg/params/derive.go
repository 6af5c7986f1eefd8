package params

// Derived holds every dimension computed from Params. It is derived
// exactly once per build and shared by the path builder and the window
// cutter so the two can never drift apart.
type Derived struct {
	TubeRadius   float64 // marble radius + clearance
	TurnRadius   float64 // tube radius * turn factor
	OutletLength float64 // tube radius * outlet factor

	// Straight layer lengths along the travel axis.
	Layer1Len float64
	Layer2Len float64
	Layer3Len float64

	// Height gained over each straight layer (length * slope).
	Layer1Height float64
	Layer2Height float64
	Layer3Height float64

	Slope float64
}

// Derive computes all derived dimensions. It is a pure function of the
// parameters: no side effects, no failure mode.
func Derive(p Params) Derived {
	tube := p.MarbleRadius + p.Clearance
	d := Derived{
		TubeRadius:   tube,
		TurnRadius:   tube * p.TurnFactor,
		OutletLength: tube * p.OutletFactor,
		Layer1Len:    float64(p.MarblesPerLayer) * tube * 2,
		Layer2Len:    float64(p.MarblesPerLayer-1) * tube * 2,
		Layer3Len:    float64(p.MarblesPerLayer-1)*tube*2 + tube,
		Slope:        p.Slope,
	}
	d.Layer1Height = d.Layer1Len * p.Slope
	d.Layer2Height = d.Layer2Len * p.Slope
	d.Layer3Height = d.Layer3Len * p.Slope
	return d
}

// TotalHeight is the height climbed by the whole track: three sloped
// layers plus two full turn diameters.
func (d Derived) TotalHeight() float64 {
	return d.Layer1Height + d.TurnRadius*2 + d.Layer2Height + d.TurnRadius*2 + d.Layer3Height
}

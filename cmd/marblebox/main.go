// Command marblebox builds the marble track housing and optionally
// exports it. Without -o it only reports the build outcome; nothing is
// written to disk by default.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/halver/marblebox/pkg/export"
	"github.com/halver/marblebox/pkg/kernel"
	"github.com/halver/marblebox/pkg/kernel/sdfx"
	"github.com/halver/marblebox/pkg/kernel/soysdf"
	"github.com/halver/marblebox/pkg/params"
	"github.com/halver/marblebox/pkg/track"
)

func main() {
	defaults := params.Default()

	var (
		out     = flag.String("o", "", "Output STL path (empty: no export)")
		preview = flag.String("preview", "", "Preview PNG path (requires -o)")
		backend = flag.String("backend", "sdfx", "Geometry kernel backend: sdfx or soysdf")
		cells   = flag.Int("cells", 0, "Mesh resolution in marching cubes cells (0: backend default)")

		marbleRadius    = flag.Float64("marble-radius", defaults.MarbleRadius, "Marble radius in mm")
		clearance       = flag.Float64("clearance", defaults.Clearance, "Extra space around the marble in mm")
		marblesPerLayer = flag.Int("marbles-per-layer", defaults.MarblesPerLayer, "Marbles on the first layer")
		slope           = flag.Float64("slope", defaults.Slope, "Height gain per mm of track length")
		turnFactor      = flag.Float64("turn-factor", defaults.TurnFactor, "Turn radius in tube radii")
		outletFactor    = flag.Float64("outlet-factor", defaults.OutletFactor, "Outlet length in tube radii")
		wallThickness   = flag.Float64("wall-thickness", defaults.WallThickness, "Housing wall thickness in mm")
		enableFillet    = flag.Bool("fillet", defaults.EnableFillet, "Round the housing edges")
		filletRadius    = flag.Float64("fillet-radius", defaults.FilletRadius, "Edge rounding radius in mm")
		enableWindows   = flag.Bool("windows", defaults.EnableWindows, "Cut viewing windows")
		windowHeight    = flag.Float64("window-height-factor", defaults.WindowHeightFactor, "Window height in tube radii")
		windowMargin    = flag.Float64("window-margin-factor", defaults.WindowMarginFactor, "Window margin in tube radii")
	)
	flag.Parse()

	p := params.Params{
		MarbleRadius:       *marbleRadius,
		Clearance:          *clearance,
		MarblesPerLayer:    *marblesPerLayer,
		Slope:              *slope,
		TurnFactor:         *turnFactor,
		OutletFactor:       *outletFactor,
		WallThickness:      *wallThickness,
		EnableFillet:       *enableFillet,
		FilletRadius:       *filletRadius,
		EnableWindows:      *enableWindows,
		WindowHeightFactor: *windowHeight,
		WindowMarginFactor: *windowMargin,
	}

	var k kernel.Kernel
	switch strings.ToLower(*backend) {
	case "sdfx":
		bk := sdfx.New()
		if *cells > 0 {
			bk.MeshCells = *cells
		}
		k = bk
	case "soysdf":
		bk := soysdf.New()
		if *cells > 0 {
			bk.MeshCells = *cells
		}
		k = bk
	default:
		log.Fatalf("unknown backend %q (want sdfx or soysdf)", *backend)
	}

	result, err := track.Build(p, k)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	min, max := result.Housing.BoundingBox()
	log.Printf("housing bounds: %.1f x %.1f x %.1f mm",
		max.X-min.X, max.Y-min.Y, max.Z-min.Z)
	for _, a := range result.Fillets.Skipped() {
		log.Printf("fillet skipped on %s (%s, r=%g): %v", a.Part, a.Style, a.Radius, a.Err)
	}

	if *out == "" {
		if *preview != "" {
			log.Fatal("-preview requires -o")
		}
		log.Print("no output path given, skipping export")
		return
	}

	mesh, err := k.ToMesh(result.Housing)
	if err != nil {
		log.Fatalf("meshing failed: %v", err)
	}
	if err := export.SaveSTL(*out, mesh); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d triangles)", *out, mesh.TriangleCount())

	if *preview != "" {
		if err := export.PreviewPNG(*out, *preview, export.DefaultView); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *preview)
	}
}

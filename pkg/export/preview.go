package export

import (
	"fmt"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the preview camera.
type View struct {
	LookAt r3.Vec // point to look at
	Up     r3.Vec // up direction
	Eye    r3.Vec // camera position
	Near   float64
	Far    float64
}

// DefaultView is an isometric view of the housing.
var DefaultView = View{
	Up:   r3.Vec{Z: 1},
	Eye:  r3.Vec{X: 2.4, Y: 2.4, Z: 2.4},
	Near: 1,
	Far:  10,
}

const (
	previewWidth  = 768
	previewHeight = 432
	previewFovy   = 30 // vertical field of view in degrees
	previewScale  = 2  // supersampling factor
)

// PreviewPNG renders the STL at stlPath into a shaded PNG at pngPath.
func PreviewPNG(stlPath, pngPath string, view View) error {
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return fmt.Errorf("export preview: %w", err)
	}

	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)

	// Fit the mesh in a bi-unit cube centered at the origin.
	mesh.BiUnitCube()

	context := fauxgl.NewContext(previewWidth*previewScale, previewHeight*previewScale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))

	aspect := float64(previewWidth) / float64(previewHeight)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(previewFovy, aspect, view.Near, view.Far)

	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)

	// Downsample for antialiasing.
	image := resize.Resize(previewWidth, previewHeight, context.Image(), resize.Bilinear)
	if err := fauxgl.SavePNG(pngPath, image); err != nil {
		return fmt.Errorf("export preview: %w", err)
	}
	return nil
}

package viewer

import (
	"image/color"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/philipparndt/gopreview/pkg/scene"
)

var red = color.RGBA{R: 255, A: 255}

// unitSquareScene has a single red unit square in the z=0 plane spanning
// x and y in [0, 1], seen by the default camera from z=2.
func unitSquareScene(flipped bool) *scene.Scene {
	m := model.NewMesh()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 1, 0))
	m.AddVertex(geometry.NewVector3(0, 1, 0))
	if flipped {
		m.AddQuad(0, 3, 2, 1)
	} else {
		m.AddQuad(0, 1, 2, 3)
	}

	doc := model.NewDocument("test")
	doc.Layers = model.Layers{{Name: "Red", Color: red}}
	doc.AddObject(&model.Object{Name: "square", Geometry: m})
	return scene.Build(doc)
}

// On a 100x100 viewport the square's center (0.5, 0.5, 0) lands near
// (71.6, 28.3); the lower left is empty.
const (
	hitX, hitY   = 71.0, 28.0
	missX, missY = 10.0, 90.0
)

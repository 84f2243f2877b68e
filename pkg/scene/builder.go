package scene

import (
	"image/color"
	"log/slog"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
)

// BoxMargin is added on every side of the scene bounding box
const BoxMargin = 2.0

// lightCorners are the upper corners of the box, see BoundingBox.Corners
var lightCorners = [4]int{4, 5, 7, 6}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Build creates the scene for a document. Objects that are neither meshes
// nor breps are skipped. The document is not modified.
func Build(doc *model.Document) *Scene {
	s := &Scene{
		Document:    doc,
		BoundingBox: geometry.EmptyBoundingBox(),
		Meshes:      make([]*RenderMesh, 0, len(doc.Objects)),
	}

	for _, obj := range doc.Objects {
		if obj.Geometry == nil {
			continue
		}

		kind := obj.Geometry.Kind()
		if kind != model.KindMesh && kind != model.KindBrep {
			slog.Debug("skipping object", "id", obj.ID, "type", obj.Geometry.TypeName())
			continue
		}

		tess, ok := obj.Geometry.(model.Tessellator)
		if !ok {
			slog.Debug("object cannot be tessellated", "id", obj.ID, "kind", kind)
			continue
		}

		mesh, err := tess.Tessellate()
		if err != nil {
			// partial results are still shown
			slog.Warn("tessellation failed", "id", obj.ID, "name", obj.Name, "error", err)
		}
		if mesh == nil {
			continue
		}

		layer := doc.Layers.FindIndex(obj.Attributes.LayerIndex)
		s.Meshes = append(s.Meshes, ToRenderMesh(mesh, obj.ID, layer.Color))
		s.BoundingBox.Union(obj.Geometry.BoundingBox())
	}

	s.BoundingBox.Inflate(BoxMargin)

	corners := s.BoundingBox.Corners()
	for i, c := range lightCorners {
		s.Lights[i] = Light{Color: white, Position: corners[c]}
	}

	if view, ok := doc.FirstPerspectiveView(); ok {
		slog.Debug("using saved view", "name", view.Name)
		s.Camera = ViewportCamera(view.Viewport)
	} else {
		s.Camera = DefaultCamera()
	}

	slog.Debug("scene built", "meshes", len(s.Meshes), "bbox", s.BoundingBox)
	return s
}

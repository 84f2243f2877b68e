package stl

import (
	"image/color"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
)

// Creator is the document name of STL documents
const Creator = "STL"

// LayerColor is the colour of the single layer STL documents have
var LayerColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// Solid represents a complete STL solid. Identical corner positions share
// one mesh vertex.
type Solid struct {
	Name string
	Mesh *model.Mesh

	index map[geometry.Vector3]int
}

// NewSolid creates an empty solid
func NewSolid(name string) *Solid {
	return &Solid{
		Name:  name,
		Mesh:  model.NewMesh(),
		index: make(map[geometry.Vector3]int),
	}
}

// AddTriangle adds a triangle to the solid. The stored facet normal is
// ignored; normals are recomputed from the geometry.
func (s *Solid) AddTriangle(triangle geometry.Triangle) {
	s.Mesh.AddTriangle(s.vertex(triangle.V1), s.vertex(triangle.V2), s.vertex(triangle.V3))
}

func (s *Solid) vertex(v geometry.Vector3) int {
	if i, ok := s.index[v]; ok {
		return i
	}
	i := s.Mesh.AddVertex(v)
	s.index[v] = i
	return i
}

// TriangleCount returns the number of triangles in the solid
func (s *Solid) TriangleCount() int {
	return len(s.Mesh.Faces)
}

// BoundingBox calculates the bounding box of the entire solid
func (s *Solid) BoundingBox() geometry.BoundingBox {
	return s.Mesh.BoundingBox()
}

// Document wraps the solid into a document with one layer and one object
func (s *Solid) Document() *model.Document {
	doc := model.NewDocument(Creator)
	doc.Layers = model.Layers{{Name: "Default", Color: LayerColor}}
	doc.AddObject(&model.Object{
		Name:     s.Name,
		Geometry: s.Mesh,
	})
	return doc
}

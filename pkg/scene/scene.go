// Package scene turns a loaded document into what a viewport draws: flat
// coloured render meshes, four point lights and a camera.
package scene

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
)

// RenderMesh is a fully triangulated, vertex expanded mesh. Every triangle
// owns its three positions; Indices is the trivial 0..N-1 sequence.
type RenderMesh struct {
	ObjectID     uuid.UUID
	Positions    []geometry.Vector3
	Normals      []geometry.Vector3
	Indices      []uint32
	Material     color.RGBA
	BackMaterial color.RGBA
}

// TriangleCount returns the number of triangles
func (r *RenderMesh) TriangleCount() int {
	return len(r.Positions) / 3
}

// Triangle returns triangle i with its face normal
func (r *RenderMesh) Triangle(i int) geometry.Triangle {
	v1, v2, v3 := r.Positions[i*3], r.Positions[i*3+1], r.Positions[i*3+2]
	t := geometry.NewTriangle(geometry.Vector3{}, v1, v2, v3)
	t.Normal = t.CalculateNormal()
	return t
}

// BoundingBox returns the extent of all positions
func (r *RenderMesh) BoundingBox() geometry.BoundingBox {
	return geometry.NewBoundingBoxFromPoints(r.Positions...)
}

// Light is a white point light
type Light struct {
	Color    color.RGBA
	Position geometry.Vector3
}

// Scene is built once per load and not modified afterwards, except for the
// camera which interactions move in place.
type Scene struct {
	Document    *model.Document
	BoundingBox geometry.BoundingBox
	Meshes      []*RenderMesh
	Lights      [4]Light
	Camera      *Camera
}

// Properties returns the document summary lines
func (s *Scene) Properties() []string {
	return s.Document.Properties()
}

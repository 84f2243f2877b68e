package model

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gopreview/pkg/geometry"
)

// BrepFace is one trimmed surface of a boundary representation solid
type BrepFace interface {
	RenderMesh() (*Mesh, error)
	BoundingBox() geometry.BoundingBox
}

// Brep is a solid described by its faces
type Brep struct {
	Faces []BrepFace
}

func (b *Brep) Kind() GeometryKind { return KindBrep }

func (b *Brep) TypeName() string { return "Brep" }

// BoundingBox returns the union of all face extents
func (b *Brep) BoundingBox() geometry.BoundingBox {
	bbox := geometry.EmptyBoundingBox()
	for _, f := range b.Faces {
		bbox.Union(f.BoundingBox())
	}
	return bbox
}

// Tessellate meshes every face and joins the results into one mesh with
// fresh normals. Faces that fail are left out; their errors are joined into
// the returned error next to the partial mesh.
func (b *Brep) Tessellate() (*Mesh, error) {
	mesh := NewMesh()
	var errs []error
	for i, face := range b.Faces {
		fm, err := face.RenderMesh()
		if err != nil {
			errs = append(errs, fmt.Errorf("face %d: %w", i, err))
			continue
		}
		mesh.Append(fm)
	}

	mesh.Compact()
	mesh.ComputeNormals()
	return mesh, errors.Join(errs...)
}

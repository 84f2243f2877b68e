package scene

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
)

// Volume is an axis aligned box given by its center and extents
type Volume struct {
	Center geometry.Vector3
	Size   geometry.Vector3
}

// ToVolume converts a bounding box into a render volume
func ToVolume(bbox geometry.BoundingBox) Volume {
	return Volume{Center: bbox.Center(), Size: bbox.Size()}
}

// ToRenderMesh triangulates mesh in place (quads split, unused vertices
// dropped, normals recomputed) and expands it into a render mesh tagged
// with objectID.
func ToRenderMesh(mesh *model.Mesh, objectID uuid.UUID, material color.RGBA) *RenderMesh {
	mesh.ConvertQuadsToTriangles()
	mesh.Compact()
	mesh.ComputeNormals()

	rm := &RenderMesh{
		ObjectID:     objectID,
		Positions:    make([]geometry.Vector3, 0, len(mesh.Faces)*3),
		Normals:      make([]geometry.Vector3, 0, len(mesh.Faces)*3),
		Indices:      make([]uint32, 0, len(mesh.Faces)*3),
		Material:     material,
		BackMaterial: color.RGBA{A: 255},
	}

	for i, f := range mesh.Faces {
		a, b, c, _, ok := mesh.FaceVertices(i)
		if !ok {
			continue
		}
		rm.Positions = append(rm.Positions, a, b, c)
		rm.Normals = append(rm.Normals, mesh.Normals[f.A], mesh.Normals[f.B], mesh.Normals[f.C])
	}
	for i := range rm.Positions {
		rm.Indices = append(rm.Indices, uint32(i))
	}
	return rm
}

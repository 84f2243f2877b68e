// Package solid provides boundary representation faces backed by signed
// distance fields. A face's surface is meshed with marching cubes when the
// viewer asks for its render mesh.
package solid

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
)

// DefaultCells is the marching cubes resolution along the longest axis
const DefaultCells = 64

// ErrEmptySurface is returned when meshing a face yields no triangles
var ErrEmptySurface = errors.New("empty surface")

// Face is one surface of a solid
type Face struct {
	SDF   sdf.SDF3
	Cells int
}

var _ model.BrepFace = (*Face)(nil)

// NewFace creates a face meshed at DefaultCells
func NewFace(s sdf.SDF3) *Face {
	return &Face{SDF: s, Cells: DefaultCells}
}

// RenderMesh meshes the face surface. Identical corner positions share a
// vertex.
func (f *Face) RenderMesh() (*model.Mesh, error) {
	if f.SDF == nil {
		return nil, ErrEmptySurface
	}
	if f.Cells <= 0 {
		return nil, fmt.Errorf("invalid mesh resolution %d", f.Cells)
	}

	triangles := render.ToTriangles(f.SDF, render.NewMarchingCubesUniform(f.Cells))
	if len(triangles) == 0 {
		return nil, ErrEmptySurface
	}

	mesh := model.NewMesh()
	index := make(map[v3.Vec]int, len(triangles))
	vertex := func(v v3.Vec) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := mesh.AddVertex(geometry.NewVector3(v.X, v.Y, v.Z))
		index[v] = i
		return i
	}

	for _, tri := range triangles {
		mesh.AddTriangle(vertex(tri[0]), vertex(tri[1]), vertex(tri[2]))
	}
	return mesh, nil
}

// BoundingBox returns the extent of the distance field
func (f *Face) BoundingBox() geometry.BoundingBox {
	if f.SDF == nil {
		return geometry.EmptyBoundingBox()
	}
	bb := f.SDF.BoundingBox()
	return geometry.BoundingBox{
		Min: geometry.NewVector3(bb.Min.X, bb.Min.Y, bb.Min.Z),
		Max: geometry.NewVector3(bb.Max.X, bb.Max.Y, bb.Max.Z),
	}
}

func vec(v geometry.Vector3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Box creates a box of the given size centered on the origin
func Box(size geometry.Vector3, round float64) (sdf.SDF3, error) {
	s, err := sdf.Box3D(vec(size), round)
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	return s, nil
}

// Sphere creates a sphere centered on the origin
func Sphere(radius float64) (sdf.SDF3, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	return s, nil
}

// Cylinder creates a cylinder along Z centered on the origin
func Cylinder(height, radius, round float64) (sdf.SDF3, error) {
	s, err := sdf.Cylinder3D(height, radius, round)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	return s, nil
}

// Place rotates s by Euler angles in degrees (X, then Y, then Z) and then
// moves it by translate.
func Place(s sdf.SDF3, translate, rotate geometry.Vector3) sdf.SDF3 {
	if !rotate.IsZero() {
		m := sdf.RotateZ(geometry.ToRadians(rotate.Z)).
			Mul(sdf.RotateY(geometry.ToRadians(rotate.Y))).
			Mul(sdf.RotateX(geometry.ToRadians(rotate.X)))
		s = sdf.Transform3D(s, m)
	}
	if !translate.IsZero() {
		s = sdf.Transform3D(s, sdf.Translate3d(vec(translate)))
	}
	return s
}

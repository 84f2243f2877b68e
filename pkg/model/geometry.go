package model

import "github.com/philipparndt/gopreview/pkg/geometry"

// GeometryKind tags the payload of an object
type GeometryKind int

const (
	KindOther GeometryKind = iota
	KindMesh
	KindBrep
)

func (k GeometryKind) String() string {
	switch k {
	case KindMesh:
		return "Mesh"
	case KindBrep:
		return "Brep"
	default:
		return "Other"
	}
}

// Geometry is the payload of an object
type Geometry interface {
	Kind() GeometryKind
	TypeName() string
	BoundingBox() geometry.BoundingBox
}

// Tessellator is implemented by displayable geometry. Meshes return a copy
// of themselves, breps mesh their faces.
type Tessellator interface {
	Tessellate() (*Mesh, error)
}

// Other is geometry the viewer cannot display (curves, points, instance
// references, ...). It only carries its type name and extent.
type Other struct {
	Type   string
	Bounds geometry.BoundingBox
}

func (o *Other) Kind() GeometryKind { return KindOther }

func (o *Other) TypeName() string { return o.Type }

func (o *Other) BoundingBox() geometry.BoundingBox { return o.Bounds }

package scene

import (
	"errors"
	"image/color"
	"testing"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{R: 255, A: 255}

// cube returns an axis aligned cube mesh made of quads
func cube(min, max geometry.Vector3) *model.Mesh {
	m := model.NewMesh()
	for _, c := range geometry.NewBoundingBoxFromPoints(min, max).Corners() {
		m.AddVertex(c)
	}
	m.AddQuad(0, 3, 2, 1) // bottom
	m.AddQuad(4, 5, 6, 7) // top
	m.AddQuad(0, 1, 5, 4)
	m.AddQuad(1, 2, 6, 5)
	m.AddQuad(2, 3, 7, 6)
	m.AddQuad(3, 0, 4, 7)
	return m
}

type face struct {
	mesh *model.Mesh
	err  error
}

func (f face) RenderMesh() (*model.Mesh, error) { return f.mesh, f.err }

func (f face) BoundingBox() geometry.BoundingBox {
	if f.mesh == nil {
		return geometry.EmptyBoundingBox()
	}
	return f.mesh.BoundingBox()
}

func TestBuildEmptyDocument(t *testing.T) {
	s := Build(model.NewDocument("empty"))

	assert.Empty(t, s.Meshes)
	assertVector(t, geometry.NewVector3(-2, -2, -2), s.BoundingBox.Min)
	assertVector(t, geometry.NewVector3(2, 2, 2), s.BoundingBox.Max)

	require.NotNil(t, s.Camera)
	assertVector(t, geometry.NewVector3(0, 0, 2), s.Camera.Position)
	assertVector(t, geometry.NewVector3(0, 0, -1), s.Camera.Look)
	assert.Equal(t, 60.0, s.Camera.FieldOfView)
}

func TestBuildSingleRedMesh(t *testing.T) {
	doc := model.NewDocument("test")
	doc.Layers = model.Layers{{Name: "Red", Color: red}}
	doc.AddObject(&model.Object{
		Name:     "cube",
		Geometry: cube(geometry.NewVector3(-1, -1, -1), geometry.NewVector3(1, 1, 1)),
	})

	s := Build(doc)

	assertVector(t, geometry.NewVector3(-3, -3, -3), s.BoundingBox.Min)
	assertVector(t, geometry.NewVector3(3, 3, 3), s.BoundingBox.Max)

	require.Len(t, s.Meshes, 1)
	rm := s.Meshes[0]
	assert.Equal(t, red, rm.Material)
	assert.Equal(t, color.RGBA{A: 255}, rm.BackMaterial)
	assert.Equal(t, doc.Objects[0].ID, rm.ObjectID)
	assert.Equal(t, 12, rm.TriangleCount())
	assert.Len(t, rm.Positions, 36)
}

func TestBuildDoesNotMutateDocument(t *testing.T) {
	mesh := cube(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1))
	doc := model.NewDocument("test")
	doc.AddObject(&model.Object{Geometry: mesh})

	Build(doc)

	assert.Equal(t, 6, mesh.QuadCount())
	assert.Empty(t, mesh.Normals)
}

func TestBuildSkipsOtherGeometry(t *testing.T) {
	doc := model.NewDocument("test")
	doc.AddObject(&model.Object{Name: "curve", Geometry: &model.Other{
		Type: "Curve",
		Bounds: geometry.BoundingBox{
			Min: geometry.NewVector3(-100, -100, -100),
			Max: geometry.NewVector3(100, 100, 100),
		},
	}})
	doc.AddObject(&model.Object{Name: "empty"})
	doc.AddObject(&model.Object{
		Name:     "cube",
		Geometry: cube(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1)),
	})

	s := Build(doc)

	require.Len(t, s.Meshes, 1)
	assert.Equal(t, doc.Objects[2].ID, s.Meshes[0].ObjectID)
	// skipped objects do not contribute to the bounds
	assertVector(t, geometry.NewVector3(-2, -2, -2), s.BoundingBox.Min)
	assertVector(t, geometry.NewVector3(3, 3, 3), s.BoundingBox.Max)
}

func TestBuildBrep(t *testing.T) {
	doc := model.NewDocument("test")
	doc.Layers = model.Layers{{Name: "Default"}, {Name: "Red", Color: red}}
	doc.AddObject(&model.Object{
		Geometry: &model.Brep{Faces: []model.BrepFace{
			face{mesh: cube(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1))},
			face{err: errors.New("bad trim")},
			face{mesh: cube(geometry.NewVector3(2, 0, 0), geometry.NewVector3(3, 1, 1))},
		}},
		Attributes: model.Attributes{LayerIndex: 1},
	})

	s := Build(doc)

	require.Len(t, s.Meshes, 1, "faces are merged into one mesh")
	rm := s.Meshes[0]
	assert.Equal(t, red, rm.Material)
	assert.Equal(t, 24, rm.TriangleCount())
	assertVector(t, geometry.NewVector3(-2, -2, -2), s.BoundingBox.Min)
	assertVector(t, geometry.NewVector3(5, 3, 3), s.BoundingBox.Max)
}

func TestBuildMissingLayerUsesDefault(t *testing.T) {
	doc := model.NewDocument("test")
	doc.AddObject(&model.Object{
		Geometry:   cube(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1)),
		Attributes: model.Attributes{LayerIndex: 7},
	})

	s := Build(doc)
	require.Len(t, s.Meshes, 1)
	assert.Equal(t, model.DefaultLayer.Color, s.Meshes[0].Material)
}

func TestBuildLights(t *testing.T) {
	doc := model.NewDocument("test")
	doc.AddObject(&model.Object{
		Geometry: cube(geometry.NewVector3(-1, -1, -1), geometry.NewVector3(1, 1, 1)),
	})

	s := Build(doc)

	want := []geometry.Vector3{
		geometry.NewVector3(-3, -3, 3),
		geometry.NewVector3(3, -3, 3),
		geometry.NewVector3(-3, 3, 3),
		geometry.NewVector3(3, 3, 3),
	}
	for i, l := range s.Lights {
		assertVector(t, want[i], l.Position, "light %d", i)
		assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, l.Color)
	}
}

func TestBuildUsesFirstPerspectiveView(t *testing.T) {
	doc := model.NewDocument("test")
	doc.Views = []model.View{
		{Name: "Top", Viewport: model.Viewport{
			CameraLocation:  geometry.NewVector3(0, 0, 50),
			CameraDirection: geometry.NewVector3(0, 0, -1),
			CameraUp:        geometry.NewVector3(0, 1, 0),
		}},
		{Name: "Perspective", Viewport: model.Viewport{
			Perspective:     true,
			CameraLocation:  geometry.NewVector3(10, -10, 10),
			CameraDirection: geometry.NewVector3(-1, 1, -1),
			CameraUp:        geometry.NewVector3(0, 0, 1),
		}},
		{Name: "Other", Viewport: model.Viewport{Perspective: true}},
	}

	s := Build(doc)

	assertVector(t, geometry.NewVector3(10, -10, 10), s.Camera.Position)
	assertVector(t, geometry.NewVector3(-1, 1, -1), s.Camera.Look)
	assertVector(t, geometry.NewVector3(0, 0, 1), s.Camera.Up)
	assert.Equal(t, DefaultFieldOfView, s.Camera.FieldOfView)
}

func TestSceneProperties(t *testing.T) {
	doc := model.NewDocument("Rhino 7")
	doc.Layers = model.Layers{{Name: "a"}, {Name: "b"}}
	doc.InstanceDefinitions = 3
	doc.AddObject(&model.Object{Geometry: &model.Other{Type: "Point"}})

	assert.Equal(t, []string{
		"Name: Rhino 7",
		"Layer Count: 2",
		"Object Count: 1",
		"Blockdefinition Count: 3",
	}, Build(doc).Properties())
}

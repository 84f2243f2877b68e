package threemf

import (
	"context"
	"encoding/xml"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/hpinc/go3mf"
	"github.com/philipparndt/gopreview/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blue = color.RGBA{B: 255, A: 255}

func tetraMesh() *go3mf.Mesh {
	return &go3mf.Mesh{
		Vertices: go3mf.Vertices{Vertex: []go3mf.Point3D{
			{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {0, 0, 10},
		}},
		Triangles: go3mf.Triangles{Triangle: []go3mf.Triangle{
			{V1: 0, V2: 2, V3: 1},
			{V1: 0, V2: 1, V3: 3},
			{V1: 0, V2: 3, V3: 2},
			{V1: 1, V2: 2, V3: 3},
		}},
	}
}

func testModel() *go3mf.Model {
	return &go3mf.Model{
		Metadata: []go3mf.Metadata{{Name: xml.Name{Local: "Application"}, Value: "Slicer 2.7"}},
		Resources: go3mf.Resources{
			Assets: []go3mf.Asset{&go3mf.BaseMaterials{ID: 5, Materials: []go3mf.Base{
				{Name: "Red PLA", Color: color.RGBA{R: 255, A: 255}},
				{Name: "Blue PLA", Color: blue},
			}}},
			Objects: []*go3mf.Object{
				{ID: 1, Name: "tetra", PID: 5, PIndex: 1, Mesh: tetraMesh()},
				{ID: 2, Mesh: tetraMesh()},
				{ID: 3, Name: "assembly"},
			},
		},
		Build: go3mf.Build{Items: []*go3mf.Item{{ObjectID: 1}, {ObjectID: 2}, {ObjectID: 3}}},
	}
}

// assemblyModel places mesh 1 through component object 2
func assemblyModel() *go3mf.Model {
	return &go3mf.Model{
		Resources: go3mf.Resources{Objects: []*go3mf.Object{
			{ID: 1, Name: "tetra", Mesh: tetraMesh()},
			{ID: 2, Name: "bracket", Components: &go3mf.Components{Component: []*go3mf.Component{
				{ObjectID: 1, Transform: go3mf.Identity().Translate(100, 0, 0)},
			}}},
		}},
		Build: go3mf.Build{Items: []*go3mf.Item{
			{ObjectID: 2, Transform: go3mf.Identity().Translate(0, 50, 0)},
		}},
	}
}

func TestConvert(t *testing.T) {
	doc := Convert(testModel(), "part.3mf")

	assert.Equal(t, "Slicer 2.7", doc.Name)
	require.Len(t, doc.Layers, 2)
	require.Len(t, doc.Objects, 3)
	assert.Equal(t, 0, doc.InstanceDefinitions)

	tetra := doc.Objects[0]
	assert.Equal(t, "tetra", tetra.Name)
	assert.Equal(t, blue, doc.Layers.FindIndex(tetra.Attributes.LayerIndex).Color)
	assert.Equal(t, model.KindMesh, tetra.Geometry.Kind())

	mesh := tetra.Geometry.(*model.Mesh)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, 4, mesh.TriangleCount())
	assert.InDelta(t, 10.0, mesh.BoundingBox().Max.Z, 1e-6)

	assert.Equal(t, "Object 2", doc.Objects[1].Name)
	assert.Equal(t, 0, doc.Objects[1].Attributes.LayerIndex)

	assert.Equal(t, model.KindOther, doc.Objects[2].Geometry.Kind())
	assert.Equal(t, AssemblyType, doc.Objects[2].Geometry.TypeName())
}

func TestConvertAppliesItemAndComponentTransforms(t *testing.T) {
	doc := Convert(assemblyModel(), "bracket.3mf")

	require.Len(t, doc.Objects, 1)
	assert.Equal(t, 1, doc.InstanceDefinitions)
	assert.Equal(t, "bracket", doc.Objects[0].Name)

	box := doc.Objects[0].Geometry.(*model.Mesh).BoundingBox()
	assert.InDelta(t, 100.0, box.Min.X, 1e-6)
	assert.InDelta(t, 50.0, box.Min.Y, 1e-6)
	assert.InDelta(t, 0.0, box.Min.Z, 1e-6)
	assert.InDelta(t, 110.0, box.Max.X, 1e-6)
	assert.InDelta(t, 60.0, box.Max.Y, 1e-6)
	assert.InDelta(t, 10.0, box.Max.Z, 1e-6)
}

func TestConvertPlacesObjectPerBuildItem(t *testing.T) {
	m := &go3mf.Model{
		Resources: go3mf.Resources{Objects: []*go3mf.Object{{ID: 1, Name: "tetra", Mesh: tetraMesh()}}},
		Build: go3mf.Build{Items: []*go3mf.Item{
			{ObjectID: 1},
			{ObjectID: 1, Transform: go3mf.Identity().Translate(20, 0, 0)},
			{ObjectID: 9},
		}},
	}
	doc := Convert(m, "twice.3mf")

	require.Len(t, doc.Objects, 2)
	assert.NotEqual(t, doc.Objects[0].ID, doc.Objects[1].ID)
	assert.InDelta(t, 0.0, doc.Objects[0].Geometry.(*model.Mesh).BoundingBox().Min.X, 1e-6)
	assert.InDelta(t, 20.0, doc.Objects[1].Geometry.(*model.Mesh).BoundingBox().Min.X, 1e-6)
	assert.Equal(t, 0, doc.InstanceDefinitions)
}

func TestConvertCyclicComponentsTerminate(t *testing.T) {
	m := &go3mf.Model{
		Resources: go3mf.Resources{Objects: []*go3mf.Object{
			{ID: 1, Components: &go3mf.Components{Component: []*go3mf.Component{{ObjectID: 2}}}},
			{ID: 2, Components: &go3mf.Components{Component: []*go3mf.Component{{ObjectID: 1}}}},
		}},
		Build: go3mf.Build{Items: []*go3mf.Item{{ObjectID: 1}}},
	}
	doc := Convert(m, "loop.3mf")

	require.Len(t, doc.Objects, 1)
	assert.Equal(t, model.KindOther, doc.Objects[0].Geometry.Kind())
	assert.Equal(t, 2, doc.InstanceDefinitions)
}

func TestConvertWithoutBuildItems(t *testing.T) {
	m := testModel()
	m.Build.Items = nil
	doc := Convert(m, "part.3mf")

	require.Len(t, doc.Objects, 2)
	assert.Equal(t, "tetra", doc.Objects[0].Name)
	assert.Equal(t, "Object 2", doc.Objects[1].Name)
}

func TestConvertStableIDs(t *testing.T) {
	a := Convert(testModel(), "part.3mf")
	b := Convert(testModel(), "part.3mf")
	c := Convert(testModel(), "other.3mf")

	assert.Equal(t, a.Objects[0].ID, b.Objects[0].ID)
	assert.NotEqual(t, a.Objects[0].ID, a.Objects[1].ID)
	assert.NotEqual(t, a.Objects[0].ID, c.Objects[0].ID)
}

func TestConvertWithoutMaterials(t *testing.T) {
	m := &go3mf.Model{
		Resources: go3mf.Resources{Objects: []*go3mf.Object{{ID: 1, Mesh: tetraMesh()}}},
		Build:     go3mf.Build{Items: []*go3mf.Item{{ObjectID: 1}}},
	}
	doc := Convert(m, "x.3mf")

	assert.Equal(t, Creator, doc.Name)
	require.Len(t, doc.Layers, 1)
	assert.Equal(t, DefaultColor, doc.Layers[0].Color)
}

func TestLoadWrittenPackage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.3mf")

	m := assemblyModel()
	w, err := go3mf.CreateWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Encode(m))
	require.NoError(t, w.Close())

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Objects, 1)
	assert.Equal(t, "bracket", doc.Objects[0].Name)
	mesh := doc.Objects[0].Geometry.(*model.Mesh)
	assert.Equal(t, 4, mesh.TriangleCount())
	assert.InDelta(t, 110.0, mesh.BoundingBox().Max.X, 1e-6)
	assert.InDelta(t, 60.0, mesh.BoundingBox().Max.Y, 1e-6)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.3mf"))
	assert.Error(t, err)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, "irrelevant.3mf")
	assert.ErrorIs(t, err, context.Canceled)
}

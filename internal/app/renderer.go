package app

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/scene"
	"github.com/philipparndt/gopreview/pkg/viewer"
)

// meshArrays is the CPU side of a raylib mesh
type meshArrays struct {
	vertices  []float32
	normals   []float32
	texcoords []float32
	colors    []uint8
}

func (m *meshArrays) add(v, n geometry.Vector3, c color.RGBA) {
	m.vertices = append(m.vertices, float32(v.X), float32(v.Y), float32(v.Z))
	m.normals = append(m.normals, float32(n.X), float32(n.Y), float32(n.Z))
	m.texcoords = append(m.texcoords, 0, 0)
	m.colors = append(m.colors, c.R, c.G, c.B, c.A)
}

// vertexCount returns the number of vertices added
func (m *meshArrays) vertexCount() int {
	return len(m.vertices) / 3
}

// buildMeshArrays bakes the scene lighting into vertex colours. Each
// triangle is emitted twice: once as is with the lit material, and once
// reversed with the back material, since raylib culls back faces.
func buildMeshArrays(mesh *scene.RenderMesh, lights [4]scene.Light, highlighted bool) *meshArrays {
	n := mesh.TriangleCount()
	arrays := &meshArrays{
		vertices:  make([]float32, 0, n*18),
		normals:   make([]float32, 0, n*18),
		texcoords: make([]float32, 0, n*12),
		colors:    make([]uint8, 0, n*24),
	}

	material := mesh.Material
	if highlighted {
		material = viewer.Highlight(material)
	}

	for i := 0; i < n; i++ {
		tri := mesh.Triangle(i)
		front := viewer.Shade(material, tri, lights)
		arrays.add(tri.V1, tri.Normal, front)
		arrays.add(tri.V2, tri.Normal, front)
		arrays.add(tri.V3, tri.Normal, front)

		back := tri.Normal.Neg()
		arrays.add(tri.V1, back, mesh.BackMaterial)
		arrays.add(tri.V3, back, mesh.BackMaterial)
		arrays.add(tri.V2, back, mesh.BackMaterial)
	}
	return arrays
}

// uploadMesh converts arrays to a raylib mesh and uploads it to the GPU
func uploadMesh(arrays *meshArrays) rl.Mesh {
	count := arrays.vertexCount()
	mesh := rl.Mesh{
		VertexCount:   int32(count),
		TriangleCount: int32(count / 3),
	}
	if count == 0 {
		return mesh
	}

	mesh.Vertices = &arrays.vertices[0]
	mesh.Normals = &arrays.normals[0]
	mesh.Texcoords = &arrays.texcoords[0]
	mesh.Colors = &arrays.colors[0]

	rl.UploadMesh(&mesh, false)
	return mesh
}

// uploadScene uploads every render mesh of the current scene
func (app *App) uploadScene() {
	app.unloadMeshes()
	s := app.Model.scene
	app.Model.meshes = make([]rl.Mesh, len(s.Meshes))
	app.Model.edges = nil
	for i, m := range s.Meshes {
		app.Model.meshes[i] = uploadMesh(buildMeshArrays(m, s.Lights, i == app.Interaction.highlighted))
		app.Model.edges = append(app.Model.edges, uniqueEdges(m)...)
	}
}

// reuploadMesh replaces the GPU mesh at index i, e.g. after the highlight
// moved
func (app *App) reuploadMesh(i int) {
	if i < 0 || i >= len(app.Model.meshes) {
		return
	}
	s := app.Model.scene
	old := app.Model.meshes[i]
	app.Model.meshes[i] = uploadMesh(buildMeshArrays(s.Meshes[i], s.Lights, i == app.Interaction.highlighted))
	if old.VertexCount > 0 {
		rl.UnloadMesh(&old)
	}
}

func (app *App) unloadMeshes() {
	for i := range app.Model.meshes {
		if app.Model.meshes[i].VertexCount > 0 {
			rl.UnloadMesh(&app.Model.meshes[i])
		}
	}
	app.Model.meshes = nil
}

// drawScene draws all meshes in 3D mode
func (app *App) drawScene() {
	rl.BeginMode3D(app.camera())
	for _, m := range app.Model.meshes {
		if m.VertexCount > 0 {
			rl.DrawMesh(m, app.Model.material, rl.MatrixIdentity())
		}
	}
	if app.View.showWireframe {
		app.drawWireframe()
	}
	rl.EndMode3D()
}

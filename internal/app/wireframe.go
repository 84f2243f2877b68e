package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/scene"
)

var wireframeColor = rl.NewColor(100, 100, 100, 200)

type edge [2]geometry.Vector3

// uniqueEdges returns the triangle edges of mesh, each shared edge once
func uniqueEdges(mesh *scene.RenderMesh) []edge {
	seen := make(map[edge]bool)
	var edges []edge

	for i := 0; i < mesh.TriangleCount(); i++ {
		tri := mesh.Triangle(i)
		for _, e := range []edge{{tri.V1, tri.V2}, {tri.V2, tri.V3}, {tri.V3, tri.V1}} {
			if less(e[1], e[0]) {
				e[0], e[1] = e[1], e[0]
			}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}

func less(a, b geometry.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// drawWireframe draws the edges collected at upload as lines
func (app *App) drawWireframe() {
	for _, e := range app.Model.edges {
		rl.DrawLine3D(toRaylib(e[0]), toRaylib(e[1]), wireframeColor)
	}
}

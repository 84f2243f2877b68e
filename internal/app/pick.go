package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopreview/pkg/scene"
	"github.com/philipparndt/gopreview/pkg/viewer"
	"github.com/samber/lo"
)

// rayHitTester casts raylib mouse rays into the scene
type rayHitTester struct {
	app *App
}

var _ viewer.HitTester = rayHitTester{}

func (h rayHitTester) HitTest(x, y float64) (*scene.RenderMesh, bool) {
	ray := rl.GetMouseRay(rl.Vector2{X: float32(x), Y: float32(y)}, h.app.camera())
	mesh, _, ok := viewer.NearestHit(h.app.Model.scene.Meshes, fromRaylib(ray.Position), fromRaylib(ray.Direction))
	return mesh, ok
}

// pick selects the object under the mouse and moves the highlight to it
func (app *App) pick(pos rl.Vector2) {
	if !app.Interaction.picker.Pick(float64(pos.X), float64(pos.Y)) {
		return
	}

	id := app.Interaction.picker.Selection.ObjectID
	_, index, _ := lo.FindIndexOf(app.Model.scene.Meshes, func(m *scene.RenderMesh) bool {
		return m.ObjectID == id
	})

	previous := app.Interaction.highlighted
	app.Interaction.highlighted = index
	if previous != index {
		app.reuploadMesh(previous)
		app.reuploadMesh(index)
	}
}

package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/scene"
)

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRaylib(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}

// verticalFieldOfView converts a horizontal field of view in degrees to
// the vertical one raylib expects, for a width/height aspect ratio.
func verticalFieldOfView(horizontal, aspect float64) float64 {
	if aspect <= 0 {
		return horizontal
	}
	half := geometry.ToRadians(horizontal) / 2
	return geometry.ToDegrees(2 * math.Atan(math.Tan(half)/aspect))
}

// toRaylibCamera maps a scene camera onto a raylib perspective camera
func toRaylibCamera(c *scene.Camera, aspect float64) rl.Camera3D {
	return rl.Camera3D{
		Position:   toRaylib(c.Position),
		Target:     toRaylib(c.Position.Add(c.Look)),
		Up:         toRaylib(c.Up),
		Fovy:       float32(verticalFieldOfView(c.FieldOfView, aspect)),
		Projection: rl.CameraPerspective,
	}
}

// camera returns the raylib camera for the current window size
func (app *App) camera() rl.Camera3D {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	aspect := 1.0
	if h > 0 {
		aspect = w / h
	}
	return toRaylibCamera(app.Model.scene.Camera, aspect)
}

// resetCameraView restores the camera the scene was built with
func (app *App) resetCameraView() {
	app.Model.scene.Camera = app.Model.home.Clone()
}

package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// wheelNotch is the delta one wheel notch zooms by
const wheelNotch = 120

// clickTolerance is how far the mouse may move between press and release
// for a left click to still pick
const clickTolerance = 3

// handleInput processes user input
func (app *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyI) {
		app.View.showOverlay = !app.View.showOverlay
	}
	if rl.IsKeyPressed(rl.KeyR) {
		app.FileWatch.needsReload.Store(true)
	}

	app.handleModifiers()
	app.handleMouse()
}

// handleModifiers replays key presses into the interaction. Any key other
// than shift clears the shift modifier.
func (app *App) handleModifiers() {
	in := &app.Interaction.interaction
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		in.KeyDown(key == rl.KeyLeftShift || key == rl.KeyRightShift)
	}
	if rl.IsKeyReleased(rl.KeyLeftShift) || rl.IsKeyReleased(rl.KeyRightShift) {
		in.KeyUp()
	}
}

func (app *App) handleMouse() {
	s := app.Model.scene
	pos := rl.GetMousePosition()

	// only feed actual moves: a held drag keeps stepping on every move event
	if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
		secondary := rl.IsMouseButtonDown(rl.MouseRightButton)
		if err := app.Interaction.interaction.PointerMoved(s.Camera, s.BoundingBox, float64(pos.X), float64(pos.Y), secondary); err != nil {
			slog.Warn("camera move failed", "error", err)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.Interaction.interaction.Wheel(s.Camera, float64(wheel)*wheelNotch)
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = pos
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if rl.Vector2Distance(pos, app.Interaction.mouseDownPos) <= clickTolerance {
			app.pick(pos)
		}
	}
}

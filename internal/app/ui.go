package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopreview/version"
)

const (
	fontSize   = 14
	lineHeight = 18
	padding    = 10
)

var (
	textColor  = rl.NewColor(230, 230, 230, 255)
	panelColor = rl.NewColor(0, 0, 0, 160)
)

// drawPanel draws lines of text on a translucent box at (x, y)
func drawPanel(lines []string, x, y int32, color rl.Color) {
	if len(lines) == 0 {
		return
	}
	width := int32(0)
	for _, line := range lines {
		width = max(width, rl.MeasureText(line, fontSize))
	}
	height := int32(len(lines)) * lineHeight

	rl.DrawRectangle(x, y, width+2*padding, height+2*padding, panelColor)
	for i, line := range lines {
		rl.DrawText(line, x+padding, y+padding+int32(i)*lineHeight, fontSize, color)
	}
}

// drawUI draws the property overlays and status
func (app *App) drawUI() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	if app.View.showOverlay {
		drawPanel(app.Model.scene.Properties(), padding, padding, textColor)

		if sel := app.Interaction.picker.Selection; sel.Valid {
			width := int32(0)
			for _, line := range sel.Properties {
				width = max(width, rl.MeasureText(line, fontSize))
			}
			drawPanel(sel.Properties, screenWidth-width-3*padding, padding, rl.Yellow)
		}
	}

	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		text := fmt.Sprintf("Loading... (%.1fs)", elapsed)
		drawPanel([]string{text}, screenWidth/2-80, padding, rl.SkyBlue)
	}

	if err := app.FileWatch.lastError; err != nil {
		drawPanel([]string{err.Error()}, padding, screenHeight-lineHeight-5*padding, rl.Red)
	}

	help := fmt.Sprintf("GoPreview %s  |  RMB orbit  Shift+RMB pan  Wheel zoom  LMB pick  Home reset  W wireframe  I info  R reload",
		version.GetVersion())
	rl.DrawText(help, padding, screenHeight-lineHeight, 12, rl.Gray)
}

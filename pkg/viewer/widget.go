package viewer

import (
	"image"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gopreview/pkg/scene"
)

// Viewport is a fyne widget showing a scene. Secondary-button drags orbit
// (pan with shift), the wheel zooms and a tap picks an object.
type Viewport struct {
	widget.BaseWidget

	scene         *scene.Scene
	picker        *Picker
	interaction   Interaction
	secondaryDown bool
	options       RenderOptions
	raster        *canvas.Raster
	onSelect      func(Selection)
}

var (
	_ desktop.Mouseable = (*Viewport)(nil)
	_ desktop.Hoverable = (*Viewport)(nil)
	_ desktop.Keyable   = (*Viewport)(nil)
	_ fyne.Scrollable   = (*Viewport)(nil)
	_ fyne.Tappable     = (*Viewport)(nil)
)

// NewViewport creates a viewport for s. s may be nil until SetScene.
func NewViewport(s *scene.Scene) *Viewport {
	v := &Viewport{options: DefaultRenderOptions(0, 0)}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	v.SetScene(s)
	return v
}

// SetScene replaces the scene. The selection is cleared.
func (v *Viewport) SetScene(s *scene.Scene) {
	v.scene = s
	if s != nil {
		v.picker = NewPicker(s.Document, &viewportHitTester{v})
	} else {
		v.picker = nil
	}
	v.Refresh()
}

// Scene returns the scene shown
func (v *Viewport) Scene() *scene.Scene {
	return v.scene
}

// SetBackground sets the clear colour
func (v *Viewport) SetBackground(c color.RGBA) {
	v.options.Background = c
	v.Refresh()
}

// SetWireframe toggles drawing of triangle edges
func (v *Viewport) SetWireframe(on bool) {
	v.options.Wireframe = on
	v.Refresh()
}

// SetOnSelect sets the callback invoked when a pick changes the selection
func (v *Viewport) SetOnSelect(callback func(Selection)) {
	v.onSelect = callback
}

// Selection returns the current selection
func (v *Viewport) Selection() Selection {
	if v.picker == nil {
		return Selection{}
	}
	return v.picker.Selection
}

func (v *Viewport) draw(w, h int) image.Image {
	if v.scene == nil || w <= 0 || h <= 0 {
		return image.NewUniform(v.options.Background)
	}
	opts := v.options
	opts.Width, opts.Height = w, h
	opts.Highlight = v.selectedMesh()
	return Render(v.scene, opts)
}

func (v *Viewport) selectedMesh() *scene.RenderMesh {
	sel := v.Selection()
	if !sel.Valid {
		return nil
	}
	for _, m := range v.scene.Meshes {
		if m.ObjectID == sel.ObjectID {
			return m
		}
	}
	return nil
}

// CreateRenderer creates the renderer for the widget
func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return &viewportRenderer{viewport: v}
}

// MouseDown tracks the secondary button
func (v *Viewport) MouseDown(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonSecondary {
		v.secondaryDown = true
	}
}

// MouseUp tracks the secondary button
func (v *Viewport) MouseUp(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonSecondary {
		v.secondaryDown = false
	}
}

func (v *Viewport) MouseIn(event *desktop.MouseEvent) {
	v.MouseMoved(event)
}

// MouseMoved orbits or pans while the secondary button is held
func (v *Viewport) MouseMoved(event *desktop.MouseEvent) {
	if v.scene == nil {
		return
	}
	// the modifier state of each move wins over a missed key release
	v.interaction.KeyDown(event.Modifier&fyne.KeyModifierShift != 0)

	x, y := float64(event.Position.X), float64(event.Position.Y)
	if err := v.interaction.PointerMoved(v.scene.Camera, v.scene.BoundingBox, x, y, v.secondaryDown); err != nil {
		slog.Error("camera update failed", "error", err)
		return
	}
	if v.secondaryDown {
		v.raster.Refresh()
	}
}

func (v *Viewport) MouseOut() {
	v.secondaryDown = false
}

// KeyDown tracks the shift modifier
func (v *Viewport) KeyDown(event *fyne.KeyEvent) {
	v.interaction.KeyDown(event.Name == desktop.KeyShiftLeft || event.Name == desktop.KeyShiftRight)
}

// KeyUp clears the shift modifier
func (v *Viewport) KeyUp(*fyne.KeyEvent) {
	v.interaction.KeyUp()
}

func (v *Viewport) FocusGained() {}

func (v *Viewport) FocusLost() {
	v.interaction.KeyUp()
}

func (v *Viewport) TypedRune(rune) {}

func (v *Viewport) TypedKey(*fyne.KeyEvent) {}

// wheelScale converts fyne scroll distances (about 10 per notch) to wheel
// deltas of 120 per notch
const wheelScale = 12.0

// Scrolled zooms
func (v *Viewport) Scrolled(event *fyne.ScrollEvent) {
	if v.scene == nil {
		return
	}
	v.interaction.Wheel(v.scene.Camera, float64(event.Scrolled.DY)*wheelScale)
	v.raster.Refresh()
}

// Tapped picks the object under the pointer
func (v *Viewport) Tapped(event *fyne.PointEvent) {
	if v.picker == nil {
		return
	}
	if v.picker.Pick(float64(event.Position.X), float64(event.Position.Y)) {
		v.raster.Refresh()
		if v.onSelect != nil {
			v.onSelect(v.picker.Selection)
		}
	}
}

// viewportHitTester hit tests against the widget's current size
type viewportHitTester struct {
	viewport *Viewport
}

func (h *viewportHitTester) HitTest(x, y float64) (*scene.RenderMesh, bool) {
	size := h.viewport.Size()
	return NewRayHitTester(h.viewport.scene, float64(size.Width), float64(size.Height)).HitTest(x, y)
}

// viewportRenderer implements fyne.WidgetRenderer
type viewportRenderer struct {
	viewport *Viewport
}

func (r *viewportRenderer) Layout(size fyne.Size) {
	r.viewport.raster.Resize(size)
}

func (r *viewportRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *viewportRenderer) Refresh() {
	canvas.Refresh(r.viewport.raster)
}

func (r *viewportRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewport.raster}
}

func (r *viewportRenderer) Destroy() {}

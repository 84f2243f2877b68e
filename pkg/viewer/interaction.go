package viewer

import (
	"math"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/scene"
)

// Interaction tracks pointer and modifier state of one viewport session
// and turns pointer movement into camera steps.
//
// While the secondary button is held the reference position stays where the
// drag started, so every move event keeps stepping in the direction of the
// drag until the button is released.
type Interaction struct {
	prevX, prevY float64
	shift        bool
}

// Shift reports whether the shift modifier is currently held
func (i *Interaction) Shift() bool {
	return i.shift
}

// KeyDown records a key press. Any key other than shift clears the
// modifier.
func (i *Interaction) KeyDown(shift bool) {
	i.shift = shift
}

// KeyUp clears the shift modifier
func (i *Interaction) KeyUp() {
	i.shift = false
}

// PointerMoved handles a pointer move to (x, y). With the secondary button
// held it pans (shift) or orbits around the center of bbox one step in the
// dominant drag direction; otherwise it only remembers the position.
func (i *Interaction) PointerMoved(cam *scene.Camera, bbox geometry.BoundingBox, x, y float64, secondaryDown bool) error {
	if !secondaryDown {
		i.prevX, i.prevY = x, y
		return nil
	}

	d := DragDirection(i.prevX-x, i.prevY-y)
	if i.shift {
		return cam.Pan(d)
	}
	return cam.Orbit(d, bbox)
}

// Wheel zooms the camera by a wheel delta (120 per notch)
func (i *Interaction) Wheel(cam *scene.Camera, delta float64) {
	cam.Zoom(delta)
}

// DragDirection picks the dominant axis of a delta given as previous minus
// current position. Ties go to the vertical axis.
func DragDirection(dx, dy float64) scene.Direction {
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return scene.DirectionRight
		}
		return scene.DirectionLeft
	}
	switch {
	case dy > 0:
		return scene.DirectionUp
	case dy < 0:
		return scene.DirectionDown
	default:
		return scene.DirectionNone
	}
}

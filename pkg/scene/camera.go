package scene

import (
	"fmt"
	"math"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/model"
)

const (
	// DefaultFieldOfView is the horizontal field of view in degrees. Saved
	// views use it as well, their own lens angles are ignored.
	DefaultFieldOfView = 60.0

	// PanFactor is the distance moved per pan step
	PanFactor = 0.1

	// OrbitStep is the angle per orbit step in radians
	OrbitStep = math.Pi / 64

	// ZoomDivisor is the wheel delta that moves the camera by one look length
	ZoomDivisor = 360.0

	// targetDistance is how far ahead of the camera Target is
	targetDistance = 5.0
)

// defaultUp is the renderer's up direction for cameras that leave it unset
var defaultUp = geometry.NewVector3(0, 1, 0)

// Camera is a perspective camera. Look and Up need not be unit vectors.
type Camera struct {
	Position    geometry.Vector3
	Look        geometry.Vector3
	Up          geometry.Vector3
	FieldOfView float64 // horizontal, degrees
}

// DefaultCamera is used when the document has no perspective view
func DefaultCamera() *Camera {
	return &Camera{
		Position:    geometry.NewVector3(0, 0, 2),
		Look:        geometry.NewVector3(0, 0, -1),
		Up:          defaultUp,
		FieldOfView: DefaultFieldOfView,
	}
}

// ViewportCamera creates a camera from a saved viewport
func ViewportCamera(vp model.Viewport) *Camera {
	return &Camera{
		Position:    vp.CameraLocation,
		Look:        vp.CameraDirection,
		Up:          vp.CameraUp,
		FieldOfView: DefaultFieldOfView,
	}
}

// BoundingBoxCamera places the camera on the (max, max, min) corner of bbox
// looking at its center with +Z up. Build does not use it.
func BoundingBoxCamera(bbox geometry.BoundingBox) *Camera {
	position := geometry.NewVector3(bbox.Max.X, bbox.Max.Y, bbox.Min.Z)
	return &Camera{
		Position:    position,
		Look:        bbox.Center().Sub(position),
		Up:          geometry.NewVector3(0, 0, 1),
		FieldOfView: DefaultFieldOfView,
	}
}

// Clone returns a copy of the camera
func (c *Camera) Clone() *Camera {
	cp := *c
	return &cp
}

// Target returns a point a fixed distance along the look direction
func (c *Camera) Target() geometry.Vector3 {
	return c.Position.Add(c.Look.Mul(targetDistance))
}

// Pan translates the camera sideways or vertically by PanFactor without
// changing its orientation.
func (c *Camera) Pan(d Direction) error {
	side := c.Look.Cross(c.Up).Normalize()

	switch d {
	case DirectionNone:
	case DirectionLeft:
		c.Position = c.Position.Add(side.Mul(PanFactor))
	case DirectionRight:
		c.Position = c.Position.Sub(side.Mul(PanFactor))
	case DirectionUp:
		c.Position = c.Position.Sub(c.Up.Mul(PanFactor))
	case DirectionDown:
		c.Position = c.Position.Add(c.Up.Mul(PanFactor))
	default:
		return fmt.Errorf("pan: %w: %d", ErrInvalidDirection, int(d))
	}
	return nil
}

// Orbit rotates the camera by OrbitStep about the center of bbox and
// re-aims it at that center. Left/Right turn about Up, Up/Down about
// Up × Look.
func (c *Camera) Orbit(d Direction, bbox geometry.BoundingBox) error {
	angle := geometry.ToDegrees(OrbitStep)
	var axis geometry.Vector3

	switch d {
	case DirectionNone:
		return nil
	case DirectionLeft:
		axis = c.Up
	case DirectionRight:
		axis, angle = c.Up, -angle
	case DirectionUp:
		axis, angle = c.Up.Cross(c.Look), -angle
	case DirectionDown:
		axis = c.Up.Cross(c.Look)
	default:
		return fmt.Errorf("orbit: %w: %d", ErrInvalidDirection, int(d))
	}

	target := bbox.Center()
	upPoint := c.Position.Add(c.Up)
	rot := geometry.NewRotation(axis, angle, target)

	// order matters: look and up are both taken relative to the new position
	c.Position = rot.Transform(c.Position)
	c.Look = target.Sub(c.Position)
	c.Up = rot.Transform(upPoint).Sub(c.Position)
	return nil
}

// Zoom moves the camera along its look direction by delta/ZoomDivisor
// look lengths.
func (c *Camera) Zoom(delta float64) {
	c.Position = c.Position.Add(c.Look.Mul(delta / ZoomDivisor))
}

// basis returns the camera's forward, right and up unit vectors. An unset
// or degenerate up falls back to +Y, or +Z when looking along Y.
func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Look.Normalize()
	upHint := c.Up
	if forward.Cross(upHint).Length() < 1e-12 {
		upHint = defaultUp
		if forward.Cross(upHint).Length() < 1e-12 {
			upHint = geometry.NewVector3(0, 0, 1)
		}
	}
	right = forward.Cross(upHint).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project projects a 3D point to 2D screen coordinates. The returned depth
// is the distance along the look direction.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward, right, up := c.basis()

	// Transform to camera space
	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	depth := z
	if z <= 0.01 {
		z = 0.01 // Prevent division by zero
	}

	scale := (width / 2) / math.Tan(geometry.ToRadians(c.FieldOfView)/2)
	screenX := x/z*scale + width/2
	screenY := -y/z*scale + height/2

	return screenX, screenY, depth
}

// Unproject converts 2D screen coordinates back to a ray from the camera
func (c *Camera) Unproject(screenX, screenY, width, height float64) (origin, direction geometry.Vector3) {
	forward, right, up := c.basis()

	scale := (width / 2) / math.Tan(geometry.ToRadians(c.FieldOfView)/2)
	x := (screenX - width/2) / scale
	y := (height/2 - screenY) / scale

	direction = forward.Add(right.Mul(x)).Add(up.Mul(y)).Normalize()
	return c.Position, direction
}

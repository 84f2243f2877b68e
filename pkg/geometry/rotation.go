package geometry

import "math"

// Rotation rotates points by a fixed angle about an axis passing through a
// center point. Angles are in degrees, positive angles follow the right-hand
// rule around the axis.
type Rotation struct {
	Axis   Vector3
	Angle  float64
	Center Vector3

	cos, sin float64
	unit     Vector3
}

// NewRotation creates a rotation of angle degrees about axis through center.
// A zero axis yields the identity.
func NewRotation(axis Vector3, angle float64, center Vector3) Rotation {
	rad := ToRadians(angle)
	return Rotation{
		Axis:   axis,
		Angle:  angle,
		Center: center,
		cos:    math.Cos(rad),
		sin:    math.Sin(rad),
		unit:   axis.Normalize(),
	}
}

// Transform rotates a point about the rotation center
func (r Rotation) Transform(p Vector3) Vector3 {
	return r.TransformVector(p.Sub(r.Center)).Add(r.Center)
}

// TransformVector rotates a direction. The center plays no part.
func (r Rotation) TransformVector(v Vector3) Vector3 {
	if r.unit.IsZero() {
		return v
	}
	// Rodrigues: v cosθ + (k × v) sinθ + k (k·v)(1 − cosθ)
	k := r.unit
	return v.Mul(r.cos).
		Add(k.Cross(v).Mul(r.sin)).
		Add(k.Mul(k.Dot(v) * (1 - r.cos)))
}

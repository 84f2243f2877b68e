package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3Arithmetic(t *testing.T) {
	a := NewVector3(1, -2, 3)
	b := NewVector3(4, 5, -6)

	tests := []struct {
		name string
		got  Vector3
		want Vector3
	}{
		{"add", a.Add(b), NewVector3(5, 3, -3)},
		{"sub", a.Sub(b), NewVector3(-3, -7, 9)},
		{"mul", a.Mul(2), NewVector3(2, -4, 6)},
		{"neg", a.Neg(), NewVector3(-1, 2, -3)},
		{"neg zero", Vector3{}.Neg(), NewVector3(0, 0, 0)},
		{"min", a.Min(b), NewVector3(1, -2, -6)},
		{"max", a.Max(b), NewVector3(4, 5, 3)},
		{"cross x y", NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0)), NewVector3(0, 0, 1)},
		{"cross y x", NewVector3(0, 1, 0).Cross(NewVector3(1, 0, 0)), NewVector3(0, 0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestVector3MinMaxBoundPoints(t *testing.T) {
	points := []Vector3{NewVector3(3, 0, -1), NewVector3(-2, 7, 4), NewVector3(1, 1, 1)}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	assert.Equal(t, NewVector3(-2, 0, -1), lo)
	assert.Equal(t, NewVector3(3, 7, 4), hi)
}

func TestVector3Measures(t *testing.T) {
	assert.InDelta(t, 5.0, NewVector3(3, 4, 0).Length(), 1e-12)
	assert.InDelta(t, 13.0, NewVector3(1, 1, 1).Distance(NewVector3(4, 5, 13)), 1e-12)
	assert.InDelta(t, 12.0, NewVector3(1, 2, 3).Dot(NewVector3(-4, 5, 2)), 1e-12)
	assert.InDelta(t, 0.0, NewVector3(1, 0, 0).Dot(NewVector3(0, 0, 7)), 1e-12)
}

func TestVector3Normalize(t *testing.T) {
	n := NewVector3(0, -3, 4).Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	assert.InDelta(t, -0.6, n.Y, 1e-12)
	assert.InDelta(t, 0.8, n.Z, 1e-12)

	assert.True(t, Vector3{}.Normalize().IsZero())
	assert.False(t, NewVector3(0, 0, 1e-9).IsZero())
}

func TestFromFloat32(t *testing.T) {
	v := FromFloat32(1.5, -2.25, 1e3)
	assert.Equal(t, NewVector3(1.5, -2.25, 1000), v)

	// float32 rounding carries over unchanged
	assert.Equal(t, float64(float32(0.1)), FromFloat32(0.1, 0, 0).X)
	assert.NotEqual(t, 0.1, FromFloat32(0.1, 0, 0).X)
}

func TestAngleConversion(t *testing.T) {
	tests := []struct {
		degrees, radians float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
		{360, 2 * math.Pi},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.degrees, ToDegrees(tt.radians), 1e-9)
		assert.InDelta(t, tt.radians, ToRadians(tt.degrees), 1e-9)
		assert.InDelta(t, tt.degrees, ToDegrees(ToRadians(tt.degrees)), 1e-9)
	}
}

package geom

import "math"

// Angle is a value in degrees. Arithmetic is plain float arithmetic; wrapping
// happens only when asked for.
type Angle float64

// Deg returns the raw degree value.
func (a Angle) Deg() float64 { return float64(a) }

// Rad converts to radians.
func (a Angle) Rad() float64 { return float64(a) * math.Pi / 180 }

// WrapUnsigned maps the angle into [0,360).
func (a Angle) WrapUnsigned() Angle {
	v := math.Mod(float64(a), 360)
	if v < 0 {
		v += 360
	}
	if v >= 360 {
		v = 0
	}
	return Angle(v)
}

// WrapSigned maps the angle into (-180,180].
func (a Angle) WrapSigned() Angle {
	v := a.WrapUnsigned()
	if v > 180 {
		v -= 360
	}
	return v
}

// Unit returns the unit vector pointing along the angle.
func (a Angle) Unit() Vec2 {
	r := a.Rad()
	return Vec2{X: math.Cos(r), Y: math.Sin(r)}
}

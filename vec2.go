package msim

import "math"

// A Vec2 is a 2D double-precision vector.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z component of the 3D cross product of v and w.
// It is positive when w lies counterclockwise from v.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Rotated90 returns v rotated 90° counterclockwise.
func (v Vec2) Rotated90() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns the squared length of v.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns v scaled to unit length. The second return value is
// false when v is numerically zero and no direction exists.
func (v Vec2) Normalized() (Vec2, bool) {
	l := v.Length()
	if l < DistanceEps {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// ApproxEq reports whether both components of v and w differ by less
// than eps.
func (v Vec2) ApproxEq(w Vec2, eps float64) bool {
	return ApproxEq(v.X, w.X, eps) && ApproxEq(v.Y, w.Y, eps)
}

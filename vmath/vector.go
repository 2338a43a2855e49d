// Package vmath provides float64 vector and rectangle math for the
// simulation core. All types are values; operations return new values
// and never mutate their receiver.
package vmath

import "math"

// Vector2 is a 2D vector or point in world units
type Vector2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Dot returns the dot product v · o
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean magnitude
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSq returns the squared magnitude without sqrt
func (v Vector2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the Euclidean distance between v and o
func (v Vector2) Distance(o Vector2) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector in v's direction, zero-safe
func (v Vector2) Normalize() Vector2 {
	mag := v.Length()
	if mag == 0 {
		return Vector2{}
	}
	return Vector2{v.X / mag, v.Y / mag}
}

// IsFinite reports whether both components are finite (no NaN/Inf)
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Clamp limits val to [-limit, limit]. limit must be >= 0
func Clamp(val, limit float64) float64 {
	if val > limit {
		return limit
	}
	if val < -limit {
		return -limit
	}
	return val
}

package vmath

// Rect is an axis-aligned bounding box with top-left origin
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports strict AABB overlap. Edge-touching rectangles
// do not intersect
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether point (x, y) lies inside r
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Degenerate reports whether r has a non-positive dimension and can
// never participate in a valid overlap
func (r Rect) Degenerate() bool {
	return r.W <= 0 || r.H <= 0
}

// OverlapX returns the penetration depth along X for two intersecting
// rectangles. Result is only meaningful when Intersects is true
func (r Rect) OverlapX(o Rect) float64 {
	left := r.X + r.W - o.X  // r penetrating from the left
	right := o.X + o.W - r.X // r penetrating from the right
	if left < right {
		return left
	}
	return right
}

// OverlapY returns the penetration depth along Y for two intersecting
// rectangles. Result is only meaningful when Intersects is true
func (r Rect) OverlapY(o Rect) float64 {
	top := r.Y + r.H - o.Y
	bottom := o.Y + o.H - r.Y
	if top < bottom {
		return top
	}
	return bottom
}

package vmath

import (
	"math"
	"testing"
)

func TestVectorOps(t *testing.T) {
	a := Vector2{3, 4}
	b := Vector2{1, -2}

	if got := a.Add(b); got != (Vector2{4, 2}) {
		t.Errorf("Add = %v, want {4 2}", got)
	}
	if got := a.Sub(b); got != (Vector2{2, 6}) {
		t.Errorf("Sub = %v, want {2 6}", got)
	}
	if got := a.Scale(2); got != (Vector2{6, 8}) {
		t.Errorf("Scale = %v, want {6 8}", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := a.Distance(Vector2{0, 0}); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestNormalizeZeroSafe(t *testing.T) {
	if got := (Vector2{}).Normalize(); got != (Vector2{}) {
		t.Errorf("Normalize zero = %v, want zero", got)
	}

	n := Vector2{10, 0}.Normalize()
	if n != (Vector2{1, 0}) {
		t.Errorf("Normalize = %v, want {1 0}", n)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2
		want bool
	}{
		{"finite", Vector2{1, 2}, true},
		{"nan x", Vector2{math.NaN(), 0}, false},
		{"inf y", Vector2{0, math.Inf(1)}, false},
		{"neg inf", Vector2{math.Inf(-1), 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(15, 10); got != 10 {
		t.Errorf("Clamp(15, 10) = %v", got)
	}
	if got := Clamp(-15, 10); got != -10 {
		t.Errorf("Clamp(-15, 10) = %v", got)
	}
	if got := Clamp(5, 10); got != 5 {
		t.Errorf("Clamp(5, 10) = %v", got)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 32, 32}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", Rect{16, 16, 32, 32}, true},
		{"contained", Rect{8, 8, 8, 8}, true},
		{"edge touching", Rect{32, 0, 32, 32}, false},
		{"separated", Rect{100, 100, 32, 32}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			// AABB overlap is symmetric
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("reverse Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectOverlapDepth(t *testing.T) {
	a := Rect{0, 0, 32, 32}
	b := Rect{16, 0, 32, 32}

	if got := a.OverlapX(b); got != 16 {
		t.Errorf("OverlapX = %v, want 16", got)
	}
	if got := a.OverlapY(b); got != 32 {
		t.Errorf("OverlapY = %v, want 32", got)
	}
}

func TestRectDegenerate(t *testing.T) {
	if !(Rect{0, 0, 0, 10}).Degenerate() {
		t.Error("zero width should be degenerate")
	}
	if !(Rect{0, 0, 10, -1}).Degenerate() {
		t.Error("negative height should be degenerate")
	}
	if (Rect{0, 0, 1, 1}).Degenerate() {
		t.Error("positive dims should not be degenerate")
	}
}

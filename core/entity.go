// Package core holds the shared simulation data types: entities and
// the platform profile descriptor. Entities are created by the level
// loader, mutated in place by the physics and collision passes, and
// removed by the owning engine.
package core

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/ashwood-games/ledge/vmath"
)

// MaxHealth is the upper clamp for entity health
const MaxHealth = 100

// Entity is a simulated body. Position is the top-left corner of its
// collider; PreviousPosition is the pre-integration snapshot used for
// numeric corruption rollback
type Entity struct {
	ID string

	Position         vmath.Vector2
	PreviousPosition vmath.Vector2
	Velocity         vmath.Vector2

	Width  float64
	Height float64

	// Static entities are never moved by physics or collision resolution
	Static bool

	Health    int
	Inventory []string
}

// NewEntity creates an entity with a fresh id and full health.
// Width and height must be positive
func NewEntity(x, y, width, height float64, static bool) (*Entity, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("entity dimensions must be positive, got %gx%g", width, height)
	}
	return &Entity{
		ID:       uuid.NewString(),
		Position: vmath.Vector2{X: x, Y: y},
		Width:    width,
		Height:   height,
		Static:   static,
		Health:   MaxHealth,
	}, nil
}

// Collider returns the entity's AABB, derived from position and size
func (e *Entity) Collider() vmath.Rect {
	return vmath.Rect{X: e.Position.X, Y: e.Position.Y, W: e.Width, H: e.Height}
}

// Bottom returns the Y coordinate of the collider's lower edge
func (e *Entity) Bottom() float64 {
	return e.Position.Y + e.Height
}

// Damage reduces health by amount, clamped at 0
func (e *Entity) Damage(amount int) {
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
}

// Heal raises health by amount, clamped at MaxHealth
func (e *Entity) Heal(amount int) {
	e.Health += amount
	if e.Health > MaxHealth {
		e.Health = MaxHealth
	}
}

// Alive reports whether health is above zero
func (e *Entity) Alive() bool {
	return e.Health > 0
}

// AddItem appends an item id to the inventory, preserving pickup order
func (e *Entity) AddItem(item string) {
	e.Inventory = append(e.Inventory, item)
}

// RemoveItem removes the first occurrence of item, returning true if found
func (e *Entity) RemoveItem(item string) bool {
	for i, it := range e.Inventory {
		if it == item {
			e.Inventory = slices.Delete(e.Inventory, i, i+1)
			return true
		}
	}
	return false
}

// HasItem reports whether the inventory contains item
func (e *Entity) HasItem(item string) bool {
	return slices.Contains(e.Inventory, item)
}

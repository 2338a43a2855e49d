package render

import (
	"github.com/ashwood-games/ledge/vmath"
)

// Renderable is one draw submission: world-space bounds for culling,
// a visibility toggle, and the draw callback. Draw receives the
// logical surface and the camera offset already applied to the frame;
// it returns an error when its visual resource is not yet available,
// which skips the entry without failing the pass
type Renderable struct {
	ID       string
	Layer    int
	Priority int
	Visible  bool

	// Bounds returns current world-space bounds; called once per frame
	Bounds func() vmath.Rect

	// Draw renders into the logical surface. worldToSurface is the
	// camera-adjusted origin offset for this frame
	Draw func(s *Surface, camera vmath.Vector2) error
}

// Registry is the engine-managed list of renderables. The owning
// engine adds and removes entries; the renderer's pass consumes the
// list but never mutates it. Add and remove are O(1) amortized via an
// index map and swap-remove
type Registry struct {
	items []*Renderable
	index map[string]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add inserts or replaces the renderable under its ID
func (r *Registry) Add(item *Renderable) {
	if item == nil || item.ID == "" {
		return
	}
	if i, ok := r.index[item.ID]; ok {
		r.items[i] = item
		return
	}
	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item)
}

// Remove deletes by ID, returning true if present. Uses swap-remove;
// per-frame sorting makes the order disturbance irrelevant
func (r *Registry) Remove(id string) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	last := len(r.items) - 1
	if i != last {
		r.items[i] = r.items[last]
		r.index[r.items[i].ID] = i
	}
	r.items[last] = nil
	r.items = r.items[:last]
	delete(r.index, id)
	return true
}

// Get returns the renderable for id, or nil
func (r *Registry) Get(id string) *Renderable {
	if i, ok := r.index[id]; ok {
		return r.items[i]
	}
	return nil
}

// Len returns the number of registered renderables
func (r *Registry) Len() int {
	return len(r.items)
}

// each calls fn for every entry in registration-array order
func (r *Registry) each(fn func(*Renderable)) {
	for _, item := range r.items {
		fn(item)
	}
}

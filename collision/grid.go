// Package collision detects and resolves AABB overlaps between
// entities. Broad phase runs over a uniform spatial grid rebuilt from
// scratch every tick; narrow phase is an exact AABB test with
// minimum-translation position correction.
package collision

import (
	"math"

	"github.com/ashwood-games/ledge/core"
)

// DefaultCellSize is the grid cell edge length in world units
const DefaultCellSize = 64.0

type cellKey struct {
	X, Y int
}

// Grid is a uniform spatial hash used for broad-phase candidate
// filtering. It holds no cross-tick state: Clear is called at the top
// of every Resolve, which eliminates staleness bugs by construction.
// Cell slices are reused between ticks to avoid per-frame allocation
type Grid struct {
	cellSize float64
	cells    map[cellKey][]*core.Entity
}

// NewGrid creates a grid. A non-positive cell size falls back to
// DefaultCellSize
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*core.Entity),
	}
}

// CellSize returns the grid's cell edge length
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Clear empties every cell, keeping the backing storage
func (g *Grid) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

// cellRange returns the inclusive cell coordinate span covered by the
// entity's bounds
func (g *Grid) cellRange(e *core.Entity) (x0, y0, x1, y1 int) {
	b := e.Collider()
	x0 = int(math.Floor(b.X / g.cellSize))
	y0 = int(math.Floor(b.Y / g.cellSize))
	x1 = int(math.Floor((b.X + b.W) / g.cellSize))
	y1 = int(math.Floor((b.Y + b.H) / g.cellSize))
	return x0, y0, x1, y1
}

// Insert adds the entity to every cell its bounds overlap, so bodies
// spanning a cell boundary are found from either side
func (g *Grid) Insert(e *core.Entity) {
	x0, y0, x1, y1 := g.cellRange(e)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			k := cellKey{cx, cy}
			g.cells[k] = append(g.cells[k], e)
		}
	}
}

// CandidatesFor returns the deduplicated set of entities sharing at
// least one cell with e, excluding e itself. Cells are visited in row
// order and entities appear in insertion order, so the result is
// deterministic for a given insertion sequence
func (g *Grid) CandidatesFor(e *core.Entity, seen map[*core.Entity]struct{}, out []*core.Entity) []*core.Entity {
	x0, y0, x1, y1 := g.cellRange(e)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			for _, other := range g.cells[cellKey{cx, cy}] {
				if other == e {
					continue
				}
				if _, dup := seen[other]; dup {
					continue
				}
				seen[other] = struct{}{}
				out = append(out, other)
			}
		}
	}
	return out
}

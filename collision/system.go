package collision

import (
	"log"

	"github.com/ashwood-games/ledge/core"
)

// Ground contact tolerance in world units. The window absorbs one
// frame of interpenetration below and integration jitter above
const (
	groundGapMin = -5.0
	groundGapMax = 10.0
)

// Policy selects resolution behavior for a tick. The zero value is
// normal resolution for every pair
type Policy struct {
	ignoreID string
}

// PolicyNormal resolves every overlapping pair
func PolicyNormal() Policy {
	return Policy{}
}

// PolicyIgnoreEntity skips resolution for any pair involving the given
// entity while leaving detection untouched. This is how an owning
// engine implements no-clip without this package knowing about cheats
func PolicyIgnoreEntity(id string) Policy {
	return Policy{ignoreID: id}
}

func (p Policy) ignores(e *core.Entity) bool {
	return p.ignoreID != "" && e.ID == p.ignoreID
}

// System rebuilds the spatial grid each tick, finds candidate pairs,
// and applies discrete position correction to overlapping bodies
type System struct {
	grid *Grid

	// Reused per-tick scratch state
	seen       map[*core.Entity]struct{}
	candidates []*core.Entity
	order      map[*core.Entity]int

	// Per-frame detection counters, reset every Resolve
	pairsTested   int
	pairsOverlap  int
	degenerateLog map[string]struct{}
	warnedNil     bool
}

// NewSystem creates a collision system. Pass a non-positive cell size
// for the default
func NewSystem(cellSize float64) *System {
	return &System{
		grid:          NewGrid(cellSize),
		seen:          make(map[*core.Entity]struct{}),
		order:         make(map[*core.Entity]int),
		degenerateLog: make(map[string]struct{}),
	}
}

// PairsTested returns the narrow-phase test count of the last Resolve
func (s *System) PairsTested() int {
	return s.pairsTested
}

// PairsOverlapping returns the overlap count of the last Resolve
func (s *System) PairsOverlapping() int {
	return s.pairsOverlap
}

// CheckCollision performs the exact AABB overlap test. Degenerate
// colliders never match and are logged once per entity
func (s *System) CheckCollision(a, b *core.Entity) bool {
	if a == nil || b == nil {
		return false
	}
	ra, rb := a.Collider(), b.Collider()
	if ra.Degenerate() {
		s.logDegenerate(a)
		return false
	}
	if rb.Degenerate() {
		s.logDegenerate(b)
		return false
	}
	return ra.Intersects(rb)
}

func (s *System) logDegenerate(e *core.Entity) {
	if _, dup := s.degenerateLog[e.ID]; dup {
		return
	}
	s.degenerateLog[e.ID] = struct{}{}
	log.Printf("collision: entity %s has degenerate collider %gx%g, excluded from detection", e.ID, e.Width, e.Height)
}

// Resolve rebuilds the grid from the given entities and applies
// position correction to every overlapping pair. Each unordered pair
// is processed exactly once, in the order entities appear in the
// input slice. Empty input is a no-op; nil entries are skipped
func (s *System) Resolve(entities []*core.Entity, policy Policy) {
	s.pairsTested = 0
	s.pairsOverlap = 0
	if len(entities) == 0 {
		return
	}

	s.grid.Clear()
	clear(s.order)
	n := 0
	for _, e := range entities {
		if e == nil {
			if !s.warnedNil {
				s.warnedNil = true
				log.Printf("collision: nil entity in resolve input, skipping")
			}
			continue
		}
		if e.Collider().Degenerate() {
			s.logDegenerate(e)
			continue
		}
		s.grid.Insert(e)
		s.order[e] = n
		n++
	}

	for _, a := range entities {
		if a == nil {
			continue
		}
		ia, ok := s.order[a]
		if !ok {
			continue
		}

		clear(s.seen)
		s.candidates = s.grid.CandidatesFor(a, s.seen, s.candidates[:0])

		for _, b := range s.candidates {
			// Process each unordered pair once, from its lower-index side
			if s.order[b] <= ia {
				continue
			}

			s.pairsTested++
			if !s.CheckCollision(a, b) {
				continue
			}
			s.pairsOverlap++

			if policy.ignores(a) || policy.ignores(b) {
				continue
			}
			s.ResolvePair(a, b)
		}
	}
}

// ResolvePair separates an overlapping pair by displacing the
// non-static participants along the axis of minimum penetration.
// Already-separated pairs are a no-op, so a second call never moves
// anything. Both participants static is a no-op
func (s *System) ResolvePair(a, b *core.Entity) {
	if a == nil || b == nil || (a.Static && b.Static) {
		return
	}
	ra, rb := a.Collider(), b.Collider()
	if ra.Degenerate() || rb.Degenerate() || !ra.Intersects(rb) {
		return
	}

	// Any resolved contact kills vertical motion of the dynamic side(s)
	if !a.Static {
		a.Velocity.Y = 0
	}
	if !b.Static {
		b.Velocity.Y = 0
	}

	penX := ra.OverlapX(rb)
	penY := ra.OverlapY(rb)

	// Minimum-translation axis; exact ties resolve along Y
	if penX < penY {
		dir := 1.0
		if a.Position.X < b.Position.X {
			dir = -1.0
		}
		displace(a, b, dir*penX, 0)
	} else {
		dir := 1.0
		if a.Position.Y < b.Position.Y {
			dir = -1.0
		}
		displace(a, b, 0, dir*penY)
	}
}

// displace moves a by (dx, dy) and b the opposite way, split evenly
// when both are dynamic, applied in full to the dynamic side otherwise
func displace(a, b *core.Entity, dx, dy float64) {
	switch {
	case a.Static:
		b.Position.X -= dx
		b.Position.Y -= dy
	case b.Static:
		a.Position.X += dx
		a.Position.Y += dy
	default:
		a.Position.X += dx / 2
		a.Position.Y += dy / 2
		b.Position.X -= dx / 2
		b.Position.Y -= dy / 2
	}
}

// IsOnGround reports whether the entity is standing on any of the
// given static entities: horizontal ranges must overlap and the gap
// between the entity's bottom edge and the static top edge must lie
// within the contact window. Zero horizontal overlap is never grounded
// regardless of vertical distance
func (s *System) IsOnGround(e *core.Entity, statics []*core.Entity) bool {
	if e == nil {
		return false
	}
	for _, st := range statics {
		if st == nil || !st.Static {
			continue
		}
		if e.Position.X >= st.Position.X+st.Width || e.Position.X+e.Width <= st.Position.X {
			continue
		}
		gap := st.Position.Y - e.Bottom()
		if gap >= groundGapMin && gap <= groundGapMax {
			return true
		}
	}
	return false
}

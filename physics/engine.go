// Package physics performs kinematic integration for dynamic entities:
// gravity, friction, velocity clamping, and recovery from numerically
// corrupted state. It never resolves overlaps; that is the collision
// package's job, which always runs after integration within a tick.
package physics

import (
	"log"

	"github.com/ashwood-games/ledge/core"
	"github.com/ashwood-games/ledge/vmath"
)

// Config holds the tuning values for integration
type Config struct {
	// Gravity is vertical acceleration in units/s², positive is down
	Gravity float64
	// MaxVelocity is the componentwise speed clamp magnitude
	MaxVelocity float64
	// Friction is the multiplicative horizontal velocity decay applied
	// once per tick. It is intentionally NOT scaled by dt; the decay
	// rate varies with tick rate and gameplay tuning depends on it
	Friction float64
	// FloorY is the absolute fallback plane entities cannot sink below
	FloorY float64
}

// DefaultConfig returns the baseline tuning
func DefaultConfig() Config {
	return Config{
		Gravity:     980,
		MaxVelocity: 600,
		Friction:    0.85,
		FloorY:      1000,
	}
}

// Override is a partial configuration, typically decoded from a level
// document. Nil fields keep the prior value
type Override struct {
	Gravity     *float64 `yaml:"gravity"`
	MaxVelocity *float64 `yaml:"max_velocity"`
	Friction    *float64 `yaml:"friction"`
	FloorY      *float64 `yaml:"floor_y"`
}

// Apply returns c with the override's non-nil fields replaced
func (c Config) Apply(o Override) Config {
	if o.Gravity != nil {
		c.Gravity = *o.Gravity
	}
	if o.MaxVelocity != nil {
		c.MaxVelocity = *o.MaxVelocity
	}
	if o.Friction != nil {
		c.Friction = *o.Friction
	}
	if o.FloorY != nil {
		c.FloorY = *o.FloorY
	}
	return c
}

// Engine integrates entity motion. Single-threaded by construction:
// Update is called at most once at a time by the scheduler
type Engine struct {
	cfg Config

	// Entities already reported for corruption, to log once per entity
	corrupted map[string]struct{}
}

// NewEngine creates an engine with the given tuning
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:       cfg,
		corrupted: make(map[string]struct{}),
	}
}

// Config returns the current tuning
func (e *Engine) Config() Config {
	return e.cfg
}

// Configure applies a partial override on top of the current tuning
func (e *Engine) Configure(o Override) {
	e.cfg = e.cfg.Apply(o)
}

// Update integrates every non-static entity by dt seconds. Order per
// entity: snapshot, gravity, friction, clamp, integrate, floor clamp,
// corruption rollback. Nil entries are skipped
func (e *Engine) Update(entities []*core.Entity, dt float64) {
	for _, ent := range entities {
		if ent == nil || ent.Static {
			continue
		}
		e.integrate(ent, dt)
	}
}

func (e *Engine) integrate(ent *core.Entity, dt float64) {
	ent.PreviousPosition = ent.Position

	ent.Velocity.Y += e.cfg.Gravity * dt
	ent.Velocity.X *= e.cfg.Friction

	ent.Velocity.X = vmath.Clamp(ent.Velocity.X, e.cfg.MaxVelocity)
	ent.Velocity.Y = vmath.Clamp(ent.Velocity.Y, e.cfg.MaxVelocity)

	ent.Position = ent.Position.Add(ent.Velocity.Scale(dt))

	// Fallback plane: catches bodies that tunneled past every collider
	if ent.Position.Y > e.cfg.FloorY {
		ent.Position.Y = e.cfg.FloorY
		ent.Velocity.Y = 0
	}

	if !ent.Position.IsFinite() || !ent.Velocity.IsFinite() {
		e.recover(ent)
	}
}

// recover rolls a numerically corrupted entity back to its last good
// position and halts it, so NaN/Inf never reaches collision or render
func (e *Engine) recover(ent *core.Entity) {
	ent.Position = ent.PreviousPosition
	ent.Velocity = vmath.Vector2{}

	if _, seen := e.corrupted[ent.ID]; !seen {
		e.corrupted[ent.ID] = struct{}{}
		log.Printf("physics: recovered corrupted state for entity %s, reverted to previous position", ent.ID)
	}
}

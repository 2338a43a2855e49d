package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwood-games/ledge/collision"
	"github.com/ashwood-games/ledge/core"
	"github.com/ashwood-games/ledge/physics"
)

// buildScene wires a falling body over a static ground strip through
// a fixed-timestep loop, the standard tick order: integrate all, then
// resolve all, render observing the post-collision state
func buildScene(t *testing.T) (*Loop, *MockTimeProvider, *core.Entity) {
	t.Helper()

	player, err := core.NewEntity(0, 0, 32, 32, false)
	require.NoError(t, err)
	ground, err := core.NewEntity(0, 40, 320, 32, true)
	require.NoError(t, err)

	entities := []*core.Entity{player, ground}
	phys := physics.NewEngine(physics.Config{
		Gravity:     980,
		MaxVelocity: 600,
		Friction:    0.85,
		FloorY:      1000,
	})
	col := collision.NewSystem(0)

	clock := NewMockTimeProvider(time.Unix(0, 0))
	loop, err := NewLoop(Config{
		Update: func(dt float64) {
			phys.Update(entities, dt)
			col.Resolve(entities, collision.PolicyNormal())
		},
		Render: func() {},
		Time:   clock,
	})
	require.NoError(t, err)

	loop.SetFixedTimestep(true)
	loop.SetFixedTimestepRate(60)
	return loop, clock, player
}

func TestFallingBodySettlesOnGround(t *testing.T) {
	loop, clock, player := buildScene(t)

	loop.Frame() // init clock
	for i := 0; i < 125; i++ { // ~2 seconds of 60Hz ticks
		clock.Advance(time.Second / 60)
		loop.Frame()
	}

	bottom := player.Bottom()
	assert.GreaterOrEqual(t, bottom, 35.0, "rests on the ground strip")
	assert.LessOrEqual(t, bottom, 50.0, "does not tunnel through")
	assert.Equal(t, 0.0, player.Velocity.Y, "vertical motion killed by contact")
}

func TestFixedTimestepReproducible(t *testing.T) {
	run := func() (x, y float64) {
		loop, clock, player := buildScene(t)
		loop.Frame()
		for i := 0; i < 90; i++ {
			clock.Advance(time.Second / 60)
			loop.Frame()
		}
		return player.Position.X, player.Position.Y
	}

	x1, y1 := run()
	x2, y2 := run()
	assert.Equal(t, x1, x2, "identical input, identical trajectory")
	assert.Equal(t, y1, y2)
}

func TestRenderObservesPostCollisionState(t *testing.T) {
	player, err := core.NewEntity(0, 36, 32, 32, false) // overlaps the ground by 28
	require.NoError(t, err)
	ground, err := core.NewEntity(0, 40, 320, 32, true)
	require.NoError(t, err)
	entities := []*core.Entity{player, ground}

	phys := physics.NewEngine(physics.DefaultConfig())
	col := collision.NewSystem(0)
	clock := NewMockTimeProvider(time.Unix(0, 0))

	var seenBottom float64
	loop, err := NewLoop(Config{
		Update: func(dt float64) {
			phys.Update(entities, dt)
			col.Resolve(entities, collision.PolicyNormal())
		},
		Render: func() { seenBottom = player.Bottom() },
		Time:   clock,
	})
	require.NoError(t, err)

	loop.Frame()
	clock.Advance(time.Second / 60)
	loop.Frame()

	assert.LessOrEqual(t, seenBottom, 40.0, "render sees resolved, not mid-tick, positions")
}

package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness captures update/render calls driven through a mock clock
type harness struct {
	loop    *Loop
	clock   *MockTimeProvider
	updates []float64
	renders int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock: NewMockTimeProvider(time.Unix(1000, 0)),
	}
	loop, err := NewLoop(Config{
		Update: func(dt float64) { h.updates = append(h.updates, dt) },
		Render: func() { h.renders++ },
		Time:   h.clock,
	})
	require.NoError(t, err)
	h.loop = loop
	return h
}

// frame advances the mock clock and runs one host callback
func (h *harness) frame(d time.Duration) {
	h.clock.Advance(d)
	h.loop.Frame()
}

func TestNewLoopValidation(t *testing.T) {
	_, err := NewLoop(Config{Render: func() {}})
	assert.Error(t, err, "update function required")

	_, err = NewLoop(Config{Update: func(float64) {}})
	assert.Error(t, err, "render function required")
}

func TestFirstFrameInitializesClockOnly(t *testing.T) {
	h := newHarness(t)

	h.loop.Frame()
	assert.Empty(t, h.updates)
	assert.Zero(t, h.renders)

	h.frame(16 * time.Millisecond)
	require.Len(t, h.updates, 1)
	assert.InDelta(t, 0.016, h.updates[0], 1e-9)
	assert.Equal(t, 1, h.renders)
}

func TestInvalidDeltaSkipsUpdateNotRender(t *testing.T) {
	h := newHarness(t)
	h.loop.Frame() // init clock
	h.loop.SetFixedTimestep(true)
	h.frame(20 * time.Millisecond) // seed a remainder
	acc := h.loop.Accumulator()
	updates := len(h.updates)
	renders := h.renders

	for _, dt := range []float64{math.NaN(), math.Inf(1), -0.016, 5.0} {
		h.loop.FrameWithDelta(dt)
	}

	assert.Len(t, h.updates, updates, "zero update calls on skipped frames")
	assert.Equal(t, acc, h.loop.Accumulator(), "accumulator untouched")
	assert.Equal(t, renders+4, h.renders, "render still runs every host callback")
}

func TestHugeRealDeltaSkipped(t *testing.T) {
	h := newHarness(t)
	h.loop.Frame()

	// Tab backgrounded for three seconds, then resumed
	h.frame(3 * time.Second)
	assert.Empty(t, h.updates, "resume frame skipped, no catch-up burst")

	h.frame(16 * time.Millisecond)
	require.Len(t, h.updates, 1, "next frame proceeds normally")
	assert.InDelta(t, 0.016, h.updates[0], 1e-9)
}

func TestDeltaClampedToMaxFrameTime(t *testing.T) {
	h := newHarness(t)
	h.loop.Frame()

	h.frame(500 * time.Millisecond) // below skip threshold, above clamp
	require.Len(t, h.updates, 1)
	assert.Equal(t, MaxFrameTime, h.updates[0])
}

func TestFixedTimestepAccumulator(t *testing.T) {
	h := newHarness(t)
	h.loop.SetFixedTimestep(true)
	h.loop.SetFixedTimestepRate(60)
	h.loop.Frame()

	// 40ms at 60Hz: two ticks of exactly 1/60, remainder carried
	h.frame(40 * time.Millisecond)
	require.Len(t, h.updates, 2)
	assert.Equal(t, 1.0/60.0, h.updates[0])
	assert.Equal(t, 1.0/60.0, h.updates[1])
	assert.InDelta(t, 0.04-2.0/60.0, h.loop.Accumulator(), 1e-9)
	assert.Equal(t, 1, h.renders, "one render regardless of tick count")

	// Remainder tops up the next frame
	h.frame(30 * time.Millisecond)
	assert.Len(t, h.updates, 4)
}

func TestRateClamping(t *testing.T) {
	h := newHarness(t)

	h.loop.SetFixedTimestepRate(500)
	assert.Equal(t, MaxFixedHz, h.loop.FixedTimestepRate())
	h.loop.SetFixedTimestepRate(5)
	assert.Equal(t, MinFixedHz, h.loop.FixedTimestepRate())

	h.loop.SetUpdateThrottleRate(100)
	assert.Equal(t, MaxThrottleHz, h.loop.UpdateThrottleRate())
	h.loop.SetUpdateThrottleRate(1)
	assert.Equal(t, MinThrottleHz, h.loop.UpdateThrottleRate())
}

func TestUpdateThrottling(t *testing.T) {
	h := newHarness(t)
	h.loop.SetUpdateThrottling(true)
	h.loop.SetUpdateThrottleRate(30)
	h.loop.Frame()

	// 17ms host frames against a 30Hz update cap: every frame renders,
	// every second frame crosses the 33.3ms window and updates
	for i := 0; i < 10; i++ {
		h.frame(17 * time.Millisecond)
	}
	assert.Equal(t, 10, h.renders)
	assert.Len(t, h.updates, 5)
	assert.InDelta(t, 0.017, h.updates[0], 1e-9, "throttled update receives the frame dt, not the gap")
}

func TestFPSRollingWindow(t *testing.T) {
	h := newHarness(t)
	h.loop.Frame()

	assert.Zero(t, h.loop.FPS(), "no completed window yet")
	for i := 0; i < 70; i++ {
		h.frame(time.Second / 60)
	}
	fps := h.loop.FPS()
	assert.InDelta(t, 60, fps, 2, "rolling one-second counter near host rate")
}

func TestStartStopIdempotent(t *testing.T) {
	loop, err := NewLoop(Config{
		Update: func(float64) {},
		Render: func() {},
		HostHz: 240,
	})
	require.NoError(t, err)

	loop.Start()
	loop.Start() // second start is a no-op
	time.Sleep(20 * time.Millisecond)
	loop.Stop()
	loop.Stop() // second stop is a no-op

	assert.NotPanics(t, func() { loop.Stop() })
}

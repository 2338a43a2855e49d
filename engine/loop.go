package engine

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashwood-games/ledge/status"
)

// Timing limits. Frames reporting more than SkipThreshold seconds
// (backgrounded host resumed) are skipped outright instead of
// triggering a catch-up burst; shorter stalls are clamped to
// MaxFrameTime
const (
	MaxFrameTime  = 0.25
	SkipThreshold = 1.0

	MinFixedHz = 30.0
	MaxFixedHz = 120.0

	MinThrottleHz = 10.0
	MaxThrottleHz = 60.0

	DefaultHostHz = 60.0
)

// UpdateFunc advances the simulation by dt seconds
type UpdateFunc func(dt float64)

// RenderFunc draws one frame
type RenderFunc func()

// Config wires a Loop. Update and Render are the only components the
// scheduler captures; it holds no reference to physics, collision, or
// renderer internals
type Config struct {
	Update UpdateFunc
	Render RenderFunc

	// Time defaults to the monotonic provider
	Time TimeProvider

	// HostHz is the self-driven callback rate used by Start. Hosts
	// that own their own frame callback skip Start and call Frame
	HostHz float64

	// Status receives fps/frame/tick metrics; optional
	Status *status.Registry
}

// Loop is the per-frame scheduler. Each host callback computes and
// validates delta time, drives zero or more update calls (fixed or
// variable step), then always triggers exactly one render pass.
// All per-frame work is synchronous; Stop never interrupts a frame in
// flight, it only cancels the next scheduled one
type Loop struct {
	update UpdateFunc
	render RenderFunc
	time   TimeProvider
	hostHz float64

	// Frame clock state, touched only from the driving goroutine
	started  bool
	lastTime time.Time

	fixedStep   bool
	fixedHz     float64
	accumulator float64

	throttle    bool
	throttleHz  float64
	sinceUpdate float64

	// Rolling one-second frame counter
	windowStart time.Time
	windowCount int
	fps         atomic.Int64

	running  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mFrames  *atomic.Int64
	mSkipped *atomic.Int64
	mTicks   *atomic.Int64
}

// NewLoop creates a scheduler. Update and Render are required
func NewLoop(cfg Config) (*Loop, error) {
	if cfg.Update == nil {
		return nil, fmt.Errorf("loop requires an update function")
	}
	if cfg.Render == nil {
		return nil, fmt.Errorf("loop requires a render function")
	}
	if cfg.Time == nil {
		cfg.Time = NewMonotonicTimeProvider()
	}
	if cfg.HostHz <= 0 {
		cfg.HostHz = DefaultHostHz
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}

	return &Loop{
		update:     cfg.Update,
		render:     cfg.Render,
		time:       cfg.Time,
		hostHz:     cfg.HostHz,
		fixedHz:    60,
		throttleHz: 30,
		stopChan:   make(chan struct{}),
		mFrames:    cfg.Status.Ints.Get("loop.frames"),
		mSkipped:   cfg.Status.Ints.Get("loop.skipped_frames"),
		mTicks:     cfg.Status.Ints.Get("loop.ticks"),
	}, nil
}

// SetFixedTimestep toggles the accumulator-based deterministic loop.
// Toggling resets the accumulator
func (l *Loop) SetFixedTimestep(enabled bool) {
	l.fixedStep = enabled
	l.accumulator = 0
}

// SetFixedTimestepRate sets the fixed tick rate, clamped to [30, 120] Hz
func (l *Loop) SetFixedTimestepRate(hz float64) {
	l.fixedHz = clampHz(hz, MinFixedHz, MaxFixedHz)
}

// SetUpdateThrottling caps update frequency in variable-step mode
// while render keeps running every host frame
func (l *Loop) SetUpdateThrottling(enabled bool) {
	l.throttle = enabled
	l.sinceUpdate = 0
}

// SetUpdateThrottleRate sets the throttled update rate, clamped to
// [10, 60] Hz
func (l *Loop) SetUpdateThrottleRate(hz float64) {
	l.throttleHz = clampHz(hz, MinThrottleHz, MaxThrottleHz)
}

// FixedTimestepRate returns the clamped fixed tick rate in Hz
func (l *Loop) FixedTimestepRate() float64 {
	return l.fixedHz
}

// UpdateThrottleRate returns the clamped throttled update rate in Hz
func (l *Loop) UpdateThrottleRate() float64 {
	return l.throttleHz
}

func clampHz(hz, lo, hi float64) float64 {
	if hz < lo {
		return lo
	}
	if hz > hi {
		return hi
	}
	return hz
}

// FPS returns the frame count of the last completed one-second window
func (l *Loop) FPS() int {
	return int(l.fps.Load())
}

// Frame runs one host callback: derive dt from the time provider and
// step. The first frame only initializes the clock
func (l *Loop) Frame() {
	now := l.time.Now()
	if !l.started {
		l.started = true
		l.lastTime = now
		l.windowStart = now
		return
	}
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now
	l.countFrame(now)
	l.step(dt)
}

// FrameWithDelta runs one host callback with a caller-supplied delta,
// for hosts that own their own clock. dt is in seconds and is
// validated exactly like Frame's
func (l *Loop) FrameWithDelta(dt float64) {
	now := l.time.Now()
	if !l.started {
		l.started = true
		l.lastTime = now
		l.windowStart = now
	}
	l.lastTime = now
	l.countFrame(now)
	l.step(dt)
}

func (l *Loop) countFrame(now time.Time) {
	l.mFrames.Add(1)
	l.windowCount++
	if now.Sub(l.windowStart) >= time.Second {
		l.fps.Store(int64(l.windowCount))
		l.windowCount = 0
		l.windowStart = now
	}
}

// step validates dt, runs zero or more updates, and always renders
func (l *Loop) step(dt float64) {
	// Anti-spiral guard: a non-finite, negative, or huge delta means
	// the host clock misbehaved or the tab was backgrounded. Skip the
	// update entirely, leave the accumulator alone, keep rendering
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 || dt > SkipThreshold {
		l.mSkipped.Add(1)
		l.render()
		return
	}
	if dt > MaxFrameTime {
		dt = MaxFrameTime
	}

	switch {
	case l.fixedStep:
		step := 1.0 / l.fixedHz
		l.accumulator += dt
		for l.accumulator >= step {
			l.update(step)
			l.accumulator -= step
			l.mTicks.Add(1)
		}
		// Remainder persists to the next frame; sub-step interpolation
		// is the caller's business
	case l.throttle:
		l.sinceUpdate += dt
		if l.sinceUpdate >= 1.0/l.throttleHz {
			l.update(dt)
			l.sinceUpdate = 0
			l.mTicks.Add(1)
		}
	default:
		l.update(dt)
		l.mTicks.Add(1)
	}

	l.render()
}

// Accumulator returns the pending fixed-step remainder in seconds
func (l *Loop) Accumulator() float64 {
	return l.accumulator
}

// Start drives frames from an internal ticker at the configured host
// rate. Idempotent; a second call is a no-op while running
func (l *Loop) Start() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	l.wg.Add(1)
	go l.run()
}

// Stop cancels the next scheduled frame and waits for the in-flight
// one to finish. Idempotent; never interrupts synchronous frame work
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.running.Store(false)
		close(l.stopChan)
		l.wg.Wait()
	})
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / l.hostHz))
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.Frame()
		}
	}
}

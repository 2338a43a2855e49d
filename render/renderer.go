package render

import (
	"fmt"
	"log"
	"sort"
	"sync/atomic"
	"time"

	"github.com/ashwood-games/ledge/core"
	"github.com/ashwood-games/ledge/status"
	"github.com/ashwood-games/ledge/vmath"
)

// Tunable defaults. Cull margin and batch size are runtime-adjustable
// so an owner can react to measured frame-time regressions
const (
	DefaultCullMargin  = 50.0
	DefaultBatchSize   = 100
	DefaultFrameBudget = 8 * time.Millisecond
	MaxSafeArea        = 0.10
)

// Stats is the per-frame render report, for UI overlays and external
// auto-tuning
type Stats struct {
	Total      int // renderables in the registry
	Culled     int // excluded by viewport culling
	Rendered   int // drawn this frame
	Deferred   int // pushed to the next frame by the time budget
	Batches    int // batches executed this frame
	RenderTime time.Duration
}

// Renderer owns the logical surface and presentation state. It
// consumes the engine-managed registry each frame but never mutates
// it. Single-threaded by construction; Render is called once per host
// frame by the scheduler
type Renderer struct {
	display  Display
	registry *Registry
	surface  *Surface
	profile  core.Profile

	mode      ScaleMode
	transform Transform
	// Last display size a transform was derived for; zero-size resize
	// events are ignored and this stays authoritative
	displayW, displayH int

	camera      vmath.Vector2
	cullMargin  float64
	batchSize   int
	frameBudget time.Duration
	safeArea    float64

	now func() time.Time

	// Batch deferral cursor into the sorted draw order
	resumeIndex int
	sorted      []*Renderable

	stats Stats

	fsState FullscreenState
	fsPrior FullscreenState
	fsTgt   FullscreenState

	// Renderables whose draw failed, logged once each
	skippedDraw map[string]struct{}

	mTotal    *atomic.Int64
	mCulled   *atomic.Int64
	mRendered *atomic.Int64
	mBatches  *atomic.Int64
	mRenderMs *status.AtomicFloat
}

// NewRenderer creates a renderer presenting the profile's logical
// resolution onto the display. The registry stays owned by the caller
func NewRenderer(display Display, registry *Registry, profile core.Profile, reg *status.Registry) (*Renderer, error) {
	if display == nil {
		return nil, fmt.Errorf("renderer requires a display")
	}
	if registry == nil {
		return nil, fmt.Errorf("renderer requires a renderable registry")
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	mode, err := ParseScaleMode(profile.DefaultScaleMode)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	r := &Renderer{
		display:     display,
		registry:    registry,
		surface:     NewSurface(profile.LogicalWidth, profile.LogicalHeight),
		profile:     profile,
		mode:        mode,
		cullMargin:  DefaultCullMargin,
		batchSize:   DefaultBatchSize,
		frameBudget: DefaultFrameBudget,
		now:         time.Now,
		skippedDraw: make(map[string]struct{}),
		mTotal:      reg.Ints.Get("render.total"),
		mCulled:     reg.Ints.Get("render.culled"),
		mRendered:   reg.Ints.Get("render.rendered"),
		mBatches:    reg.Ints.Get("render.batches"),
		mRenderMs:   reg.Floats.Get("render.frame_ms"),
	}

	if w, h := display.Size(); w > 0 && h > 0 {
		r.displayW, r.displayH = w, h
		r.transform = computeTransform(r.mode, profile.LogicalWidth, profile.LogicalHeight, w, h)
	}
	return r, nil
}

// Surface exposes the logical drawing target for camera-independent
// overlays drawn by external collaborators
func (r *Renderer) Surface() *Surface {
	return r.surface
}

// Profile returns the active platform profile
func (r *Renderer) Profile() core.Profile {
	return r.profile
}

// Camera returns the current camera offset
func (r *Renderer) Camera() vmath.Vector2 {
	return r.camera
}

// SetCamera moves the camera. The offset is subtracted from world
// coordinates before drawing; there is no rotation or zoom
func (r *Renderer) SetCamera(pos vmath.Vector2) {
	r.camera = pos
}

// CameraFollow centers the camera on the target entity, clamped to
// the given level bounds so the view never leaves the level
func (r *Renderer) CameraFollow(target *core.Entity, level vmath.Rect) {
	if target == nil {
		return
	}
	lw, lh := r.surface.Size()
	cx := target.Position.X + target.Width/2 - float64(lw)/2
	cy := target.Position.Y + target.Height/2 - float64(lh)/2

	maxX := level.X + level.W - float64(lw)
	maxY := level.Y + level.H - float64(lh)
	if cx > maxX {
		cx = maxX
	}
	if cy > maxY {
		cy = maxY
	}
	if cx < level.X {
		cx = level.X
	}
	if cy < level.Y {
		cy = level.Y
	}
	r.camera = vmath.Vector2{X: cx, Y: cy}
}

// ScaleMode returns the active presentation mode
func (r *Renderer) ScaleMode() ScaleMode {
	return r.mode
}

// SetScaleMode switches presentation mode and re-derives the transform
func (r *Renderer) SetScaleMode(mode ScaleMode) {
	r.mode = mode
	r.rederive()
}

// Transform returns the current logical-to-display mapping
func (r *Renderer) Transform() Transform {
	return r.transform
}

// SetSafeArea sets the overlay margin fraction, clamped to [0, 0.10]
func (r *Renderer) SetSafeArea(frac float64) {
	if frac < 0 {
		frac = 0
	}
	if frac > MaxSafeArea {
		frac = MaxSafeArea
	}
	r.safeArea = frac
}

// SafeArea returns the logical-surface rectangle reserved for
// camera-independent overlay placement. Stored and exposed only;
// applying it is the overlay caller's job
func (r *Renderer) SafeArea() vmath.Rect {
	w, h := r.surface.Size()
	mx := float64(w) * r.safeArea
	my := float64(h) * r.safeArea
	return vmath.Rect{X: mx, Y: my, W: float64(w) - 2*mx, H: float64(h) - 2*my}
}

// SetCullMargin adjusts the viewport expansion in world units
func (r *Renderer) SetCullMargin(margin float64) {
	if margin < 0 {
		margin = 0
	}
	r.cullMargin = margin
}

// SetBatchSize adjusts how many renderables are drawn between budget
// checks
func (r *Renderer) SetBatchSize(n int) {
	if n < 1 {
		n = 1
	}
	r.batchSize = n
}

// SetFrameBudget adjusts the per-frame draw time ceiling
func (r *Renderer) SetFrameBudget(d time.Duration) {
	if d <= 0 {
		d = DefaultFrameBudget
	}
	r.frameBudget = d
}

// SetTimeSource overrides the wall clock, for tests
func (r *Renderer) SetTimeSource(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Viewport returns the world-space culling rectangle: the camera
// position expanded by the logical display extent plus the margin
func (r *Renderer) Viewport() vmath.Rect {
	w, h := r.surface.Size()
	return vmath.Rect{
		X: r.camera.X - r.cullMargin,
		Y: r.camera.Y - r.cullMargin,
		W: float64(w) + 2*r.cullMargin,
		H: float64(h) + 2*r.cullMargin,
	}
}

// HandleResize re-derives the presentation transform for the current
// display size. A zero-sized display is ignored, keeping the last
// valid transform
func (r *Renderer) HandleResize() {
	w, h := r.display.Size()
	if w <= 0 || h <= 0 {
		log.Printf("render: ignoring resize to %dx%d, keeping last valid scale", w, h)
		return
	}
	r.displayW, r.displayH = w, h
	r.rederive()
}

// SwitchProfile replaces the platform profile: new logical surface,
// new default scale mode, all scale factors re-derived
func (r *Renderer) SwitchProfile(profile core.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	mode, err := ParseScaleMode(profile.DefaultScaleMode)
	if err != nil {
		return err
	}
	r.profile = profile
	r.mode = mode
	r.surface = NewSurface(profile.LogicalWidth, profile.LogicalHeight)
	r.resumeIndex = 0
	r.rederive()
	return nil
}

func (r *Renderer) rederive() {
	if r.displayW <= 0 || r.displayH <= 0 {
		return
	}
	w, h := r.surface.Size()
	r.transform = computeTransform(r.mode, w, h, r.displayW, r.displayH)
}

// Stats returns the last frame's render report
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render executes one draw pass: cull against the viewport, sort by
// layer then priority, draw in batches under the frame-time budget,
// then present the logical surface through the scale transform.
// Entities deferred by the budget are retried next frame. Never
// returns an error; per-entry failures are skipped and logged once
func (r *Renderer) Render() Stats {
	start := r.now()
	st := Stats{Total: r.registry.Len()}
	vp := r.Viewport()

	// Cull: keep visible entries whose bounds intersect the viewport.
	// Culled entries stay registered and come back the moment their
	// bounds re-enter the expanded camera rectangle
	r.sorted = r.sorted[:0]
	r.registry.each(func(item *Renderable) {
		if !item.Visible {
			return
		}
		if item.Bounds != nil && !vp.Intersects(item.Bounds()) {
			st.Culled++
			return
		}
		r.sorted = append(r.sorted, item)
	})

	sort.SliceStable(r.sorted, func(i, j int) bool {
		if r.sorted[i].Layer != r.sorted[j].Layer {
			return r.sorted[i].Layer < r.sorted[j].Layer
		}
		return r.sorted[i].Priority < r.sorted[j].Priority
	})

	r.surface.Clear()

	// Resume where the previous frame's budget ran out
	if r.resumeIndex >= len(r.sorted) {
		r.resumeIndex = 0
	}
	i := r.resumeIndex
	for i < len(r.sorted) {
		if st.Batches > 0 && r.now().Sub(start) > r.frameBudget {
			break
		}
		end := min(i+r.batchSize, len(r.sorted))
		for ; i < end; i++ {
			item := r.sorted[i]
			if item.Draw == nil {
				continue
			}
			if err := item.Draw(r.surface, r.camera); err != nil {
				r.logSkippedDraw(item.ID, err)
				continue
			}
			st.Rendered++
		}
		st.Batches++
	}

	if i < len(r.sorted) {
		st.Deferred = len(r.sorted) - i
		r.resumeIndex = i
	} else {
		r.resumeIndex = 0
	}

	present(r.surface, r.display, r.transform)

	st.RenderTime = r.now().Sub(start)
	r.stats = st

	r.mTotal.Store(int64(st.Total))
	r.mCulled.Store(int64(st.Culled))
	r.mRendered.Store(int64(st.Rendered))
	r.mBatches.Store(int64(st.Batches))
	r.mRenderMs.Set(float64(st.RenderTime.Microseconds()) / 1000.0)
	return st
}

func (r *Renderer) logSkippedDraw(id string, err error) {
	if _, dup := r.skippedDraw[id]; dup {
		return
	}
	r.skippedDraw[id] = struct{}{}
	log.Printf("render: skipping %s, visual resource unavailable: %v", id, err)
}

// EntityRenderable builds a solid-rectangle renderable tracking the
// entity's collider, a convenience for owners without sprite assets
func EntityRenderable(e *core.Entity, layer, priority int, c Cell) *Renderable {
	return &Renderable{
		ID:       e.ID,
		Layer:    layer,
		Priority: priority,
		Visible:  true,
		Bounds:   e.Collider,
		Draw: func(s *Surface, camera vmath.Vector2) error {
			s.FillRect(
				int(e.Position.X-camera.X),
				int(e.Position.Y-camera.Y),
				int(e.Width),
				int(e.Height),
				c,
			)
			return nil
		},
	}
}

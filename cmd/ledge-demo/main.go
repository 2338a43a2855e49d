// Command ledge-demo runs the simulation core against a terminal
// display: a perlin-generated terrain strip, one controllable body,
// and the fixed-timestep scheduler. It stands in for the level loader
// and input collaborators the core itself does not own.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/gdamore/tcell/v2"

	"github.com/ashwood-games/ledge/collision"
	"github.com/ashwood-games/ledge/core"
	"github.com/ashwood-games/ledge/engine"
	"github.com/ashwood-games/ledge/physics"
	"github.com/ashwood-games/ledge/render"
	"github.com/ashwood-games/ledge/status"
	"github.com/ashwood-games/ledge/terminal"
	"github.com/ashwood-games/ledge/vmath"
)

const (
	levelWidth  = 640.0
	levelHeight = 120.0
	tileSize    = 8.0
	moveSpeed   = 60.0
	jumpSpeed   = 90.0
)

var defaultProfile = []byte(`
name: terminal
logical_width: 160
logical_height: 48
default_scale_mode: stretch
`)

type demo struct {
	display  *terminal.Display
	renderer *render.Renderer
	registry *render.Registry
	loop     *engine.Loop
	phys     *physics.Engine
	col      *collision.System

	entities []*core.Entity
	statics  []*core.Entity
	player   *core.Entity

	noclip bool
}

func main() {
	profilePath := flag.String("profile", "", "platform profile YAML file")
	physicsPath := flag.String("physics", "", "physics override YAML file")
	flag.Parse()

	if err := run(*profilePath, *physicsPath); err != nil {
		fmt.Fprintf(os.Stderr, "ledge-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(profilePath, physicsPath string) error {
	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	display, err := terminal.NewDisplay()
	if err != nil {
		return err
	}
	defer display.Fini()

	d, err := newDemo(display, profile, physicsPath)
	if err != nil {
		return err
	}
	return d.runLoop()
}

func loadProfile(path string) (core.Profile, error) {
	data := defaultProfile
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return core.Profile{}, fmt.Errorf("failed to read profile: %w", err)
		}
	}
	return core.ParseProfile(data)
}

func newDemo(display *terminal.Display, profile core.Profile, physicsPath string) (*demo, error) {
	registry := render.NewRegistry()
	metrics := status.NewRegistry()

	renderer, err := render.NewRenderer(display, registry, profile, metrics)
	if err != nil {
		return nil, err
	}

	phys := physics.NewEngine(physics.Config{
		Gravity:     240,
		MaxVelocity: 200,
		Friction:    0.80,
		FloorY:      levelHeight,
	})
	if physicsPath != "" {
		data, err := os.ReadFile(physicsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read physics override: %w", err)
		}
		override, err := physics.ParseOverride(data)
		if err != nil {
			return nil, err
		}
		phys.Configure(override)
	}

	d := &demo{
		display:  display,
		renderer: renderer,
		registry: registry,
		phys:     phys,
		col:      collision.NewSystem(collision.DefaultCellSize),
	}
	if err := d.buildLevel(); err != nil {
		return nil, err
	}

	loop, err := engine.NewLoop(engine.Config{
		Update: d.update,
		Render: func() { d.renderer.Render() },
		Status: metrics,
	})
	if err != nil {
		return nil, err
	}
	loop.SetFixedTimestep(true)
	loop.SetFixedTimestepRate(60)
	d.loop = loop
	return d, nil
}

// buildLevel generates a terrain strip from 1D perlin noise: one
// static tile column per step, topped off at a noise-driven height
func (d *demo) buildLevel() error {
	noise := perlin.NewPerlin(2, 2, 3, time.Now().UnixNano())

	for x := 0.0; x < levelWidth; x += tileSize {
		n := noise.Noise1D(x / levelWidth * 4) // [-1, 1]
		top := levelHeight*0.7 + n*levelHeight*0.2

		for y := top; y < levelHeight; y += tileSize {
			tile, err := core.NewEntity(x, y, tileSize, tileSize, true)
			if err != nil {
				return err
			}
			d.entities = append(d.entities, tile)
			d.statics = append(d.statics, tile)
			d.registry.Add(render.EntityRenderable(tile, 0, 0, render.Cell{Ch: '▒', FG: render.ColorGray}))
		}
	}

	player, err := core.NewEntity(levelWidth/2, 10, tileSize, tileSize, false)
	if err != nil {
		return err
	}
	d.player = player
	d.entities = append(d.entities, player)
	d.registry.Add(render.EntityRenderable(player, 1, 0, render.Cell{Ch: '█', FG: render.ColorGreen}))
	return nil
}

func (d *demo) update(dt float64) {
	policy := collision.PolicyNormal()
	if d.noclip {
		policy = collision.PolicyIgnoreEntity(d.player.ID)
	}

	d.phys.Update(d.entities, dt)
	d.col.Resolve(d.entities, policy)
	d.renderer.CameraFollow(d.player, vmath.Rect{W: levelWidth, H: levelHeight})
}

// runLoop drives frames and input on a single goroutine: events are
// pumped from tcell into a channel, frames come from a host ticker
func (d *demo) runLoop() error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := d.display.Screen().PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !d.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			d.loop.Frame()
		}
	}
}

func (d *demo) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.renderer.HandleResize()
		d.display.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			d.player.Velocity.X = -moveSpeed
		case tcell.KeyRight:
			d.player.Velocity.X = moveSpeed
		case tcell.KeyUp:
			if d.col.IsOnGround(d.player, d.statics) {
				d.player.Velocity.Y = -jumpSpeed
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'g':
				d.noclip = !d.noclip
			case 'f':
				// The terminal host rejects this; the renderer rolls
				// back and we stay windowed
				if err := d.renderer.RequestFullscreen(true); err != nil {
					log.Printf("fullscreen request rejected: %v", err)
				}
			}
		}
	}
	return true
}

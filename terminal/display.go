// Package terminal presents the render package's display interface on
// a tcell screen. The terminal is the host surface: it resizes with
// the emulator window and rejects fullscreen requests, which it has no
// authority over.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ashwood-games/ledge/render"
)

// Display adapts a tcell.Screen to render.Display
type Display struct {
	screen tcell.Screen
}

// NewDisplay allocates and initializes a terminal screen
func NewDisplay() (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return &Display{screen: screen}, nil
}

// NewDisplayFromScreen wraps an existing screen, used with tcell's
// simulation screen in tests
func NewDisplayFromScreen(screen tcell.Screen) *Display {
	return &Display{screen: screen}
}

// Screen exposes the underlying tcell screen for event polling
func (d *Display) Screen() tcell.Screen {
	return d.screen
}

// Size returns the terminal dimensions in character cells
func (d *Display) Size() (int, int) {
	return d.screen.Size()
}

// Clear erases the terminal
func (d *Display) Clear() {
	d.screen.Clear()
}

// SetCell writes one character cell
func (d *Display) SetCell(x, y int, c render.Cell) {
	ch := c.Ch
	if ch == 0 {
		ch = ' '
	}
	style := tcell.StyleDefault.
		Foreground(tcell.NewHexColor(int32(c.FG))).
		Background(tcell.NewHexColor(int32(c.BG)))
	d.screen.SetContent(x, y, ch, nil, style)
}

// Show makes the frame visible
func (d *Display) Show() {
	d.screen.Show()
}

// RequestFullscreen always rejects: a terminal application does not
// control its emulator's window mode. The renderer's state machine
// rolls back and the session stays windowed
func (d *Display) RequestFullscreen(enabled bool) error {
	return fmt.Errorf("terminal host cannot change window mode")
}

// Sync forces a full repaint, called after resize events
func (d *Display) Sync() {
	d.screen.Sync()
}

// Fini restores the terminal state
func (d *Display) Fini() {
	d.screen.Fini()
}

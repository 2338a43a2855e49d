package render

// Display is the variable-size presentation backend. The terminal
// package provides the tcell implementation; tests use a fake
type Display interface {
	// Size returns the current display dimensions in display cells
	Size() (int, int)

	// Clear erases the display, producing the letterbox background
	Clear()

	// SetCell writes one display cell
	SetCell(x, y int, c Cell)

	// Show makes the current frame visible
	Show()

	// RequestFullscreen asks the host to enter or leave fullscreen.
	// The request may be rejected immediately (error return) or
	// resolve later through the host's event stream; hosts without a
	// windowing concept reject it
	RequestFullscreen(enabled bool) error
}

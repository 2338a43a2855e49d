// Package render presents a fixed-resolution logical surface onto a
// variable-size display. It owns the camera, scale modes, viewport
// culling, and the batched draw pass; the display itself is an
// injected backend behind the Display interface.
package render

// Color is a packed 0xRRGGBB value
type Color uint32

// Common colors for callers that do not carry a palette
const (
	ColorBlack Color = 0x000000
	ColorWhite Color = 0xFFFFFF
	ColorGray  Color = 0x808080
	ColorRed   Color = 0xCC3333
	ColorGreen Color = 0x33AA55
	ColorBlue  Color = 0x3366CC
)

// Cell is one logical surface element: a glyph with foreground and
// background colors
type Cell struct {
	Ch rune
	FG Color
	BG Color
}

// Surface is the fixed-resolution logical drawing target. The
// simulation always renders at this resolution; presentation scaling
// happens afterwards
type Surface struct {
	width  int
	height int
	cells  []Cell
}

// NewSurface creates a cleared surface of the given logical size
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Size returns the logical dimensions
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Clear resets every cell to the zero value
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{}
	}
}

// Set writes a cell, ignoring out-of-bounds coordinates
func (s *Surface) Set(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = c
}

// At reads a cell; out-of-bounds coordinates return the zero cell
func (s *Surface) At(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{}
	}
	return s.cells[y*s.width+x]
}

// FillRect fills a rectangle, clipped to the surface bounds
func (s *Surface) FillRect(x, y, w, h int, c Cell) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			s.Set(cx, cy, c)
		}
	}
}

package render

import "fmt"

// ScaleMode selects how the logical surface maps onto the display
type ScaleMode int

const (
	// ScaleInteger uses the largest whole-number factor that fits,
	// with smoothing disabled and letterbox bars from the remainder.
	// Keeps pixel alignment exact
	ScaleInteger ScaleMode = iota
	// ScaleFit uses a fractional uniform factor preserving aspect
	// ratio, smoothing enabled
	ScaleFit
	// ScaleStretch fills the display exactly with independent X/Y
	// factors, ignoring aspect ratio
	ScaleStretch
)

// String implements fmt.Stringer
func (m ScaleMode) String() string {
	switch m {
	case ScaleInteger:
		return "integer"
	case ScaleFit:
		return "fit"
	case ScaleStretch:
		return "stretch"
	default:
		return "unknown"
	}
}

// ParseScaleMode converts a profile string to a ScaleMode
func ParseScaleMode(s string) (ScaleMode, error) {
	switch s {
	case "integer":
		return ScaleInteger, nil
	case "fit":
		return ScaleFit, nil
	case "stretch":
		return ScaleStretch, nil
	default:
		return 0, fmt.Errorf("unknown scale mode %q", s)
	}
}

// Transform is the derived presentation mapping for the current
// display size: per-axis scale factors and centering offsets
type Transform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY int
	Smoothing        bool
}

// computeTransform derives the mapping from logical to display space.
// Display dimensions must be positive; callers guard zero-size
func computeTransform(mode ScaleMode, logicalW, logicalH, displayW, displayH int) Transform {
	switch mode {
	case ScaleInteger:
		k := min(displayW/logicalW, displayH/logicalH)
		if k < 1 {
			// Display smaller than logical surface: fall back to
			// uniform downscale rather than rendering nothing
			return fitTransform(logicalW, logicalH, displayW, displayH, false)
		}
		return Transform{
			ScaleX:  float64(k),
			ScaleY:  float64(k),
			OffsetX: (displayW - logicalW*k) / 2,
			OffsetY: (displayH - logicalH*k) / 2,
		}
	case ScaleStretch:
		return Transform{
			ScaleX:    float64(displayW) / float64(logicalW),
			ScaleY:    float64(displayH) / float64(logicalH),
			Smoothing: true,
		}
	default: // ScaleFit
		return fitTransform(logicalW, logicalH, displayW, displayH, true)
	}
}

func fitTransform(logicalW, logicalH, displayW, displayH int, smoothing bool) Transform {
	sx := float64(displayW) / float64(logicalW)
	sy := float64(displayH) / float64(logicalH)
	s := min(sx, sy)
	return Transform{
		ScaleX:    s,
		ScaleY:    s,
		OffsetX:   (displayW - int(float64(logicalW)*s)) / 2,
		OffsetY:   (displayH - int(float64(logicalH)*s)) / 2,
		Smoothing: smoothing,
	}
}

// present blits the logical surface onto the display through the
// transform using nearest-neighbor sampling. Cleared display cells
// around the target area form the letterbox/pillarbox bars
func present(s *Surface, d Display, t Transform) {
	logicalW, logicalH := s.Size()
	displayW, displayH := d.Size()

	targetW := int(float64(logicalW) * t.ScaleX)
	targetH := int(float64(logicalH) * t.ScaleY)

	d.Clear()
	for dy := 0; dy < targetH; dy++ {
		y := dy + t.OffsetY
		if y < 0 || y >= displayH {
			continue
		}
		sy := int(float64(dy) / t.ScaleY)
		for dx := 0; dx < targetW; dx++ {
			x := dx + t.OffsetX
			if x < 0 || x >= displayW {
				continue
			}
			sx := int(float64(dx) / t.ScaleX)
			d.SetCell(x, y, s.At(sx, sy))
		}
	}
	d.Show()
}

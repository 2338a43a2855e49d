package render

import "errors"

// ErrTransitionPending is returned when a fullscreen request arrives
// while a previous transition is still unresolved
var ErrTransitionPending = errors.New("fullscreen transition already pending")

// FullscreenState tracks the presentation window mode
type FullscreenState int

const (
	// Windowed is the initial state
	Windowed FullscreenState = iota
	// Fullscreen means the host granted a fullscreen request
	Fullscreen
	// TransitionPending means a request was sent and the host has not
	// resolved it yet
	TransitionPending
)

// String implements fmt.Stringer
func (s FullscreenState) String() string {
	switch s {
	case Windowed:
		return "windowed"
	case Fullscreen:
		return "fullscreen"
	case TransitionPending:
		return "transition-pending"
	default:
		return "unknown"
	}
}

// FullscreenState returns the current window mode
func (r *Renderer) FullscreenState() FullscreenState {
	return r.fsState
}

// RequestFullscreen asks the host to change window mode. Overlapping
// requests are rejected immediately; an immediate host rejection
// rolls the state back and is reported as the returned error, never
// as a panic. Asynchronous resolution arrives via CompleteFullscreen
func (r *Renderer) RequestFullscreen(enabled bool) error {
	if r.fsState == TransitionPending {
		return ErrTransitionPending
	}

	target := Windowed
	if enabled {
		target = Fullscreen
	}
	if target == r.fsState {
		return nil
	}

	r.fsPrior = r.fsState
	r.fsTgt = target
	r.fsState = TransitionPending

	if err := r.display.RequestFullscreen(enabled); err != nil {
		r.fsState = r.fsPrior
		return err
	}
	return nil
}

// CompleteFullscreen resolves a pending transition with the host's
// verdict. Rejection restores the prior mode; calls without a pending
// transition are ignored
func (r *Renderer) CompleteFullscreen(accepted bool) {
	if r.fsState != TransitionPending {
		return
	}
	if accepted {
		r.fsState = r.fsTgt
		// Mode changes usually come with a display size change
		r.HandleResize()
	} else {
		r.fsState = r.fsPrior
	}
}

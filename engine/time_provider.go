// Package engine contains the frame scheduler: it decouples
// simulation cadence from the host frame rate and guarantees a render
// pass every host frame even when updates are throttled or
// fixed-stepped.
package engine

import "time"

// TimeProvider abstracts the clock so the scheduler can be driven
// deterministically in tests
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic
// clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real-clock provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

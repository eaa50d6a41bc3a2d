// Package timing paces emulated frames against the wall clock.
package timing

import (
	"time"

	"github.com/valerio/go-sfc/sfc/config"
	"github.com/valerio/go-sfc/sfc/counter"
)

// Limiter controls frame rate timing for emulation.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// CyclesPerFrame returns the master cycles in one non-interlaced frame.
func CyclesPerFrame(r config.Region) int {
	return r.Lines() * counter.LineClocks
}

// TargetFPS calculates the frame rate of the region, about 60.098 for
// NTSC and 50.007 for PAL.
func TargetFPS(r config.Region) float64 {
	return float64(r.MasterClock()) / float64(CyclesPerFrame(r))
}

// FrameDuration returns the target duration of a single frame.
func FrameDuration(r config.Region) time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS(r))
}

// New returns the limiter registered under name: "none", "ticker" or
// "adaptive". Unknown names fall back to adaptive.
func New(name string, r config.Region) Limiter {
	switch name {
	case "none":
		return NewNoOpLimiter()
	case "ticker":
		return NewTickerLimiter(r)
	default:
		return NewAdaptiveLimiter(r)
	}
}

package timing

import (
	"log/slog"
	"time"

	"github.com/valerio/go-sfc/sfc/config"
)

const (
	spinBelow  = 2 * time.Millisecond
	maxDebt    = 5 * time.Millisecond
	driftLimit = 10 * time.Millisecond
)

// AdaptiveLimiter sleeps for most of the frame and spins for the last
// stretch, nudging its deadline back toward wall time about once a second.
type AdaptiveLimiter struct {
	region   config.Region
	period   time.Duration
	deadline time.Time
	frames   int64
	every    int64
}

func NewAdaptiveLimiter(r config.Region) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		region:   r,
		period:   FrameDuration(r),
		deadline: time.Now(),
		every:    int64(TargetFPS(r)),
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	switch ahead := a.deadline.Sub(now); {
	case ahead > 0:
		waitUntil(a.deadline, ahead)
	case ahead < -maxDebt:
		// too far behind to catch up
		a.deadline = now
	}

	a.deadline = a.deadline.Add(a.period)
	a.frames++
	if a.frames%a.every != 0 {
		return
	}

	drift := time.Since(a.deadline)
	if drift.Abs() > driftLimit {
		a.deadline = a.deadline.Add(drift / 10)
		slog.Debug("Frame timing drift correction",
			"region", a.region,
			"drift_ms", drift.Milliseconds(),
			"frames", a.frames)
	}
}

func (a *AdaptiveLimiter) Reset() {
	a.deadline = time.Now()
	a.frames = 0
}

func waitUntil(deadline time.Time, ahead time.Duration) {
	if ahead >= spinBelow {
		time.Sleep(ahead - time.Millisecond)
	}
	for time.Now().Before(deadline) {
	}
}

package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-sfc/sfc/config"
)

func TestTargetFPS(t *testing.T) {
	assert.InDelta(t, 60.0985, TargetFPS(config.NTSC), 0.0001)
	assert.InDelta(t, 50.0070, TargetFPS(config.PAL), 0.0001)
	assert.Equal(t, 357368, CyclesPerFrame(config.NTSC))
	assert.Equal(t, 425568, CyclesPerFrame(config.PAL))
}

func TestFrameDuration(t *testing.T) {
	assert.InDelta(t, 16.6394, FrameDuration(config.NTSC).Seconds()*1000, 0.001)
	assert.InDelta(t, 19.9972, FrameDuration(config.PAL).Seconds()*1000, 0.001)
}

func TestNew(t *testing.T) {
	assert.IsType(t, &noOpLimiter{}, New("none", config.NTSC))

	ticker := New("ticker", config.NTSC)
	assert.IsType(t, &TickerLimiter{}, ticker)
	ticker.(*TickerLimiter).Stop()

	assert.IsType(t, &AdaptiveLimiter{}, New("adaptive", config.PAL))
	assert.IsType(t, &AdaptiveLimiter{}, New("", config.PAL))
}

func TestAdaptiveLimiter_Paces(t *testing.T) {
	start := time.Now()
	a := NewAdaptiveLimiter(config.PAL)
	assert.Equal(t, int64(50), a.every)

	for range 3 {
		a.WaitForNextFrame()
	}
	// the first frame is due immediately
	assert.GreaterOrEqual(t, time.Since(start), 2*FrameDuration(config.PAL))
	assert.Equal(t, int64(3), a.frames)

	a.Reset()
	assert.Zero(t, a.frames)
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for range 1000 {
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

package timing

import (
	"time"

	"github.com/valerio/go-sfc/sfc/config"
)

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but good enough for the monitor.
type TickerLimiter struct {
	frame  time.Duration
	ticker *time.Ticker
	ch     <-chan time.Time
}

func NewTickerLimiter(r config.Region) *TickerLimiter {
	frame := FrameDuration(r)
	ticker := time.NewTicker(frame)
	return &TickerLimiter{
		frame:  frame,
		ticker: ticker,
		ch:     ticker.C,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.frame)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}

package chip

import "github.com/valerio/go-sfc/sfc/scheduler"

const (
	visibleLines  = 225
	overscanLines = 240

	// one dot is four master cycles
	dotClocks = 4
)

// Screen is a stand-in video chip. It spends master cycles a dot at a time
// and reports a fixed display mode to the CPU.
type Screen struct {
	*Ticker

	Overscan   bool
	Interlaced bool

	flushes int
}

// NewScreen returns a video stand-in billed at the master clock rate.
func NewScreen() *Screen {
	return &Screen{
		Ticker: NewTicker("ppu", 1, dotClocks),
	}
}

// VisibleLines returns 240 with overscan enabled, 225 otherwise.
func (s *Screen) VisibleLines() int {
	if s.Overscan {
		return overscanLines
	}
	return visibleLines
}

func (s *Screen) Interlace() bool {
	return s.Interlaced
}

// FlushLines is called at the start of vblank in fast PPU mode.
func (s *Screen) FlushLines() {
	s.flushes++
}

// Flushes returns the number of batched line flushes.
func (s *Screen) Flushes() int {
	return s.flushes
}

var _ scheduler.Chip = (*Screen)(nil)

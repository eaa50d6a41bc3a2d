package cpu

import (
	"log/slog"

	"github.com/valerio/go-sfc/sfc/counter"
	"github.com/valerio/go-sfc/sfc/scheduler"
)

const (
	hdmaSetupBase   = 12
	hdmaRunPosition = 1104
	refreshBase     = 530
)

// scanline runs whenever the horizontal counter wraps. It re-arms the per
// line triggers and emits the frame boundary events.
func (c *CPU) scanline() {
	// force sync in case chips are not talking to each other
	c.SynchronizeSMP()
	c.SynchronizePPU()
	c.SynchronizeCoprocessors()

	v := c.pos.V
	visible := c.video.VisibleLines()

	if v == 0 {
		// HDMA setup triggers once every frame
		if c.cfg.CPUVersion == 1 {
			c.Status.HDMASetupPosition = hdmaSetupBase + 8 - c.dmaCounter()
		} else {
			c.Status.HDMASetupPosition = hdmaSetupBase + c.dmaCounter()
		}
		c.Status.HDMASetupTriggered = false

		c.Status.AutoJoypadCounter = 0
		c.sched.Leave(scheduler.StartFrame)
	}

	// DRAM refresh runs once every line
	if c.cfg.CPUVersion == 2 {
		c.Status.DRAMRefreshPosition = refreshBase + 8 - c.dmaCounter()
	}
	c.Status.DRAMRefresh = RefreshIdle

	// HDMA runs once every visible line
	if v < visible {
		c.Status.HDMAPosition = hdmaRunPosition
		c.Status.HDMATriggered = false
	}

	if v == c.cfg.Region.LastLine() {
		c.computeOverclock()
	}

	// frame events are raised here rather than by the video chip so that
	// input polled during NMI always sees a fully synchronized PPU
	if v == visible {
		c.ports[1].LatchPosition()
		c.SynchronizePPU()
		if c.cfg.FastPPU {
			if f, ok := c.video.(LineFlusher); ok {
				f.FlushLines()
			}
		}
		c.sched.Leave(scheduler.EndFrame)
	}
}

// computeOverclock sets the extra cycle budget for the next frame.
func (c *CPU) computeOverclock() {
	c.Overclocking.Counter = 0
	c.Overclocking.Target = 0
	if c.cfg.Overclock <= 100 {
		return
	}

	overclock := float64(c.cfg.Overclock) / 100.0
	clocks := float64(c.cfg.Region.Lines() * counter.LineClocks)
	c.Overclocking.Target = uint64(clocks*overclock - clocks)

	slog.Debug("Overclock budget",
		"percent", c.cfg.Overclock,
		"target", c.Overclocking.Target)
}

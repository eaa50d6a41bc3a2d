package cpu

import "fmt"

// refreshBursts is the number of 6+2 cycle bursts in one DRAM refresh.
const refreshBursts = 5

// Step advances the CPU by one bus operation of clocks master cycles, billing
// every other chip for the elapsed time and synchronizing coprocessors that
// fell behind. clocks must be one of 2, 4, 6, 8, 10 or 12; anything else is
// a broken timing table upstream and panics.
func (c *CPU) Step(clocks int) error {
	mustBeQuantum(clocks)
	if c.err != nil {
		return c.err
	}
	c.step(clocks, true)
	return c.err
}

func mustBeQuantum(clocks int) {
	switch clocks {
	case 2, 4, 6, 8, 10, 12:
	default:
		panic(fmt.Sprintf("cpu: invalid step of %d clocks", clocks))
	}
}

// DMAStep spends clocks on behalf of an active DMA transfer.
func (c *CPU) DMAStep(clocks int) error {
	c.Counter.DMA += uint64(clocks)
	return c.Step(clocks)
}

// ALUEdge advances the multiply/divide unit by one bit. The executor calls
// it once per bus cycle; DRAM refresh calls it once per burst.
func (c *CPU) ALUEdge() {
	c.ALU.Edge()
}

func (c *CPU) step(clocks int, synchronize bool) {
	for _, cp := range c.coprocessors {
		if cp.Fast {
			continue
		}
		cp.Bill(uint(clocks))
	}

	if c.Overclocking.Target != 0 {
		c.Overclocking.Counter += uint64(clocks)
		if c.Overclocking.Counter < c.Overclocking.Target {
			if synchronize && !c.cfg.DelayedSync {
				c.SynchronizeCoprocessors()
			}
			return
		}
	}

	for range clocks / 2 {
		c.stepOnce()
	}

	c.smp.Clock -= int64(clocks)
	c.ppu.Clock -= int64(clocks)
	for _, cp := range c.coprocessors {
		if !cp.Fast {
			continue
		}
		cp.Bill(uint(clocks))
	}

	if c.Status.DRAMRefresh == RefreshIdle && c.pos.H >= c.Status.DRAMRefreshPosition {
		// real hardware bursts 5-3, 6-2 bills the same total per burst
		for range refreshBursts {
			c.Status.DRAMRefresh = RefreshPhase1
			c.step(6, false)
			c.Status.DRAMRefresh = RefreshPhase2
			c.step(2, false)
			c.ALUEdge()
		}
	}

	if !c.Status.HDMASetupTriggered && c.pos.H >= c.Status.HDMASetupPosition {
		c.Status.HDMASetupTriggered = true
		c.dma.HDMAReset()
		if c.dma.HDMAEnable() {
			c.Status.HDMAPending = true
			c.Status.HDMAMode = 0
		}
	}

	if !c.Status.HDMATriggered && c.pos.H >= c.Status.HDMAPosition {
		c.Status.HDMATriggered = true
		if c.dma.HDMAActive() {
			c.Status.HDMAPending = true
			c.Status.HDMAMode = 1
		}
	}

	if synchronize && !c.cfg.DelayedSync {
		c.SynchronizeCoprocessors()
	}
}

func (c *CPU) stepOnce() {
	c.Counter.CPU += 2
	c.pos.Tick(2)
	if c.pos.H&2 != 0 {
		c.irq.NMIPoll()
		c.irq.IRQPoll()
	}
	if c.joypadCounter() == 0 {
		c.joypadEdge()
	}
}

// SynchronizeSMP runs the audio chip up to the master clock.
func (c *CPU) SynchronizeSMP() {
	c.fail(c.sched.Synchronize(c.smp))
}

// SynchronizePPU runs the video chip up to the master clock.
func (c *CPU) SynchronizePPU() {
	c.fail(c.sched.Synchronize(c.ppu))
}

// SynchronizeCoprocessors runs every coprocessor that is behind. With
// delayed sync enabled this is the only way coprocessors advance, and the
// executor calls it when the CPU touches coprocessor memory.
func (c *CPU) SynchronizeCoprocessors() {
	c.fail(c.sched.SynchronizeAll(c.coprocessors))
}

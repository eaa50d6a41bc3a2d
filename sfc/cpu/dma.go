package cpu

// DMAEdge arbitrates the bus between the CPU, DMA and HDMA. It is called by
// the executor at every instruction boundary while a transfer is pending or
// active.
//
// A pending request first claims the bus for one edge. On the next edge the
// transfer runs: HDMA is serviced before general DMA, so an HDMA request that
// arrives during a DMA window is handled inside that window before the bus
// is released.
func (c *CPU) DMAEdge() error {
	if c.err != nil {
		return c.err
	}

	if c.Status.DMAActive {
		if c.Status.HDMAPending {
			c.Status.HDMAPending = false
			if c.dma.HDMAEnable() {
				if !c.dma.DMAEnable() {
					c.alignDMA()
				}
				if c.Status.HDMAMode == 0 {
					c.dma.HDMASetup()
				} else {
					c.dma.HDMARun()
				}
				if !c.dma.DMAEnable() {
					c.releaseDMA()
				}
			}
		}

		if c.Status.DMAPending {
			c.Status.DMAPending = false
			if c.dma.DMAEnable() {
				c.alignDMA()
				c.dma.DMARun()
				c.releaseDMA()
			}
		}
	}

	if !c.Status.DMAActive {
		if c.Status.DMAPending || c.Status.HDMAPending {
			c.Status.DMAActive = true
		}
	}

	return c.err
}

// RequestDMA marks a general purpose DMA as pending (MDMAEN write).
func (c *CPU) RequestDMA() {
	c.Status.DMAPending = true
}

// alignDMA waits for the next 8 cycle DMA clock boundary and starts
// counting transfer cycles.
func (c *CPU) alignDMA() {
	clocks := 8 - c.dmaCounter()
	mustBeQuantum(clocks)
	c.Counter.DMA = uint64(clocks)
	c.step(clocks, true)
}

// releaseDMA waits for the CPU bus cycle interrupted by the transfer to
// line up again, then hands the bus back.
func (c *CPU) releaseDMA() {
	clockCount := uint64(c.Status.ClockCount)
	clocks := int(clockCount - c.Counter.DMA%clockCount)
	mustBeQuantum(clocks)
	c.step(clocks, true)
	c.Status.DMAActive = false
}

package cpu

// joypadEdge runs every 256 master cycles. During vertical blank it clocks
// the auto-joypad poller, which reads sixteen bits from each controller port
// into JOY1-JOY4, MSB first.
//
// Fast polling reads all sixteen bits on the first edge of vblank. It is
// kept for software that misbehaves with the accurate poller (Taikyoku Igo -
// Goliath, Williams Arcade's Greatest Hits, World Masters Golf).
func (c *CPU) joypadEdge() {
	if c.pos.V < c.video.VisibleLines() {
		return
	}

	if c.cfg.FastJoypadPolling {
		if c.Status.AutoJoypadCounter == 0 {
			c.latchPorts()
			for range 16 {
				c.shiftPorts()
			}
			c.Status.AutoJoypadCounter = 16
		}
		return
	}

	// enable state is cached at the first edge
	if c.Status.AutoJoypadCounter == 0 {
		c.Status.AutoJoypadLatch = c.IO.AutoJoypadPoll
	}
	c.Status.AutoJoypadActive = c.Status.AutoJoypadCounter <= 15

	if c.Status.AutoJoypadActive && c.Status.AutoJoypadLatch {
		if c.Status.AutoJoypadCounter == 0 {
			c.latchPorts()
		}
		c.shiftPorts()
	}

	c.Status.AutoJoypadCounter++
}

// latchPorts strobes both controllers and clears the shift registers.
func (c *CPU) latchPorts() {
	c.ports[0].Latch(true)
	c.ports[1].Latch(true)
	c.ports[0].Latch(false)
	c.ports[1].Latch(false)

	c.IO.JOY1 = 0
	c.IO.JOY2 = 0
	c.IO.JOY3 = 0
	c.IO.JOY4 = 0
}

func (c *CPU) shiftPorts() {
	port0 := c.ports[0].Data()
	port1 := c.ports[1].Data()

	c.IO.JOY1 = c.IO.JOY1<<1 | uint16(port0&1)
	c.IO.JOY2 = c.IO.JOY2<<1 | uint16(port1&1)
	c.IO.JOY3 = c.IO.JOY3<<1 | uint16(port0>>1&1)
	c.IO.JOY4 = c.IO.JOY4<<1 | uint16(port1>>1&1)
}

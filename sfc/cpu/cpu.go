// Package cpu implements the timing side of the S-CPU: the master cycle
// counter, the per-quantum billing of every other chip, DRAM refresh, the
// DMA/HDMA bus arbiter, the auto-joypad poller and the per-scanline event
// sequencer. Instruction execution lives elsewhere and drives this package
// through Step, DMAEdge and ALUEdge.
package cpu

import (
	"github.com/valerio/go-sfc/sfc/alu"
	"github.com/valerio/go-sfc/sfc/config"
	"github.com/valerio/go-sfc/sfc/controller"
	"github.com/valerio/go-sfc/sfc/counter"
	"github.com/valerio/go-sfc/sfc/scheduler"
)

// Video is the part of the video chip the CPU needs for scanline timing.
type Video interface {
	// VisibleLines returns the number of displayed lines, 225 or 240.
	VisibleLines() int
	Interlace() bool
}

// LineFlusher is implemented by renderers that buffer scanlines and draw
// them in a batch.
type LineFlusher interface {
	FlushLines()
}

// DMA is the eight channel DMA controller. Transfers spend their cycles
// through CPU.DMAStep.
type DMA interface {
	DMAEnable() bool
	HDMAEnable() bool
	HDMAActive() bool

	DMARun()
	HDMAReset()
	HDMASetup()
	HDMARun()
}

// Interrupts is polled on every other CPU sub-step.
type Interrupts interface {
	NMIPoll()
	IRQPoll()
}

// Counter holds the master cycle position.
type Counter struct {
	CPU uint64 // master clock, advances 2 per sub-step
	DMA uint64 // cycles spent by the active transfer
}

// Refresh is the DRAM refresh state of the current scanline.
type Refresh int

const (
	RefreshIdle Refresh = iota
	RefreshPhase1
	RefreshPhase2
)

// Status holds the per-scanline trigger state. Every trigger fires at most
// once per line and is re-armed by the scanline sequencer.
type Status struct {
	DMAActive   bool
	DMAPending  bool
	HDMAPending bool
	HDMAMode    int // 0 = setup, 1 = run

	HDMASetupTriggered bool
	HDMATriggered      bool

	DRAMRefresh         Refresh
	DRAMRefreshPosition int
	HDMASetupPosition   int
	HDMAPosition        int

	AutoJoypadCounter int
	AutoJoypadActive  bool
	AutoJoypadLatch   bool

	// ClockCount is the length of the bus cycle in progress (6, 8 or 12).
	// It is kept up to date by the instruction executor.
	ClockCount int
}

// Overclocking grants the CPU extra cycles per frame that no other chip sees.
type Overclocking struct {
	Counter uint64
	Target  uint64
}

// IO holds the CPU registers touched by the timing core.
type IO struct {
	AutoJoypadPoll bool // NMITIMEN bit 0

	JOY1, JOY2, JOY3, JOY4 uint16
}

// Chips wires the CPU to the rest of the console. Nil members are replaced
// by inert stand-ins.
type Chips struct {
	SMP          *scheduler.Thread
	PPU          *scheduler.Thread
	Coprocessors []*scheduler.Thread

	Video      Video
	DMA        DMA
	Interrupts Interrupts
	Ports      [2]*controller.Port
}

// CPU is the timing state of the S-CPU.
type CPU struct {
	Counter      Counter
	Status       Status
	Overclocking Overclocking
	ALU          alu.ALU
	IO           IO

	cfg   config.Config
	sched *scheduler.Scheduler
	pos   *counter.Counter

	smp          *scheduler.Thread
	ppu          *scheduler.Thread
	coprocessors []*scheduler.Thread

	video Video
	dma   DMA
	irq   Interrupts
	ports [2]*controller.Port

	err error
}

// New creates a CPU bound to sched and chips. Call Power before stepping.
func New(cfg config.Config, sched *scheduler.Scheduler, chips Chips) *CPU {
	c := &CPU{
		cfg:          cfg,
		sched:        sched,
		smp:          chips.SMP,
		ppu:          chips.PPU,
		coprocessors: chips.Coprocessors,
		video:        chips.Video,
		dma:          chips.DMA,
		irq:          chips.Interrupts,
		ports:        chips.Ports,
	}

	if c.smp == nil {
		c.smp = absent("smp")
	}
	if c.ppu == nil {
		c.ppu = absent("ppu")
	}
	if c.video == nil {
		c.video = fixedVideo{}
	}
	if c.dma == nil {
		c.dma = noDMA{}
	}
	if c.irq == nil {
		c.irq = noInterrupts{}
	}
	for i := range c.ports {
		if c.ports[i] == nil {
			c.ports[i] = &controller.Port{}
		}
	}

	c.pos = counter.New(cfg.Region, c.video.Interlace, c.scanline)

	return c
}

// Power resets the timing state to its power-on values.
func (c *CPU) Power() {
	c.Counter = Counter{}
	c.Overclocking = Overclocking{}
	c.IO = IO{}
	c.ALU.Power()
	c.pos.Reset()
	c.err = nil

	c.Status = Status{ClockCount: 8}
	if c.cfg.CPUVersion == 1 {
		c.Status.DRAMRefreshPosition = 530
		c.Status.HDMASetupPosition = 12 + 8 - c.dmaCounter()
	} else {
		c.Status.DRAMRefreshPosition = 538
		c.Status.HDMASetupPosition = 12 + c.dmaCounter()
	}
	c.Status.HDMAPosition = 1104
}

// H returns the horizontal position in master cycles.
func (c *CPU) H() int { return c.pos.H }

// V returns the current scanline.
func (c *CPU) V() int { return c.pos.V }

// Field returns the current interlace field.
func (c *CPU) Field() int { return c.pos.Field }

// Position exposes the beam counter, shared with the video chip.
func (c *CPU) Position() *counter.Counter { return c.pos }

// Err returns the first fatal error raised while stepping.
func (c *CPU) Err() error { return c.err }

// dmaCounter is the DMA clock divider.
func (c *CPU) dmaCounter() int {
	return int(c.Counter.CPU & 7)
}

// joypadCounter is the auto-joypad clock divider.
func (c *CPU) joypadCounter() int {
	return int(c.Counter.CPU & 255)
}

func (c *CPU) fail(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func absent(name string) *scheduler.Thread {
	var t *scheduler.Thread
	t = scheduler.NewThread(name, 1, scheduler.ChipFunc(func() {
		t.Step(uint(-t.Clock))
	}))
	return t
}

type fixedVideo struct{}

func (fixedVideo) VisibleLines() int { return 225 }
func (fixedVideo) Interlace() bool   { return false }

type noDMA struct{}

func (noDMA) DMAEnable() bool  { return false }
func (noDMA) HDMAEnable() bool { return false }
func (noDMA) HDMAActive() bool { return false }
func (noDMA) DMARun()          {}
func (noDMA) HDMAReset()       {}
func (noDMA) HDMASetup()       {}
func (noDMA) HDMARun()         {}

type noInterrupts struct{}

func (noInterrupts) NMIPoll() {}
func (noInterrupts) IRQPoll() {}

// Package sfc assembles the timing core into a runnable console: the
// scheduler, the CPU timing state, stand-in audio and video chips, any
// coprocessors and the two controller ports.
package sfc

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/valerio/go-sfc/sfc/chip"
	"github.com/valerio/go-sfc/sfc/config"
	"github.com/valerio/go-sfc/sfc/controller"
	"github.com/valerio/go-sfc/sfc/cpu"
	"github.com/valerio/go-sfc/sfc/scheduler"
)

// one S-SMP cycle is about 21 master cycles
const audioClocks = 21

// System is the session context of one running console.
type System struct {
	cfg   config.Config
	sched *scheduler.Scheduler
	cpu   *cpu.CPU

	audio        *chip.Ticker
	screen       *chip.Screen
	tickers      []*chip.Ticker
	coprocessors []*scheduler.Thread
	ports        [2]*controller.Port

	exec Executor
	dma  cpu.DMA
	irq  cpu.Interrupts

	frames uint64
}

// Stats is a snapshot of the timing state, taken between frames.
type Stats struct {
	Region config.Region
	Frames uint64
	Clocks uint64

	H, V, Field int

	Resumes   uint64
	Flushes   int
	Overclock cpu.Overclocking
	Status    cpu.Status
	Joypads   [4]uint16
}

// New builds a powered-on console for cfg.
func New(cfg config.Config, opts ...Option) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	s := &System{
		cfg:    cfg,
		sched:  scheduler.New(),
		audio:  chip.NewTicker("smp", 1, audioClocks),
		screen: chip.NewScreen(),
		ports:  [2]*controller.Port{{}, {}},
		exec:   IdleExecutor{Quantum: DefaultQuantum},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cpu = cpu.New(cfg, s.sched, cpu.Chips{
		SMP:          s.audio.Thread(),
		PPU:          s.screen.Thread(),
		Coprocessors: s.coprocessors,
		Video:        s.screen,
		DMA:          s.dma,
		Interrupts:   s.irq,
		Ports:        s.ports,
	})

	s.Power()
	return s, nil
}

// Power resets every chip to its power-on state.
func (s *System) Power() {
	s.audio.Reset()
	s.screen.Reset()
	for _, t := range s.tickers {
		t.Reset()
	}
	for _, t := range s.coprocessors {
		t.Reset()
	}
	s.cpu.Power()
	s.frames = 0

	slog.Info("System powered",
		"region", s.cfg.Region,
		"cpu_version", s.cfg.CPUVersion,
		"overclock", s.cfg.Overclock,
		"coprocessors", len(s.coprocessors))
}

// RunFrame runs the console until the CPU enters vertical blank.
func (s *System) RunFrame() error {
	for {
		e, err := s.sched.Enter(s.step)
		if err != nil {
			return errors.Wrapf(err, "frame %d", s.frames+1)
		}
		if e == scheduler.EndFrame {
			break
		}
	}
	s.frames++

	slog.Debug("Frame complete",
		"frame", s.frames,
		"clocks", s.cpu.Counter.CPU,
		"resumes", s.sched.Resumes())
	return nil
}

func (s *System) step() error {
	return s.exec.Exec(s.cpu)
}

// Frames returns the number of completed frames since power-on.
func (s *System) Frames() uint64 {
	return s.frames
}

// CPU exposes the timing state for executors and tests.
func (s *System) CPU() *cpu.CPU {
	return s.cpu
}

// Port returns controller port 0 or 1.
func (s *System) Port(n int) *controller.Port {
	return s.ports[n]
}

// Config returns the session configuration.
func (s *System) Config() config.Config {
	return s.cfg
}

// Stats captures the current timing state.
func (s *System) Stats() Stats {
	c := s.cpu
	return Stats{
		Region:    s.cfg.Region,
		Frames:    s.frames,
		Clocks:    c.Counter.CPU,
		H:         c.H(),
		V:         c.V(),
		Field:     c.Field(),
		Resumes:   s.sched.Resumes(),
		Flushes:   s.screen.Flushes(),
		Overclock: c.Overclocking,
		Status:    c.Status,
		Joypads:   [4]uint16{c.IO.JOY1, c.IO.JOY2, c.IO.JOY3, c.IO.JOY4},
	}
}

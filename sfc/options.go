package sfc

import (
	"github.com/valerio/go-sfc/sfc/chip"
	"github.com/valerio/go-sfc/sfc/cpu"
	"github.com/valerio/go-sfc/sfc/scheduler"
)

// Option configures a System at construction time.
type Option func(*System)

// WithExecutor replaces the idle executor with a real instruction core.
func WithExecutor(e Executor) Option {
	return func(s *System) { s.exec = e }
}

// WithQuantum sets the step length of the default idle executor.
func WithQuantum(clocks int) Option {
	return func(s *System) { s.exec = IdleExecutor{Quantum: clocks} }
}

// WithDMA attaches the DMA channel controller.
func WithDMA(d cpu.DMA) Option {
	return func(s *System) { s.dma = d }
}

// WithInterrupts attaches the NMI/IRQ poll target.
func WithInterrupts(i cpu.Interrupts) Option {
	return func(s *System) { s.irq = i }
}

// WithCoprocessor adds a stand-in coprocessor running at frequency Hz. Fast
// coprocessors are billed after the CPU sub-steps and do not run during
// overclock cycles.
func WithCoprocessor(name string, frequency uint64, fast bool) Option {
	return func(s *System) {
		opts := []scheduler.ThreadOption{scheduler.WithScalar(s.cfg.Region.MasterClock())}
		if fast {
			opts = append(opts, scheduler.AsFast())
		}
		t := chip.NewTicker(name, frequency, 1, opts...)
		s.tickers = append(s.tickers, t)
		s.coprocessors = append(s.coprocessors, t.Thread())
	}
}

// WithCoprocessorThread adds an externally driven coprocessor context.
func WithCoprocessorThread(t *scheduler.Thread) Option {
	return func(s *System) { s.coprocessors = append(s.coprocessors, t) }
}

// WithOverscan selects the 240 line display mode.
func WithOverscan() Option {
	return func(s *System) { s.screen.Overscan = true }
}

// WithInterlace selects interlaced video timing.
func WithInterlace() Option {
	return func(s *System) { s.screen.Interlaced = true }
}

// WithMaxStalls changes how many idle resumes mark a chip as hung.
func WithMaxStalls(n int) Option {
	return func(s *System) { s.sched.MaxStalls = n }
}

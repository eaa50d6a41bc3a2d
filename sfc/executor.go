package sfc

import "github.com/valerio/go-sfc/sfc/cpu"

// DefaultQuantum is the length of an internal CPU operation in master cycles.
const DefaultQuantum = 6

// Executor runs the instruction stream of the main CPU. Each Exec call
// performs one bus operation and spends its cycles through the CPU, which
// bills every other chip for the elapsed time.
type Executor interface {
	Exec(c *cpu.CPU) error
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(c *cpu.CPU) error

func (f ExecutorFunc) Exec(c *cpu.CPU) error { return f(c) }

// IdleExecutor spends a fixed quantum per call, like a CPU parked in WAI.
// The multiply/divide unit and the DMA arbiter are still clocked, so
// transfers and ALU operations started by the host complete normally.
type IdleExecutor struct {
	Quantum int
}

func (e IdleExecutor) Exec(c *cpu.CPU) error {
	q := e.Quantum
	if q == 0 {
		q = DefaultQuantum
	}

	c.Status.ClockCount = q
	if err := c.Step(q); err != nil {
		return err
	}
	c.ALUEdge()
	return c.DMAEdge()
}

// Package chip provides stand-in chips for the roles the timing core
// schedules. They spend cycles without modelling any behaviour, which is
// enough to drive the scheduler when no real audio, video or coprocessor
// core is attached.
package chip

import "github.com/valerio/go-sfc/sfc/scheduler"

// Ticker consumes its clock budget in fixed native increments.
type Ticker struct {
	thread *scheduler.Thread
	step   uint
	ticks  uint64
}

// NewTicker returns a chip that spends step native cycles every time it is
// resumed. A zero step is treated as one.
func NewTicker(name string, frequency uint64, step uint, opts ...scheduler.ThreadOption) *Ticker {
	if step == 0 {
		step = 1
	}
	t := &Ticker{step: step}
	t.thread = scheduler.NewThread(name, frequency, t, opts...)
	return t
}

// Main spends one increment.
func (t *Ticker) Main() {
	t.thread.Step(t.step)
	t.ticks++
}

// Thread returns the clock context the scheduler resumes.
func (t *Ticker) Thread() *scheduler.Thread {
	return t.thread
}

// Ticks returns how many increments have been spent since the last reset.
func (t *Ticker) Ticks() uint64 {
	return t.ticks
}

// Reset clears the clock and the tick count.
func (t *Ticker) Reset() {
	t.thread.Reset()
	t.ticks = 0
}

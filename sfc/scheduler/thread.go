package scheduler

// State is the execution state of a chip context.
type State int

const (
	Idle State = iota
	Running
	Suspended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Chip is the simulation of one piece of silicon. Main runs a bounded unit
// of work (one instruction, one sample, one pixel batch) and must bill the
// cycles it spent through Thread.Step before returning. It is called again
// by the scheduler for as long as the chip is behind the master clock.
type Chip interface {
	Main()
}

// ChipFunc adapts a plain function to the Chip interface.
type ChipFunc func()

func (f ChipFunc) Main() { f() }

// Thread is the clock budget and execution context of a chip.
//
// Clock is signed: the CPU subtracts elapsed master time scaled by Frequency
// and the chip adds back what it spends, scaled by Scalar. A chip whose
// clock is negative is behind the CPU and owed execution.
type Thread struct {
	Name      string
	Clock     int64
	Frequency uint64
	Scalar    uint64

	// Fast chips are billed after the CPU's sub-steps instead of before the
	// overclock check, so they never run during overclock cycles.
	Fast bool

	state State
	chip  Chip
}

// ThreadOption configures a Thread.
type ThreadOption func(*Thread)

// WithScalar sets the multiplier applied to cycles the chip spends. It
// normally equals the CPU's own frequency so that both sides of the clock
// are measured in the same unit.
func WithScalar(scalar uint64) ThreadOption {
	return func(t *Thread) { t.Scalar = scalar }
}

// AsFast marks the thread as billed after the CPU sub-steps.
func AsFast() ThreadOption {
	return func(t *Thread) { t.Fast = true }
}

// NewThread creates an idle context for chip running at frequency.
func NewThread(name string, frequency uint64, chip Chip, opts ...ThreadOption) *Thread {
	t := &Thread{
		Name:      name,
		Frequency: frequency,
		Scalar:    1,
		chip:      chip,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current execution state.
func (t *Thread) State() State {
	return t.state
}

// Step bills clocks native cycles spent by the chip.
func (t *Thread) Step(clocks uint) {
	t.Clock += int64(uint64(clocks) * t.Scalar)
}

// Bill subtracts master cycles from the chip's budget, scaled by its
// frequency.
func (t *Thread) Bill(clocks uint) {
	t.Clock -= int64(uint64(clocks) * t.Frequency)
}

// Behind reports whether the chip owes execution.
func (t *Thread) Behind() bool {
	return t.Clock < 0
}

// Reset clears the clock and returns the context to idle.
func (t *Thread) Reset() {
	t.Clock = 0
	t.state = Idle
}

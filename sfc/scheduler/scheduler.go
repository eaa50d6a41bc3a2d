// Package scheduler coordinates the chips of the console. Execution is
// cooperative and single threaded: only one chip runs at a time, and a chip
// runs only when the CPU asks for it to be synchronized. This keeps the
// interleaving deterministic while letting each chip run ahead in batches
// between synchronization points.
package scheduler

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Event is a boundary notification left for the host.
type Event int

const (
	None Event = iota
	StartFrame
	EndFrame
)

func (e Event) String() string {
	switch e {
	case None:
		return "none"
	case StartFrame:
		return "start-frame"
	case EndFrame:
		return "end-frame"
	default:
		return "unknown"
	}
}

// DefaultMaxStalls is the number of consecutive Main calls without clock
// progress after which a chip is considered hung.
const DefaultMaxStalls = 64

var (
	// ErrChipHung is returned when a chip repeatedly returns control without
	// spending any cycles. The session cannot continue.
	ErrChipHung = errors.New("chip made no progress")

	// ErrReentrant is returned when a chip asks to synchronize a chip that is
	// already running further up the call chain.
	ErrReentrant = errors.New("chip is already running")
)

// Scheduler resumes chips and collects host events.
type Scheduler struct {
	MaxStalls int

	event     Event
	listeners []func(Event)

	resumes uint64
}

// New returns a scheduler with the default stall limit.
func New() *Scheduler {
	return &Scheduler{MaxStalls: DefaultMaxStalls}
}

// Synchronize runs t until its clock is no longer negative. It is a no-op
// when t is already caught up.
func (s *Scheduler) Synchronize(t *Thread) error {
	if !t.Behind() {
		return nil
	}
	if t.state == Running {
		return errors.Wrap(ErrReentrant, t.Name)
	}

	limit := s.MaxStalls
	if limit <= 0 {
		limit = DefaultMaxStalls
	}

	t.state = Running
	stalls := 0
	for t.Behind() {
		before := t.Clock
		t.chip.Main()
		s.resumes++

		if t.Clock > before {
			stalls = 0
			continue
		}

		stalls++
		if stalls >= limit {
			t.state = Suspended
			slog.Error("Chip hung", "chip", t.Name, "clock", t.Clock, "stalls", stalls)
			return errors.Wrapf(ErrChipHung, "%s after %d resumes", t.Name, stalls)
		}
	}
	t.state = Suspended

	return nil
}

// SynchronizeAll synchronizes every thread that is behind, in order.
func (s *Scheduler) SynchronizeAll(threads []*Thread) error {
	for _, t := range threads {
		if err := s.Synchronize(t); err != nil {
			return err
		}
	}
	return nil
}

// Leave records a host event and notifies listeners.
func (s *Scheduler) Leave(e Event) {
	s.event = e
	for _, fn := range s.listeners {
		fn(e)
	}
}

// OnEvent registers a callback invoked every time an event is left.
func (s *Scheduler) OnEvent(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

// Enter runs step until a host event is left and returns that event.
func (s *Scheduler) Enter(step func() error) (Event, error) {
	s.event = None
	for s.event == None {
		if err := step(); err != nil {
			return None, err
		}
	}
	e := s.event
	s.event = None
	return e, nil
}

// Resumes returns the number of chip Main calls made so far.
func (s *Scheduler) Resumes() uint64 {
	return s.resumes
}

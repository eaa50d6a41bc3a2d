package backend

import (
	"log/slog"

	"github.com/valerio/go-sfc/sfc"
)

// Action is a request from the backend to the run loop.
type Action int

const (
	// Quit stops the session after the current frame.
	Quit Action = iota + 1
	// TogglePause suspends or resumes frame execution.
	TogglePause
)

func (a Action) String() string {
	switch a {
	case Quit:
		return "quit"
	case TogglePause:
		return "toggle-pause"
	default:
		return "unknown"
	}
}

// Backend presents the timing state of a running session to the host.
// Backends are responsible for:
// - Showing per-frame progress on their output (log, terminal)
// - Translating host events (keys, signals) to Actions
type Backend interface {
	// Init configures the backend. It must be called before Update.
	Init(config Config) error

	// Update is called once per emulated frame, and repeatedly while
	// paused, with the latest stats. It returns the actions requested
	// since the previous call.
	Update(stats sfc.Stats) ([]Action, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// Config holds configuration for backends
type Config struct {
	Title    string
	LogLevel slog.Level // minimum level the backend shows
	Paused   bool       // start with execution suspended

	Callbacks Callbacks
}

// Callbacks allows backends to notify the host outside of Update.
type Callbacks struct {
	// OnQuit is called when the backend receives a termination signal.
	OnQuit func()
}

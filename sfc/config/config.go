package config

import (
	"strings"

	"github.com/pkg/errors"
)

// Region selects the video timing standard of the console.
type Region int

const (
	NTSC Region = iota
	PAL
)

// NTSC reports whether the 262 line timing is active.
func (r Region) NTSC() bool { return r == NTSC }

// PAL reports whether the 312 line timing is active.
func (r Region) PAL() bool { return r == PAL }

func (r Region) String() string {
	switch r {
	case NTSC:
		return "NTSC"
	case PAL:
		return "PAL"
	default:
		return "unknown"
	}
}

// ParseRegion converts a region name, case-insensitive, to a Region.
func ParseRegion(name string) (Region, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NTSC", "":
		return NTSC, nil
	case "PAL":
		return PAL, nil
	}
	return NTSC, errors.Errorf("unknown region %q", name)
}

// Lines returns the number of scanlines in a non-interlaced frame.
func (r Region) Lines() int {
	if r.PAL() {
		return 312
	}
	return 262
}

// MasterClock returns the master oscillator rate in Hz.
func (r Region) MasterClock() uint64 {
	if r.PAL() {
		return 21281370
	}
	return 21477272
}

// LastLine returns the scanline before vertical counter wrap.
func (r Region) LastLine() int {
	return r.Lines() - 1
}

// Config holds the session settings consumed by the timing core. Values are
// read-only for the lifetime of a session.
type Config struct {
	Region Region

	// CPUVersion is the S-CPU revision (1 or 2). It changes the DRAM refresh
	// and HDMA setup trigger positions.
	CPUVersion int

	// Overclock is a percentage, 100 is nominal speed.
	Overclock int

	DelayedSync       bool // defer coprocessor sync to explicit sync points
	FastJoypadPolling bool
	FastPPU           bool // video chip buffers scanlines and must be flushed at vblank
}

// Default returns the nominal configuration of an NTSC revision 2 console.
func Default() Config {
	return Config{
		Region:     NTSC,
		CPUVersion: 2,
		Overclock:  100,
	}
}

// Validate checks that the configuration describes a console the core can run.
func (c Config) Validate() error {
	if c.Region != NTSC && c.Region != PAL {
		return errors.Errorf("invalid region %d", c.Region)
	}
	if c.CPUVersion != 1 && c.CPUVersion != 2 {
		return errors.Errorf("invalid cpu version %d, must be 1 or 2", c.CPUVersion)
	}
	if c.Overclock < 100 || c.Overclock > 400 {
		return errors.Errorf("overclock %d%% out of range [100, 400]", c.Overclock)
	}
	return nil
}

// Package counter tracks the horizontal and vertical beam position in master
// clock units. H advances in steps of the CPU quantum; every wrap of H moves
// V down one scanline and runs the scanline callback.
package counter

import "github.com/valerio/go-sfc/sfc/config"

const (
	// LineClocks is the length of a regular scanline in master cycles.
	LineClocks = 1364

	shortLineClocks = 1360
	longLineClocks  = 1368
)

// Counter is the beam position shared by the CPU and the video chip.
type Counter struct {
	H     int
	V     int
	Field int

	region    config.Region
	interlace func() bool
	scanline  func()
}

// New returns a counter for the given region. interlace reports the video
// chip's current interlace setting and may be nil. scanline is called after
// every vertical increment.
func New(region config.Region, interlace func() bool, scanline func()) *Counter {
	if interlace == nil {
		interlace = func() bool { return false }
	}
	if scanline == nil {
		scanline = func() {}
	}
	return &Counter{
		region:    region,
		interlace: interlace,
		scanline:  scanline,
	}
}

// Reset moves the beam to the top left of the first field.
func (c *Counter) Reset() {
	c.H = 0
	c.V = 0
	c.Field = 0
}

// Tick advances the horizontal position.
func (c *Counter) Tick(clocks int) {
	c.H += clocks
	if c.H >= c.LineClocks() {
		c.H -= c.LineClocks()
		c.vtick()
	}
}

// LineClocks returns the length of the current scanline. NTSC drops four
// clocks from line 240 of odd non-interlaced fields; PAL adds four to line 311
// of odd interlaced fields.
func (c *Counter) LineClocks() int {
	if c.region.NTSC() && !c.interlace() && c.V == 240 && c.Field == 1 {
		return shortLineClocks
	}
	if c.region.PAL() && c.interlace() && c.V == 311 && c.Field == 1 {
		return longLineClocks
	}
	return LineClocks
}

// FrameLines returns the number of scanlines in the current field.
func (c *Counter) FrameLines() int {
	lines := c.region.Lines()
	if c.interlace() && c.Field == 0 {
		lines++
	}
	return lines
}

func (c *Counter) vtick() {
	c.V++
	if c.V >= c.FrameLines() {
		c.V = 0
		c.Field ^= 1
	}
	c.scanline()
}

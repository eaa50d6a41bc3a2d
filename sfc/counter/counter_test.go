package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-sfc/sfc/config"
)

func TestCounter_WrapsLine(t *testing.T) {
	lines := 0
	c := New(config.NTSC, nil, func() { lines++ })

	for range LineClocks/2 - 1 {
		c.Tick(2)
	}
	assert.Equal(t, 1362, c.H)
	assert.Equal(t, 0, lines)

	c.Tick(2)
	assert.Equal(t, 0, c.H)
	assert.Equal(t, 1, c.V)
	assert.Equal(t, 1, lines)
}

func TestCounter_FrameWrap(t *testing.T) {
	tests := []struct {
		name      string
		region    config.Region
		interlace bool
		lines     int
	}{
		{"ntsc", config.NTSC, false, 262},
		{"pal", config.PAL, false, 312},
		{"ntsc interlace even field", config.NTSC, true, 263},
		{"pal interlace even field", config.PAL, true, 313},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanlines := 0
			c := New(tt.region, func() bool { return tt.interlace }, func() { scanlines++ })

			for c.Field == 0 {
				c.Tick(2)
			}

			assert.Equal(t, tt.lines, scanlines)
			assert.Equal(t, 0, c.V)
			assert.Equal(t, 0, c.H)
		})
	}
}

func TestCounter_LineClocks(t *testing.T) {
	c := New(config.NTSC, nil, nil)
	c.V = 240
	assert.Equal(t, LineClocks, c.LineClocks(), "even field is full length")
	c.Field = 1
	assert.Equal(t, 1360, c.LineClocks(), "odd field line 240 is short")

	interlaced := true
	p := New(config.PAL, func() bool { return interlaced }, nil)
	p.V = 311
	p.Field = 1
	assert.Equal(t, 1368, p.LineClocks())
	interlaced = false
	assert.Equal(t, LineClocks, p.LineClocks())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, NTSC, cfg.Region)
	assert.Equal(t, 2, cfg.CPUVersion)
	assert.Equal(t, 100, cfg.Overclock)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"pal", func(c *Config) { c.Region = PAL }, false},
		{"version 1", func(c *Config) { c.CPUVersion = 1 }, false},
		{"version 3", func(c *Config) { c.CPUVersion = 3 }, true},
		{"bad region", func(c *Config) { c.Region = Region(7) }, true},
		{"underclock", func(c *Config) { c.Overclock = 50 }, true},
		{"overclock 150", func(c *Config) { c.Overclock = 150 }, false},
		{"overclock too high", func(c *Config) { c.Overclock = 1000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegion(t *testing.T) {
	assert.True(t, NTSC.NTSC())
	assert.False(t, NTSC.PAL())
	assert.Equal(t, 262, NTSC.Lines())
	assert.Equal(t, 261, NTSC.LastLine())
	assert.Equal(t, 312, PAL.Lines())
	assert.Equal(t, 311, PAL.LastLine())
	assert.Equal(t, uint64(21477272), NTSC.MasterClock())
	assert.Equal(t, uint64(21281370), PAL.MasterClock())

	r, err := ParseRegion("pal")
	require.NoError(t, err)
	assert.Equal(t, PAL, r)

	_, err = ParseRegion("secam")
	assert.Error(t, err)
}

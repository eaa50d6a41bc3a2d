package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-sfc/sfc/config"
	"github.com/valerio/go-sfc/sfc/scheduler"
)

func TestStep_BillsEveryChip(t *testing.T) {
	for _, q := range []int{2, 4, 6, 8, 10, 12} {
		r := newRig(delayed(), nil)

		require.NoError(t, r.cpu.Step(q))

		assert.Equal(t, uint64(q), r.cpu.Counter.CPU, "quantum %d", q)
		assert.Equal(t, int64(-q*3), r.cop.Clock, "coprocessor scaled by frequency, quantum %d", q)
		assert.Equal(t, int64(-q*5), r.fast.Clock, "fast coprocessor scaled by frequency, quantum %d", q)
		assert.Equal(t, int64(-q), r.smp.Clock, "audio billed at native rate, quantum %d", q)
		assert.Equal(t, int64(-q), r.ppu.Clock, "video billed at native rate, quantum %d", q)
	}
}

func TestStep_InvalidQuantumPanics(t *testing.T) {
	r := newRig(config.Default(), nil)
	for _, q := range []int{0, 1, 3, 7, 14, -2} {
		assert.Panics(t, func() { _ = r.cpu.Step(q) }, "quantum %d", q)
	}
}

func TestStep_EndToEnd(t *testing.T) {
	r := newRig(delayed(), nil)
	r.cop.Frequency = 1
	r.cpu.IO.AutoJoypadPoll = true
	r.cpu.Position().V = 230 // vblank, where joypad edges are counted
	before := r.cop.Clock

	for range 6 {
		require.NoError(t, r.cpu.Step(8))
	}

	assert.Equal(t, uint64(48), r.cpu.Counter.CPU)
	assert.Equal(t, before-48, r.cop.Clock)
	assert.Zero(t, r.cpu.Status.AutoJoypadCounter, "no joypad edge inside the first 256 cycles")

	for range 26 {
		require.NoError(t, r.cpu.Step(8))
	}
	assert.Equal(t, uint64(256), r.cpu.Counter.CPU)
	assert.Equal(t, 1, r.cpu.Status.AutoJoypadCounter, "edge fires at the 256 cycle boundary")

	for range 31 {
		require.NoError(t, r.cpu.Step(8))
	}
	assert.Equal(t, 1, r.cpu.Status.AutoJoypadCounter)
	require.NoError(t, r.cpu.Step(8))
	assert.Equal(t, 2, r.cpu.Status.AutoJoypadCounter)
}

func TestStep_SynchronizesCoprocessors(t *testing.T) {
	r := newRig(config.Default(), nil)

	require.NoError(t, r.cpu.Step(8))

	assert.False(t, r.cop.Behind(), "coprocessor caught up")
	assert.False(t, r.fast.Behind(), "fast coprocessor caught up")
	assert.Equal(t, scheduler.Suspended, r.cop.State())
	assert.Equal(t, int64(-8), r.smp.Clock, "audio waits for an explicit sync")
	assert.Equal(t, int64(-8), r.ppu.Clock, "video waits for an explicit sync")
}

func TestStep_DelayedSync(t *testing.T) {
	r := newRig(delayed(), nil)

	require.NoError(t, r.cpu.Step(8))
	assert.Equal(t, int64(-24), r.cop.Clock)
	assert.Equal(t, scheduler.Idle, r.cop.State())

	r.cpu.SynchronizeCoprocessors()
	require.NoError(t, r.cpu.Err())
	assert.Zero(t, r.cop.Clock)
	assert.Zero(t, r.fast.Clock)
}

func TestStep_HungCoprocessorIsFatal(t *testing.T) {
	sched := scheduler.New()
	sched.MaxStalls = 3
	stuck := scheduler.NewThread("stuck", 1, scheduler.ChipFunc(func() {}))
	c := New(config.Default(), sched, Chips{Coprocessors: []*scheduler.Thread{stuck}})
	c.Power()

	err := c.Step(2)
	require.Error(t, err)
	assert.Equal(t, scheduler.ErrChipHung, errors.Cause(err))

	counter := c.Counter.CPU
	assert.Equal(t, err, c.Step(2), "error is sticky")
	assert.Equal(t, counter, c.Counter.CPU, "no further progress after a fatal error")
}

func TestStep_InterruptPollPhase(t *testing.T) {
	r := newRig(delayed(), nil)

	require.NoError(t, r.cpu.Step(12))
	assert.Equal(t, 3, r.irq.polls, "polled on sub-steps where H bit 1 is set")
}

func TestStep_DRAMRefresh(t *testing.T) {
	tests := []struct {
		name     string
		version  int
		position uint64
	}{
		{"revision 1", 1, 530},
		{"revision 2", 2, 538},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := delayed()
			cfg.CPUVersion = tt.version
			r := newRig(cfg, nil)
			r.cpu.ALU.MPYCTR = 100

			for r.cpu.Counter.CPU < tt.position-2 {
				require.NoError(t, r.cpu.Step(2))
			}
			assert.Equal(t, RefreshIdle, r.cpu.Status.DRAMRefresh)
			assert.Equal(t, uint(100), r.cpu.ALU.MPYCTR)

			require.NoError(t, r.cpu.Step(2))

			assert.Equal(t, tt.position+40, r.cpu.Counter.CPU, "five bursts of 6+2 cycles")
			assert.Equal(t, uint(95), r.cpu.ALU.MPYCTR, "one ALU edge per burst")
			assert.Equal(t, RefreshPhase2, r.cpu.Status.DRAMRefresh)
			assert.Equal(t,
				[]Refresh{1, 2, 1, 2, 1, 2, 1, 2, 1, 2},
				r.irq.phases, "6 cycle phase then 2 cycle phase in every burst")
			assert.Equal(t, int64(-int64(tt.position+40)), r.ppu.Clock, "refresh cycles are billed")
		})
	}
}

func TestStep_DRAMRefreshOncePerLine(t *testing.T) {
	r := newRig(delayed(), nil)
	r.cpu.ALU.MPYCTR = 1000

	refreshes := 0
	for r.cpu.V() < 3 {
		before := r.cpu.Counter.CPU
		require.NoError(t, r.cpu.Step(2))
		if r.cpu.Counter.CPU-before == 42 {
			refreshes++
		}
	}

	assert.Equal(t, 3, refreshes)
	assert.Equal(t, uint(1000-15), r.cpu.ALU.MPYCTR)
	assert.Zero(t, r.cpu.H())
	assert.Equal(t, uint64(3*1364), r.cpu.Counter.CPU, "refresh cycles come out of the line, not on top of it")
}

func TestStep_Overclock(t *testing.T) {
	cfg := delayed()
	cfg.Overclock = 150
	r := newRig(cfg, nil)
	r.cpu.Overclocking.Target = 20

	require.NoError(t, r.cpu.Step(8))
	require.NoError(t, r.cpu.Step(8))

	assert.Equal(t, uint64(16), r.cpu.Overclocking.Counter)
	assert.Zero(t, r.cpu.Counter.CPU, "master clock does not move during overclock cycles")
	assert.Zero(t, r.smp.Clock)
	assert.Zero(t, r.ppu.Clock)
	assert.Zero(t, r.fast.Clock)
	assert.Equal(t, int64(-48), r.cop.Clock, "coprocessors sharing the CPU bus still run")

	require.NoError(t, r.cpu.Step(8))
	assert.Equal(t, uint64(24), r.cpu.Overclocking.Counter)
	assert.Equal(t, uint64(8), r.cpu.Counter.CPU, "budget exhausted, cycles are real again")
	assert.Equal(t, int64(-8), r.ppu.Clock)
}

func TestStep_HDMATriggersOncePerLine(t *testing.T) {
	dma := &fakeDMA{hdmaEnable: true, hdmaActive: true}
	r := newRig(delayed(), dma)
	dma.cpu = r.cpu

	e, err := r.sched.Enter(func() error { return r.cpu.Step(2) })
	require.NoError(t, err)
	require.Equal(t, scheduler.EndFrame, e)

	assert.Equal(t, 1, dma.resets, "setup triggers once per frame")
	assert.Equal(t, 225, dma.activeChecks, "run triggers once per visible line")
	assert.True(t, r.cpu.Status.HDMAPending)
	assert.Equal(t, 1, r.cpu.Status.HDMAMode)

	e, err = r.sched.Enter(func() error { return r.cpu.Step(2) })
	require.NoError(t, err)
	require.Equal(t, scheduler.StartFrame, e)

	assert.Equal(t, 1, dma.resets)
	assert.Equal(t, 225, dma.activeChecks, "no HDMA during vblank")
	assert.False(t, r.cpu.Status.HDMASetupTriggered, "re-armed for the new frame")

	for r.cpu.H() < 12 {
		require.NoError(t, r.cpu.Step(2))
	}
	assert.Equal(t, 2, dma.resets)
	assert.Equal(t, 0, r.cpu.Status.HDMAMode)
}

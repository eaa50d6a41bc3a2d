package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func readAll(d Device, n int) []uint8 {
	bits := make([]uint8, n)
	for i := range bits {
		bits[i] = d.Data()
	}
	return bits
}

func TestGamepad_SerialOrder(t *testing.T) {
	g := NewGamepad()
	g.Press(ButtonB)
	g.Press(ButtonStart)
	g.Press(ButtonR)

	g.Latch(true)
	g.Latch(false)

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 1}
	assert.Equal(t, want, readAll(g, len(want)))
}

func TestGamepad_LatchedReadsB(t *testing.T) {
	g := NewGamepad()
	g.Press(ButtonB)
	g.Latch(true)

	assert.Equal(t, []uint8{1, 1, 1}, readAll(g, 3), "latched pad keeps returning B")

	g.Release(ButtonB)
	assert.Equal(t, uint8(0), g.Data())
}

func TestGamepad_Set(t *testing.T) {
	g := NewGamepad()
	g.Set(0xffff)
	g.Latch(true)
	g.Latch(false)

	bits := readAll(g, 16)
	for i := range 12 {
		assert.Equal(t, uint8(1), bits[i], "button %d", i)
	}
	for i := 12; i < 16; i++ {
		assert.Equal(t, uint8(0), bits[i], "id bit %d", i)
	}
}

type lightGun struct {
	None
	latched int
}

func (l *lightGun) LatchPosition() { l.latched++ }

func TestPort(t *testing.T) {
	t.Run("empty port", func(t *testing.T) {
		var p Port
		p.Latch(true)
		assert.Equal(t, uint8(0), p.Data())
		p.LatchPosition()
	})

	t.Run("light gun", func(t *testing.T) {
		var p Port
		gun := &lightGun{}
		p.Connect(gun)
		p.LatchPosition()
		assert.Equal(t, 1, gun.latched)
	})

	t.Run("disconnect", func(t *testing.T) {
		var p Port
		p.Connect(NewGamepad())
		p.Connect(nil)
		assert.Equal(t, None{}, p.Device)
	})
}

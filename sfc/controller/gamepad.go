package controller

// Button is one of the twelve gamepad buttons, in serial shift order.
type Button uint8

const (
	ButtonB Button = iota
	ButtonY
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonX
	ButtonL
	ButtonR
)

// Gamepad is the standard twelve button controller.
type Gamepad struct {
	pressed uint16 // bit n set when Button(n) is held

	latched bool
	counter int
}

// NewGamepad returns a gamepad with no buttons held.
func NewGamepad() *Gamepad {
	return &Gamepad{}
}

// Press holds a button down.
func (g *Gamepad) Press(b Button) {
	g.pressed |= 1 << b
}

// Release lets a button go.
func (g *Gamepad) Release(b Button) {
	g.pressed &^= 1 << b
}

// Set replaces the full button state. Bit n corresponds to Button(n).
func (g *Gamepad) Set(state uint16) {
	g.pressed = state & 0x0fff
}

// Latch resets the shift position on any change of the latch line.
func (g *Gamepad) Latch(data bool) {
	if g.latched == data {
		return
	}
	g.latched = data
	g.counter = 0
}

// Data shifts out B, Y, Select, Start, Up, Down, Left, Right, A, X, L, R,
// then four zero bits. After sixteen reads the line stays high.
func (g *Gamepad) Data() uint8 {
	if g.counter >= 16 {
		return 1
	}
	if g.latched {
		return g.bit(ButtonB)
	}

	n := g.counter
	g.counter++
	if n >= 12 {
		return 0
	}
	return g.bit(Button(n))
}

func (g *Gamepad) bit(b Button) uint8 {
	return uint8(g.pressed>>b) & 1
}

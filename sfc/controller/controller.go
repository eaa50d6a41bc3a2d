// Package controller models the two front controller ports and the devices
// plugged into them. Devices are read serially: Latch(true) then Latch(false)
// snapshots the device state, and every Data call shifts out the next bit.
package controller

// Device is anything that can be plugged into a controller port.
type Device interface {
	Latch(data bool)
	// Data returns the two serial data lines, D0 in bit 0 and D1 in bit 1.
	Data() uint8
}

// PositionLatcher is implemented by light guns, which latch the beam
// position when the CPU enters vertical blank.
type PositionLatcher interface {
	LatchPosition()
}

// Port is a controller port. An empty port reads as all zeroes.
type Port struct {
	Device Device
}

// Connect plugs a device into the port. Passing nil empties it.
func (p *Port) Connect(d Device) {
	if d == nil {
		d = None{}
	}
	p.Device = d
}

// Latch drives the latch line of the connected device.
func (p *Port) Latch(data bool) {
	p.device().Latch(data)
}

// Data reads the serial lines of the connected device.
func (p *Port) Data() uint8 {
	return p.device().Data() & 3
}

// LatchPosition forwards the vblank position latch to light guns.
func (p *Port) LatchPosition() {
	if pl, ok := p.device().(PositionLatcher); ok {
		pl.LatchPosition()
	}
}

func (p *Port) device() Device {
	if p.Device == nil {
		return None{}
	}
	return p.Device
}

// None is an empty port.
type None struct{}

func (None) Latch(bool)  {}
func (None) Data() uint8 { return 0 }

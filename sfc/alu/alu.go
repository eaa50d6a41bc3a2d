// Package alu implements the CPU's hardware multiply/divide unit. The unit
// does not compute its result at once: each Edge call advances the multiply
// or divide by one bit, and software reading the result registers early sees
// the partial value.
package alu

// ALU holds the in-flight state and the result registers.
type ALU struct {
	MPYCTR uint   // multiply edges remaining
	DIVCTR uint   // divide edges remaining
	Shift  uint32 // shifted operand

	RDDIV uint16 // quotient / multiplier shift register
	RDMPY uint16 // product / remainder

	wrmpya uint8
	wrdiva uint16
}

// Power resets the unit to its power-on state.
func (a *ALU) Power() {
	*a = ALU{wrmpya: 0xff, wrdiva: 0xffff}
}

// Busy reports whether a multiply or divide is in progress.
func (a *ALU) Busy() bool {
	return a.MPYCTR != 0 || a.DIVCTR != 0
}

// Edge advances any in-flight operation by one bit.
func (a *ALU) Edge() {
	if a.MPYCTR != 0 {
		a.MPYCTR--
		if a.RDDIV&1 != 0 {
			a.RDMPY += uint16(a.Shift)
		}
		a.RDDIV >>= 1
		a.Shift <<= 1
	}

	if a.DIVCTR != 0 {
		a.DIVCTR--
		a.RDDIV <<= 1
		a.Shift >>= 1
		if uint32(a.RDMPY) >= a.Shift {
			a.RDMPY -= uint16(a.Shift)
			a.RDDIV |= 1
		}
	}
}

// WriteMultiplicand latches WRMPYA.
func (a *ALU) WriteMultiplicand(v uint8) {
	a.wrmpya = v
}

// WriteMultiplier latches WRMPYB and starts an eight edge multiplication.
// The product register is cleared even when the unit is busy.
func (a *ALU) WriteMultiplier(v uint8) {
	a.RDMPY = 0
	if a.Busy() {
		return
	}
	a.RDDIV = uint16(v)<<8 | uint16(a.wrmpya)
	a.MPYCTR = 8
	a.Shift = uint32(v)
}

// WriteDividend latches WRDIVL/WRDIVH.
func (a *ALU) WriteDividend(v uint16) {
	a.wrdiva = v
}

// WriteDivisor latches WRDIVB and starts a sixteen edge division.
func (a *ALU) WriteDivisor(v uint8) {
	a.RDMPY = a.wrdiva
	if a.Busy() {
		return
	}
	a.DIVCTR = 16
	a.Shift = uint32(v) << 16
}

// WriteMultiply is shorthand for WRMPYA followed by WRMPYB.
func (a *ALU) WriteMultiply(multiplicand, multiplier uint8) {
	a.WriteMultiplicand(multiplicand)
	a.WriteMultiplier(multiplier)
}

// WriteDivide is shorthand for WRDIV followed by WRDIVB.
func (a *ALU) WriteDivide(dividend uint16, divisor uint8) {
	a.WriteDividend(dividend)
	a.WriteDivisor(divisor)
}

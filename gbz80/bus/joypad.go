package bus

import "github.com/corvid-labs/gbz80/bit"

// JoypadKey identifies one of the eight Game Boy buttons, in the bit order
// spec.md §3 assigns them within the internal state byte.
type JoypadKey uint8

const (
	KeyRight JoypadKey = iota
	KeyLeft
	KeyUp
	KeyDown
	KeyA
	KeyB
	KeySelect
	KeyStart
)

// Joypad tracks button state (1 = released, 0 = pressed) and composes the
// P1 register's low nibble from whichever row(s) the game has selected, per
// spec.md §4.1.
type Joypad struct {
	buttons uint8 // A=0, B=1, Select=2, Start=3
	dpad    uint8 // Right=0, Left=1, Up=2, Down=3
}

// NewJoypad returns a Joypad with every button released.
func NewJoypad() Joypad {
	return Joypad{buttons: 0x0F, dpad: 0x0F}
}

// Read synthesizes the P1 register value given its currently stored
// selection bits (bits 4-5 of storedP1).
func (j *Joypad) Read(storedP1 uint8) uint8 {
	selectDpad := !bit.IsSet(4, storedP1)
	selectButtons := !bit.IsSet(5, storedP1)

	var low uint8 = 0x0F
	switch {
	case selectDpad && selectButtons:
		low = j.dpad & j.buttons
	case selectDpad:
		low = j.dpad
	case selectButtons:
		low = j.buttons
	}

	return (storedP1 & 0x30) | 0xC0 | low
}

// Write updates the stored P1 selection bits; only bits 4-5 are writable.
func (j *Joypad) Write(storedP1, value uint8) uint8 {
	return (storedP1 & 0xC0) | (value & 0x30) | (storedP1 & 0x0F)
}

// Press marks key as pressed and reports whether this was a release-to-press
// transition on a row the game currently has selected via P1[4:5] — the
// condition spec.md requires for raising the Joypad interrupt.
func (j *Joypad) Press(key JoypadKey, storedP1 uint8) bool {
	before := j.rowFor(key)
	wasReleased := bit.IsSet(j.bitFor(key), before)
	*j.rowPtr(key) = bit.Reset(j.bitFor(key), before)

	rowSelected := false
	if key <= KeyDown {
		rowSelected = !bit.IsSet(4, storedP1)
	} else {
		rowSelected = !bit.IsSet(5, storedP1)
	}

	return wasReleased && rowSelected
}

// Release marks key as released.
func (j *Joypad) Release(key JoypadKey) {
	*j.rowPtr(key) = bit.Set(j.bitFor(key), j.rowFor(key))
}

func (j *Joypad) rowPtr(key JoypadKey) *uint8 {
	if key <= KeyDown {
		return &j.dpad
	}
	return &j.buttons
}

func (j *Joypad) rowFor(key JoypadKey) uint8 {
	return *j.rowPtr(key)
}

func (j *Joypad) bitFor(key JoypadKey) uint8 {
	if key <= KeyDown {
		return uint8(key)
	}
	return uint8(key - KeyA)
}

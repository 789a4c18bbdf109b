// Package cpu implements the SM83 (Sharp LR35902-family) interpreter:
// register file, flags, the fetch/decode/execute loop and interrupt
// acceptance, per spec.md §4.3.
package cpu

import (
	"github.com/corvid-labs/gbz80/addr"
	"github.com/corvid-labs/gbz80/bus"
)

// CPU holds the SM83 register file and drives one instruction at a time
// against a *bus.Bus. It does not own the bus — every other device can
// observe the same memory-mapped side effects, per spec.md §4.3/§5.
type CPU struct {
	bus *bus.Bus

	a, f uint8
	b, c uint8
	d, e uint8
	h, l uint8
	sp   uint16
	pc   uint16

	ime       bool
	eiPending bool // EI executed this Step; armed for application next Step
	eiArmed   bool // armed on the prior Step; ime applies at the top of this one
	halted    bool

	currentOpcode uint8
}

// New creates a CPU wired to bus. Registers are initialized to the DMG's
// documented post-boot-ROM values so a cartridge that skips running a boot
// ROM (this emulator never maps one in) still sees the state real games
// expect.
func New(b *bus.Bus) *CPU {
	return &CPU{
		bus: b,
		a:   0x01, f: 0xB0,
		b: 0x00, c: 0x13,
		d: 0x00, e: 0xD8,
		h: 0x01, l: 0x4D,
		sp: 0xFFFE,
		pc: 0x0100,
	}
}

// PC returns the current program counter, mainly for disassembly/debugging.
func (c *CPU) PC() uint16 { return c.pc }

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool { return c.halted }

// Step executes exactly one instruction (or, if halted, does nothing) and
// returns the number of T-cycles it consumed. Interrupt acceptance is
// checked first, at the instruction boundary, per spec.md §4.3/§5.
//
// EI's documented one-instruction delay means IME must not take effect
// until the instruction following EI has itself fully executed: eiArmed
// carries that across the Step boundary, applied here (after this Step's
// own interrupt check, before this Step's own fetch) rather than at the
// end of EI's Step.
func (c *CPU) Step() int {
	cycles := c.acceptInterrupt()
	if cycles > 0 {
		return cycles
	}

	if c.eiArmed {
		c.eiArmed = false
		c.ime = true
	}

	if c.halted {
		return 4
	}

	opcode := c.fetch8()
	c.currentOpcode = opcode

	used := execute(c, opcode)

	if c.eiPending {
		c.eiPending = false
		c.eiArmed = true
	}

	return used
}

// fetch8 reads the byte at PC and advances PC.
func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

// fetch16 reads a little-endian word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return uint16(high)<<8 | uint16(low)
}

// acceptInterrupt services the lowest-priority-index pending, enabled
// interrupt if IME is set, per spec.md §4.3. Returns the dispatch cycle
// cost (20 T-cycles) or 0 if nothing was serviced.
func (c *CPU) acceptInterrupt() int {
	pending := c.bus.PendingInterrupts()

	if pending != 0 {
		c.halted = false
	}

	if !c.ime {
		return 0
	}
	if pending == 0 {
		return 0
	}

	for _, src := range addr.Ordered {
		if pending&(1<<src.BitIndex()) == 0 {
			continue
		}

		c.ime = false
		c.bus.ClearInterrupt(src)
		c.pushStack(c.pc)
		c.pc = src.Vector()
		return 20
	}

	return 0
}

// halt puts the CPU to sleep until any enabled interrupt becomes pending;
// acceptInterrupt unhalts it on the next Step regardless of IME, and
// services it only if IME is set, per spec.md §4.3.
func (c *CPU) halt() {
	c.halted = true
}

func (c *CPU) di() {
	c.ime = false
	c.eiPending = false
}

func (c *CPU) ei() {
	c.eiPending = true
}

func (c *CPU) reti() {
	c.pc = c.popStack()
	c.ime = true
}

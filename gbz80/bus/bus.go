// Package bus implements the Game Boy's 16-bit memory-mapped address space:
// cartridge bank switching, VRAM/WRAM/HRAM, echo RAM, OAM DMA, the joypad
// register mirror, and interrupt flag plumbing. Every other component (CPU,
// timer, PPU) accesses memory exclusively through a *Bus so side effects
// apply uniformly, per spec.md §4.1 and §5.
package bus

import (
	"fmt"
	"log/slog"

	"github.com/corvid-labs/gbz80/addr"
	"github.com/corvid-labs/gbz80/bit"
	"github.com/corvid-labs/gbz80/cartridge"
)

// Bus owns the entire emulated address space.
type Bus struct {
	memory [0x10000]byte
	mbc    cartridge.MBC

	joypad Joypad
	timer  Timer
	serial Serial

	bootROMLoaded bool
	header        [0x100]byte // cartridge bytes 0x000-0x0FF, restored after boot overlay

	lastDecodeFaultPC uint16
}

// New creates a Bus with no cartridge loaded (equivalent to power-on with an
// empty cartridge slot).
func New() *Bus {
	b := &Bus{}
	b.joypad = NewJoypad()
	b.serial = NewSerial()
	return b
}

// NewWithCartridge creates a Bus with the given cartridge's ROM mapped in
// and its MBC wired up.
func NewWithCartridge(cart *cartridge.Cartridge, mbc cartridge.MBC) *Bus {
	b := New()
	b.mbc = mbc
	copy(b.header[:], cart.Data[:min(len(cart.Data), 0x100)])
	copy(b.memory[:min(len(cart.Data), 0x100)], cart.Data)
	return b
}

// Tick advances the timer and serial port by the given number of T-cycles.
// The PPU and CPU are advanced by the scheduler directly.
func (b *Bus) Tick(cycles int) {
	if b.timer.Tick(cycles) {
		b.RequestInterrupt(addr.Timer)
	}
	if b.serial.Tick(cycles) {
		b.RequestInterrupt(addr.Serial)
	}
}

// OverlayBootHeader restores the original cartridge header bytes over
// 0x0000-0x00FF. Real hardware unmaps its boot ROM here; this emulator never
// maps one in, so the only observable effect is a one-time no-op the first
// time PC reaches 0x0100 (kept for parity with spec.md §4.6 and so a future
// boot-ROM image could be inserted ahead of it without changing this call
// site).
func (b *Bus) OverlayBootHeader() {
	if b.bootROMLoaded {
		return
	}
	copy(b.memory[:0x100], b.header[:])
	b.bootROMLoaded = true
}

// Read returns the byte at addr, applying bank switching, echo mirroring and
// I/O register side effects as specified in spec.md §4.1.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address <= 0x7FFF:
		if b.mbc == nil {
			return b.memory[address]
		}
		return b.mbc.ReadROM(address)
	case address <= 0x9FFF:
		return b.memory[address]
	case address <= 0xBFFF:
		if b.mbc == nil {
			return 0xFF
		}
		return b.mbc.ReadRAM(address)
	case address <= 0xDFFF:
		return b.memory[address]
	case address <= 0xFDFF:
		return b.memory[address-0x2000]
	case address <= 0xFE9F:
		return b.memory[address]
	case address <= 0xFEFF:
		return 0xFF
	case address == addr.P1:
		return b.joypad.Read(b.memory[addr.P1])
	case address == addr.SB, address == addr.SC:
		return b.serial.Read(address)
	case address == addr.DIV, address == addr.TIMA, address == addr.TMA, address == addr.TAC:
		return b.timer.Read(address)
	case address == addr.IF:
		return b.memory[address] | 0xE0
	default:
		return b.memory[address]
	}
}

// Write stores value at addr, applying MBC register decoding, echo
// mirroring, DMA and I/O register side effects as specified in spec.md §4.1.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF:
		if b.mbc == nil {
			b.memory[address] = value
			return
		}
		b.mbc.WriteROM(address, value)
	case address <= 0x9FFF:
		b.memory[address] = value
	case address <= 0xBFFF:
		if b.mbc != nil {
			b.mbc.WriteRAM(address, value)
		}
	case address <= 0xDFFF:
		b.memory[address] = value
	case address <= 0xFDFF:
		b.memory[address-0x2000] = value
	case address <= 0xFE9F:
		b.memory[address] = value
	case address <= 0xFEFF:
		// prohibited range: writes silently discarded
	case address == addr.P1:
		b.memory[addr.P1] = b.joypad.Write(b.memory[addr.P1], value)
	case address == addr.SB, address == addr.SC:
		b.serial.Write(address, value)
	case address == addr.DIV, address == addr.TIMA, address == addr.TMA, address == addr.TAC:
		b.timer.Write(address, value)
	case address == addr.DMA:
		b.performDMA(value)
	case address == addr.IF:
		b.memory[address] = value | 0xE0
	default:
		b.memory[address] = value
	}
}

// ReadByte satisfies disasm.Reader so a *Bus can be disassembled directly.
func (b *Bus) ReadByte(address uint16) uint8 { return b.Read(address) }

// performDMA copies 160 bytes from (value<<8) into OAM, per spec.md §4.1.
func (b *Bus) performDMA(sourceHigh uint8) {
	source := uint16(sourceHigh) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.Write(addr.OAMStart+i, b.Read(source+i))
	}
	b.memory[addr.DMA] = sourceHigh
}

// RequestInterrupt sets the given interrupt's bit in IF.
func (b *Bus) RequestInterrupt(i addr.Interrupt) {
	flags := b.Read(addr.IF)
	b.Write(addr.IF, bit.Set(i.BitIndex(), flags))
}

// ClearInterrupt clears the given interrupt's bit in IF.
func (b *Bus) ClearInterrupt(i addr.Interrupt) {
	flags := b.Read(addr.IF)
	b.Write(addr.IF, bit.Reset(i.BitIndex(), flags))
}

// PendingInterrupts returns the bits set in both IF and IE.
func (b *Bus) PendingInterrupts() uint8 {
	return b.Read(addr.IF) & b.Read(addr.IE)
}

// PressKey and ReleaseKey forward joypad button events; release-to-press
// transitions raise the Joypad interrupt per spec.md's edge-triggered rule.
func (b *Bus) PressKey(key JoypadKey) {
	if b.joypad.Press(key, b.memory[addr.P1]) {
		b.RequestInterrupt(addr.Joypad)
	}
}

func (b *Bus) ReleaseKey(key JoypadKey) {
	b.joypad.Release(key)
}

// LogDecodeFault reports an undefined opcode at Warn level unless pc equals
// the PC of the previous reported fault (initially 0x0000), so a runaway loop
// at one PC logs once (spec.md §7: non-fatal, execution continues treating it
// as NOP).
func (b *Bus) LogDecodeFault(pc uint16, opcode uint8) {
	if pc == b.lastDecodeFaultPC {
		return
	}
	b.lastDecodeFaultPC = pc
	slog.Warn("decode fault: undefined opcode", "pc", fmt.Sprintf("0x%04X", pc), "opcode", fmt.Sprintf("0x%02X", opcode))
}

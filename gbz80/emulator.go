// Package gbz80 wires the bus, CPU and PPU into a frame-driven scheduler:
// the per-frame loop that runs one instruction, advances timers and the
// PPU by its cycle cost, and lets the CPU service interrupts at the next
// instruction boundary, per spec.md §5/§6.
package gbz80

import (
	"os"

	"github.com/corvid-labs/gbz80/bus"
	"github.com/corvid-labs/gbz80/cartridge"
	"github.com/corvid-labs/gbz80/cpu"
	"github.com/corvid-labs/gbz80/video"
)

// CyclesPerFrame is the number of T-cycles in one 59.7Hz DMG frame.
const CyclesPerFrame = 70224

// Emulator is the root object: it owns the Bus (and through it, the
// cartridge/MBC) plus a CPU and PPU that both hold a non-owning handle to
// it, per spec.md §4's ownership rules.
type Emulator struct {
	bus *bus.Bus
	cpu *cpu.CPU
	ppu *video.PPU

	frameCount       uint64
	instructionCount uint64
}

// New creates an Emulator with cart mapped in through an MBC appropriate to
// its header.
func New(cart *cartridge.Cartridge) (*Emulator, error) {
	mbc, err := cartridge.New(cart)
	if err != nil {
		return nil, err
	}

	e := &Emulator{}
	e.bus = bus.NewWithCartridge(cart, mbc)
	e.cpu = cpu.New(e.bus)
	e.ppu = video.New(e.bus, e.onFrame)
	e.bus.OverlayBootHeader()
	return e, nil
}

// NewFromFile loads a ROM image from path and wires an Emulator around it.
// A header the cartridge package doesn't recognize is a fatal
// CartridgeUnsupported error per spec.md §7.
func NewFromFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Cause: err}
	}

	cart, err := cartridge.Load(data)
	if err != nil {
		return nil, err
	}

	return New(cart)
}

func (e *Emulator) onFrame(*video.FrameBuffer) {
	e.frameCount++
}

// FrameBuffer returns the PPU's current framebuffer.
func (e *Emulator) FrameBuffer() *video.FrameBuffer {
	return e.ppu.FrameBuffer()
}

// FrameCount returns the number of frames presented so far.
func (e *Emulator) FrameCount() uint64 { return e.frameCount }

// InstructionCount returns the number of scheduler steps run so far.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// PressKey and ReleaseKey forward joypad events to the bus.
func (e *Emulator) PressKey(key bus.JoypadKey)   { e.bus.PressKey(key) }
func (e *Emulator) ReleaseKey(key bus.JoypadKey) { e.bus.ReleaseKey(key) }

// Bus exposes the underlying bus, mainly for the disassembler and tests.
func (e *Emulator) Bus() *bus.Bus { return e.bus }

// CPU exposes the underlying CPU, mainly for the disassembler and tests.
func (e *Emulator) CPU() *cpu.CPU { return e.cpu }

// Step runs a single scheduler step (one CPU instruction, or 4 cycles of
// pure ticking while halted) and advances every other device by the same
// number of T-cycles, per spec.md §5's ordering guarantee: CPU state
// update -> Bus side effects -> Timer ticks -> PPU ticks -> interrupt
// sampling (the sampling itself happens at the top of the next CPU.Step).
func (e *Emulator) Step() int {
	cycles := e.cpu.Step()
	e.bus.Tick(cycles)
	e.ppu.Tick(cycles)
	e.instructionCount++
	return cycles
}

// RunFrame runs scheduler steps until at least one full frame's worth of
// T-cycles has elapsed, per spec.md §6/§8 testable property 8.
func (e *Emulator) RunFrame() {
	total := 0
	for total < CyclesPerFrame {
		total += e.Step()
	}
}

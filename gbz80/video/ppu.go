// Package video implements the PPU: the mode/STAT state machine,
// background/window tile fetch, sprite rasterization and LY/LYC
// coincidence, per spec.md §4.5.
package video

import (
	"github.com/corvid-labs/gbz80/addr"
	"github.com/corvid-labs/gbz80/bit"
)

// Bus is the subset of *bus.Bus the PPU needs; kept as an interface so
// tests can drive the PPU against a bare memory stub.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	RequestInterrupt(i addr.Interrupt)
}

// Mode is the PPU's current rendering stage; its value is also the STAT
// register's low two bits.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeDraw   Mode = 3
)

const (
	cyclesPerLine  = 456
	oamEndCycle    = 80
	drawEndCycle   = 252 // 80 + 172, per spec.md §4.5's "mode-3 length is hard-coded near cycle 245/252" allowance
	linesPerFrame  = 154
	firstVBlankLY  = 144
)

// STAT source-enable bits.
const (
	statHBlankIRQ uint8 = 1 << 3
	statVBlankIRQ uint8 = 1 << 4
	statOAMIRQ    uint8 = 1 << 5
	statLYCIRQ    uint8 = 1 << 6
	statLYCFlag   uint8 = 1 << 2
)

// LCDC bits.
const (
	lcdcEnable        uint8 = 1 << 7
	lcdcWindowMap     uint8 = 1 << 6
	lcdcWindowEnable  uint8 = 1 << 5
	lcdcBGWindowTiles uint8 = 1 << 4
	lcdcBGMap         uint8 = 1 << 3
	lcdcObjSize       uint8 = 1 << 2
	lcdcObjEnable     uint8 = 1 << 1
	lcdcBGEnable      uint8 = 1 << 0
)

// PPU renders one frame into a FrameBuffer, T-cycle by T-cycle.
type PPU struct {
	bus Bus

	framebuffer FrameBuffer
	bgPriority  [Size]bool // true where the background/window drew a non-zero color, for sprite priority

	line          int
	lineCycle     int
	mode          Mode
	scanlineDrawn bool
	windowLine    int

	onFrame func(*FrameBuffer)
}

// New creates a PPU that reads and writes memory through bus and renders into
// its own FrameBuffer. onFrame, if non-nil, is called
// exactly once per completed frame (at the mode 0→1 transition at LY=144),
// per spec.md §8 testable property 8.
func New(bus Bus, onFrame func(*FrameBuffer)) *PPU {
	return &PPU{bus: bus, mode: ModeOAM, onFrame: onFrame}
}

// FrameBuffer returns the PPU's backing framebuffer.
func (p *PPU) FrameBuffer() *FrameBuffer { return &p.framebuffer }

// Tick advances the PPU by cycles T-cycles.
func (p *PPU) Tick(cycles int) {
	if !p.lcdEnabled() {
		p.disableLCD()
		return
	}

	for i := 0; i < cycles; i++ {
		p.tickOnce()
	}
}

func (p *PPU) lcdEnabled() bool {
	return p.bus.Read(addr.LCDC)&lcdcEnable != 0
}

// disableLCD forces mode 1 and LY 0 while LCDC[7] is clear, per spec.md §4.5.
func (p *PPU) disableLCD() {
	if p.mode == ModeVBlank && p.line == 0 && p.lineCycle == 0 {
		return
	}
	p.line = 0
	p.lineCycle = 0
	p.windowLine = 0
	p.scanlineDrawn = false
	p.setLY(0)
	p.setMode(ModeVBlank)
}

func (p *PPU) tickOnce() {
	if p.line < firstVBlankLY {
		switch p.lineCycle {
		case oamEndCycle:
			p.setMode(ModeDraw)
		case drawEndCycle:
			if !p.scanlineDrawn {
				p.drawScanline()
				p.scanlineDrawn = true
			}
			p.setMode(ModeHBlank)
			if p.statSourceEnabled(statHBlankIRQ) {
				p.bus.RequestInterrupt(addr.LCDSTAT)
			}
		}
	}

	p.lineCycle++
	if p.lineCycle >= cyclesPerLine {
		p.lineCycle = 0
		p.scanlineDrawn = false
		p.advanceLine()
	}
}

func (p *PPU) advanceLine() {
	newLine := (p.line + 1) % linesPerFrame
	p.setLY(newLine)

	switch {
	case newLine == firstVBlankLY:
		p.setMode(ModeVBlank)
		p.bus.RequestInterrupt(addr.VBlank)
		if p.statSourceEnabled(statVBlankIRQ) {
			p.bus.RequestInterrupt(addr.LCDSTAT)
		}
		p.windowLine = 0
		if p.onFrame != nil {
			p.onFrame(&p.framebuffer)
		}
	case newLine < firstVBlankLY:
		p.setMode(ModeOAM)
		if p.statSourceEnabled(statOAMIRQ) {
			p.bus.RequestInterrupt(addr.LCDSTAT)
		}
	}
}

func (p *PPU) statSourceEnabled(mask uint8) bool {
	return p.bus.Read(addr.STAT)&mask != 0
}

func (p *PPU) setMode(m Mode) {
	p.mode = m
	stat := p.bus.Read(addr.STAT)
	stat = stat&0xFC | uint8(m)
	p.bus.Write(addr.STAT, stat)
}

// setLY writes LY and performs the LYC coincidence check/interrupt.
func (p *PPU) setLY(line int) {
	p.line = line
	p.bus.Write(addr.LY, uint8(line))

	lyc := p.bus.Read(addr.LYC)
	stat := p.bus.Read(addr.STAT)
	if uint8(line) == lyc {
		stat = bit.Set(2, stat)
		if stat&statLYCIRQ != 0 {
			p.bus.RequestInterrupt(addr.LCDSTAT)
		}
	} else {
		stat = bit.Reset(2, stat)
	}
	p.bus.Write(addr.STAT, stat)
}

func (p *PPU) drawScanline() {
	p.drawBackgroundAndWindow()
	p.drawSprites()
}

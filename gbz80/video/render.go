package video

import (
	"github.com/corvid-labs/gbz80/addr"
	"github.com/corvid-labs/gbz80/bit"
)

// tileLine reads the two bitplane bytes for one row of a tile addressed by
// tileIndex, honoring LCDC's signed/unsigned tile-data addressing mode.
func (p *PPU) tileLine(tileIndex uint8, row int, signedAddressing bool) (low, high uint8) {
	var base uint16
	if signedAddressing {
		base = uint16(int32(addr.TileDataSigned) + int32(int8(tileIndex))*16)
	} else {
		base = addr.TileDataUnsigned + uint16(tileIndex)*16
	}
	rowAddr := base + uint16(row*2)
	return p.bus.Read(rowAddr), p.bus.Read(rowAddr + 1)
}

func pixelColor(low, high uint8, col int) uint8 {
	bitIndex := uint8(7 - col)
	var v uint8
	if bit.IsSet(bitIndex, low) {
		v |= 1
	}
	if bit.IsSet(bitIndex, high) {
		v |= 2
	}
	return v
}

func applyPalette(palette uint8, colorIndex uint8) Color {
	shade := (palette >> (colorIndex * 2)) & 0x03
	return shades[shade]
}

// drawBackgroundAndWindow renders one scanline's background and window
// layer together, per spec.md §4.5: each pixel picks window or background
// coordinates depending on LCDC/WX/WY, then resolves through BGP.
func (p *PPU) drawBackgroundAndWindow() {
	lcdc := p.bus.Read(addr.LCDC)
	bgp := p.bus.Read(addr.BGP)
	signedTiles := lcdc&lcdcBGWindowTiles == 0

	bgEnabled := lcdc&lcdcBGEnable != 0
	windowEnabled := lcdc&lcdcWindowEnable != 0

	scy := p.bus.Read(addr.SCY)
	scx := p.bus.Read(addr.SCX)
	wy := p.bus.Read(addr.WY)
	wx := int(p.bus.Read(addr.WX)) - 7

	usedWindow := false
	rowBase := p.line * Width

	for x := 0; x < Width; x++ {
		var tileMap uint16
		var tileX, pixelRow, pixelCol int

		useWindow := windowEnabled && int(wy) <= p.line && x >= wx
		if useWindow {
			usedWindow = true
			if lcdc&lcdcWindowMap != 0 {
				tileMap = addr.TileMap1
			} else {
				tileMap = addr.TileMap0
			}
			wxCol := x - wx
			tileX = wxCol / 8
			pixelCol = wxCol % 8
			pixelRow = p.windowLine % 8
			tileMap += uint16((p.windowLine/8)*32 + tileX)
		} else {
			if lcdc&lcdcBGMap != 0 {
				tileMap = addr.TileMap1
			} else {
				tileMap = addr.TileMap0
			}
			mapY := (p.line + int(scy)) & 0xFF
			mapX := (x + int(scx)) & 0xFF
			tileX = mapX / 8
			pixelCol = mapX % 8
			pixelRow = mapY % 8
			tileMap += uint16((mapY/8)*32 + tileX)
		}

		var colorIndex uint8
		if bgEnabled {
			tileIndex := p.bus.Read(tileMap)
			low, high := p.tileLine(tileIndex, pixelRow, signedTiles)
			colorIndex = pixelColor(low, high, pixelCol)
		}

		p.framebuffer.set(x, p.line, applyPalette(bgp, colorIndex))
		p.bgPriority[rowBase+x] = colorIndex != 0
	}

	if usedWindow {
		p.windowLine++
	}
}

type oamEntry struct {
	y, x        int
	tile, flags uint8
	index       int
}

// drawSprites renders the up-to-10 sprites visible on the current scanline,
// applying the DMG's X-then-OAM-index priority rule, per spec.md §4.5.
func (p *PPU) drawSprites() {
	lcdc := p.bus.Read(addr.LCDC)
	if lcdc&lcdcObjEnable == 0 {
		return
	}

	height := 8
	if lcdc&lcdcObjSize != 0 {
		height = 16
	}

	var visible []oamEntry
	for i := 0; i < 40 && len(visible) < 10; i++ {
		base := addr.OAMStart + uint16(i*4)
		y := int(p.bus.Read(base)) - 16
		if p.line < y || p.line >= y+height {
			continue
		}
		visible = append(visible, oamEntry{
			y:     y,
			x:     int(p.bus.Read(base+1)) - 8,
			tile:  p.bus.Read(base + 2),
			flags: p.bus.Read(base + 3),
			index: i,
		})
	}

	var pri priorityBuffer
	pri.clear()
	for _, s := range visible {
		for col := 0; col < 8; col++ {
			pri.tryClaim(s.x+col, s.index, s.x)
		}
	}

	rowBase := p.line * Width
	for _, s := range visible {
		x := s.x
		tile := s.tile
		if height == 16 {
			tile &^= 0x01
		}

		row := p.line - s.y
		flipY := s.flags&0x40 != 0
		if flipY {
			row = height - 1 - row
		}

		low, high := p.tileLine(tile, row, false)
		flipX := s.flags&0x20 != 0
		behindBG := s.flags&0x80 != 0
		palette := addr.OBP0
		if s.flags&0x10 != 0 {
			palette = addr.OBP1
		}
		paletteValue := p.bus.Read(palette)

		for col := 0; col < 8; col++ {
			bufferX := x + col
			if bufferX < 0 || bufferX >= Width {
				continue
			}
			if pri.ownerOf(bufferX) != s.index {
				continue
			}

			srcCol := col
			if flipX {
				srcCol = 7 - col
			}
			colorIndex := pixelColor(low, high, srcCol)
			if colorIndex == 0 {
				continue
			}
			if behindBG && p.bgPriority[rowBase+bufferX] {
				continue
			}

			p.framebuffer.set(bufferX, p.line, applyPalette(paletteValue, colorIndex))
		}
	}
}

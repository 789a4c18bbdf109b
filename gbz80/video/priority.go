package video

// priorityBuffer resolves sprite-to-pixel ownership for one scanline per
// the DMG's strict priority rule: lower X wins, and ties break to the
// lower OAM index, per spec.md §4.5.
type priorityBuffer struct {
	owner  [Width]int // OAM index owning this pixel, -1 if none
	ownerX [Width]int
}

func (p *priorityBuffer) clear() {
	for i := range p.owner {
		p.owner[i] = -1
		p.ownerX[i] = 0xFF
	}
}

// tryClaim attempts to give pixelX to spriteIndex at spriteX, returning
// whether it won.
func (p *priorityBuffer) tryClaim(pixelX, spriteIndex, spriteX int) bool {
	if pixelX < 0 || pixelX >= Width {
		return false
	}

	current := p.owner[pixelX]
	if current == -1 {
		p.owner[pixelX], p.ownerX[pixelX] = spriteIndex, spriteX
		return true
	}

	currentX := p.ownerX[pixelX]
	if spriteX < currentX || (spriteX == currentX && spriteIndex < current) {
		p.owner[pixelX], p.ownerX[pixelX] = spriteIndex, spriteX
		return true
	}

	return false
}

func (p *priorityBuffer) ownerOf(pixelX int) int {
	if pixelX < 0 || pixelX >= Width {
		return -1
	}
	return p.owner[pixelX]
}

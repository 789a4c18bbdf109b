package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBufferSetAndAt(t *testing.T) {
	var fb FrameBuffer

	fb.set(3, 2, ColorWhite)

	assert.Equal(t, uint32(ColorWhite), fb.At(3, 2))
	assert.Equal(t, uint32(ColorWhite), fb.Pixels()[2*Width+3])
}

func TestApplyPaletteIdentity(t *testing.T) {
	const identity = 0xE4 // 3<<6 | 2<<4 | 1<<2 | 0

	for i := uint8(0); i < 4; i++ {
		assert.Equal(t, shades[i], applyPalette(identity, i))
	}
}

func TestPixelColorCombinesBothBitplanes(t *testing.T) {
	assert.Equal(t, uint8(0), pixelColor(0x00, 0x00, 0))
	assert.Equal(t, uint8(1), pixelColor(0x80, 0x00, 0))
	assert.Equal(t, uint8(2), pixelColor(0x00, 0x80, 0))
	assert.Equal(t, uint8(3), pixelColor(0x80, 0x80, 0))
}

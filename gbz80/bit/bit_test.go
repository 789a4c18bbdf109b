package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineHighLow(t *testing.T) {
	assert.Equal(t, uint16(0xBEEF), Combine(0xBE, 0xEF))
	assert.Equal(t, uint8(0xBE), High(0xBEEF))
	assert.Equal(t, uint8(0xEF), Low(0xBEEF))
}

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(3, 0x08))
	assert.False(t, IsSet(3, 0xF7))
	assert.True(t, IsSet16(15, 0x8000))
}

func TestSetResetSetTo(t *testing.T) {
	assert.Equal(t, uint8(0x08), Set(3, 0x00))
	assert.Equal(t, uint8(0x00), Reset(3, 0x08))
	assert.Equal(t, uint8(0x08), SetTo(3, 0x00, true))
	assert.Equal(t, uint8(0x00), SetTo(3, 0x08, false))
}

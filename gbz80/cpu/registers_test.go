package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-labs/gbz80/bus"
)

func TestFlagSetAndClear(t *testing.T) {
	c := New(bus.New())

	c.setFlag(flagZ, true)
	c.setFlag(flagC, true)
	assert.True(t, c.flag(flagZ))
	assert.False(t, c.flag(flagN))
	assert.True(t, c.flag(flagC))

	c.setFlag(flagZ, false)
	assert.False(t, c.flag(flagZ))
	assert.True(t, c.flag(flagC))
}

func TestFlagLowNibbleAlwaysZero(t *testing.T) {
	c := New(bus.New())
	c.f = 0xFF
	c.setFlag(flagZ, true)
	assert.Equal(t, uint8(0), c.f&0x0F)
}

func TestRegisterPairs(t *testing.T) {
	c := New(bus.New())

	c.setBC(0x1234)
	assert.Equal(t, uint8(0x12), c.b)
	assert.Equal(t, uint8(0x34), c.c)
	assert.Equal(t, uint16(0x1234), c.bc())

	c.setHL(0xBEEF)
	assert.Equal(t, uint16(0xBEEF), c.hl())

	c.setAF(0x12FF)
	assert.Equal(t, uint8(0x12), c.a)
	assert.Equal(t, uint8(0xF0), c.f, "the low nibble of F is never settable")
}

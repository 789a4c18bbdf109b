package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-labs/gbz80/bus"
)

func TestGet8Set8(t *testing.T) {
	c := New(bus.New())

	c.set8(regB, 0x11)
	c.set8(regA, 0x22)
	assert.Equal(t, uint8(0x11), c.get8(regB))
	assert.Equal(t, uint8(0x22), c.get8(regA))

	c.setHL(0xC000)
	c.set8(regHLInd, 0x99)
	assert.Equal(t, uint8(0x99), c.get8(regHLInd))
	assert.Equal(t, uint8(0x99), c.bus.Read(0xC000))
}

func TestGet16Set16(t *testing.T) {
	c := New(bus.New())

	c.set16(pairBC, 0x1234)
	assert.Equal(t, uint16(0x1234), c.get16(pairBC))

	c.set16(pairSP, 0xFFEE)
	assert.Equal(t, uint16(0xFFEE), c.sp)
}

func TestStackPairs(t *testing.T) {
	c := New(bus.New())

	c.setStackPair(stackAF, 0x12FF)
	assert.Equal(t, uint8(0x12), c.a)
	assert.Equal(t, uint8(0xF0), c.f)
	assert.Equal(t, uint16(0x12F0), c.getStackPair(stackAF))
}

func TestCondition(t *testing.T) {
	c := New(bus.New())

	c.setFlag(flagZ, false)
	assert.True(t, c.condition(0)) // NZ
	assert.False(t, c.condition(1))

	c.setFlag(flagC, true)
	assert.False(t, c.condition(2)) // NC
	assert.True(t, c.condition(3))
}

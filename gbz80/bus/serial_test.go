package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-labs/gbz80/addr"
)

func TestSerial_TransferRequiresStartAndInternalClock(t *testing.T) {
	s := NewSerial()
	s.Write(addr.SB, 0x42)
	s.Write(addr.SC, 0x80) // start bit only, no internal clock

	assert.False(t, s.Tick(100000))
}

func TestSerial_CompletesAndResetsToDisconnectedState(t *testing.T) {
	s := NewSerial()
	s.Write(addr.SB, 0x42)
	s.Write(addr.SC, 0x81) // start + internal clock

	assert.False(t, s.Tick(100))
	assert.True(t, s.Tick(5000))

	assert.Equal(t, uint8(0xFF), s.Read(addr.SB))
	assert.False(t, s.Read(addr.SC)&0x80 != 0, "start bit clears once the transfer completes")
}

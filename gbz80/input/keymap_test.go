package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_KnownKeys(t *testing.T) {
	assert.Equal(t, DPadUp, Lookup("Up"))
	assert.Equal(t, ButtonA, Lookup("z"))
	assert.Equal(t, EmulatorQuit, Lookup("Escape"))
}

func TestLookup_UnboundKeyIsActionNone(t *testing.T) {
	assert.Equal(t, ActionNone, Lookup("F13"))
}

func TestIsJoypadButton(t *testing.T) {
	assert.True(t, ButtonA.IsJoypadButton())
	assert.True(t, DPadLeft.IsJoypadButton())
	assert.False(t, EmulatorQuit.IsJoypadButton())
	assert.False(t, ActionNone.IsJoypadButton())
}

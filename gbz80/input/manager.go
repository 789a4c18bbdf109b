package input

import "github.com/corvid-labs/gbz80/bus"

// Manager dispatches decoded Actions onto the joypad, and reports
// emulator-level actions back to the caller via its return value.
type Manager struct {
	bus *bus.Bus
}

// NewManager creates a Manager driving b's joypad.
func NewManager(b *bus.Bus) *Manager {
	return &Manager{bus: b}
}

// Dispatch applies a press or release of action. For a joypad button this
// presses/releases it on the bus directly and returns ActionNone; for an
// emulator-level action it is returned unchanged so the caller (the
// backend's event loop) can act on it.
func (m *Manager) Dispatch(a Action, pressed bool) Action {
	if key, ok := joypadKey(a); ok {
		if pressed {
			m.bus.PressKey(key)
		} else {
			m.bus.ReleaseKey(key)
		}
		return ActionNone
	}

	if !pressed {
		return ActionNone // emulator actions trigger on press only
	}
	return a
}

func joypadKey(a Action) (bus.JoypadKey, bool) {
	switch a {
	case ButtonA:
		return bus.KeyA, true
	case ButtonB:
		return bus.KeyB, true
	case ButtonStart:
		return bus.KeyStart, true
	case ButtonSelect:
		return bus.KeySelect, true
	case DPadUp:
		return bus.KeyUp, true
	case DPadDown:
		return bus.KeyDown, true
	case DPadLeft:
		return bus.KeyLeft, true
	case DPadRight:
		return bus.KeyRight, true
	default:
		return 0, false
	}
}

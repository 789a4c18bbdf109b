package input

// DefaultKeyMap maps a backend-reported key name to an Action. The terminal
// backend translates tcell keys and runes into these names (keyName in
// render/terminal.go); tcell reports no bare Shift key, so "Shift" is never
// produced there. The SDL2 backend looks up SDL's own key name
// (sdl.GetKeyName) unchanged, so only the entries SDL names identically (the
// arrow keys, "Space" and "Escape") match there.
var DefaultKeyMap = map[string]Action{
	"Right": DPadRight,
	"Left":  DPadLeft,
	"Up":    DPadUp,
	"Down":  DPadDown,
	"z":     ButtonA,
	"x":     ButtonB,
	"Enter": ButtonStart,
	"Shift": ButtonSelect,

	"Space":  EmulatorPauseToggle,
	"f":      EmulatorStepFrame,
	"Escape": EmulatorQuit,
	"q":      EmulatorQuit,
}

// Lookup returns the action bound to a key name, or ActionNone if unbound.
func Lookup(key string) Action {
	if a, ok := DefaultKeyMap[key]; ok {
		return a
	}
	return ActionNone
}

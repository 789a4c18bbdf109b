// Package backend defines the presentation/input surface the emulator
// drives every frame, and the real-SDL2/stub-SDL2 pair selected by the
// sdl2 build tag, per SPEC_FULL.md §10.
package backend

import (
	"github.com/corvid-labs/gbz80/input"
	"github.com/corvid-labs/gbz80/video"
)

// Backend presents a rendered frame and reports input, independent of the
// concrete display technology (terminal, SDL2 window, ...).
type Backend interface {
	// Init prepares the backend for use (opens a window/terminal screen).
	Init() error
	// Update presents fb and returns the emulator-level actions observed
	// since the last call (pause/quit/step); joypad actions are applied
	// directly to mgr and are not returned.
	Update(fb *video.FrameBuffer, mgr *input.Manager) ([]input.Action, error)
	// Cleanup releases any resources Init acquired.
	Cleanup() error
}

//go:build !sdl2

package backend

import (
	"errors"

	"github.com/corvid-labs/gbz80/input"
	"github.com/corvid-labs/gbz80/video"
)

// SDL2 is a stand-in for the real SDL2 backend (sdl2.go) when the binary was
// built without `-tags sdl2`. It satisfies Backend so cmd/gbz80 can still
// reference the type; Init always fails.
type SDL2 struct{}

// New creates the unbuilt SDL2 backend stub.
func New() *SDL2 { return &SDL2{} }

func (s *SDL2) Init() error {
	return errors.New("backend: sdl2 backend not built in this binary; rebuild with -tags sdl2")
}

func (s *SDL2) Cleanup() error { return nil }

func (s *SDL2) Update(fb *video.FrameBuffer, mgr *input.Manager) ([]input.Action, error) {
	return nil, errors.New("backend: sdl2 backend not built in this binary; rebuild with -tags sdl2")
}

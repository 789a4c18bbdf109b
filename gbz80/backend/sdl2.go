//go:build sdl2

package backend

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/corvid-labs/gbz80/input"
	"github.com/corvid-labs/gbz80/video"
)

const windowScale = 3

// SDL2 implements Backend with a real SDL2 window. Building it requires
// the SDL2 development libraries and `-tags sdl2`; without the tag, New
// returns the stub in nosdl2.go.
type SDL2 struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
}

// New creates an SDL2 backend (unopened; call Init to create the window).
func New() *SDL2 { return &SDL2{} }

func (s *SDL2) Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("backend: sdl2 init: %w", err)
	}

	window, err := sdl.CreateWindow("gbz80",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		video.Width*windowScale, video.Height*windowScale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("backend: sdl2 create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("backend: sdl2 create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING, video.Width, video.Height)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("backend: sdl2 create texture: %w", err)
	}
	s.texture = texture
	s.pixels = make([]byte, video.Width*video.Height*4)

	return nil
}

func (s *SDL2) Cleanup() error {
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	return nil
}

func (s *SDL2) Update(fb *video.FrameBuffer, mgr *input.Manager) ([]input.Action, error) {
	for i, pixel := range fb.Pixels() {
		s.pixels[i*4] = byte(pixel >> 24)
		s.pixels[i*4+1] = byte(pixel >> 16)
		s.pixels[i*4+2] = byte(pixel >> 8)
		s.pixels[i*4+3] = byte(pixel)
	}
	if err := s.texture.Update(nil, s.pixels, video.Width*4); err != nil {
		return nil, fmt.Errorf("backend: sdl2 texture update: %w", err)
	}

	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()

	var emulatorActions []input.Action
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		keyEvent, ok := event.(*sdl.KeyboardEvent)
		if !ok {
			continue
		}
		name := sdl.GetKeyName(keyEvent.Keysym.Sym)
		action := input.Lookup(name)
		if action == input.ActionNone {
			continue
		}
		pressed := keyEvent.State == sdl.PRESSED
		if result := mgr.Dispatch(action, pressed); result != input.ActionNone {
			emulatorActions = append(emulatorActions, result)
		}
	}

	return emulatorActions, nil
}
